package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// cellRefPattern matches spreadsheet address tokens like B5, AA12 or $C$3.
var cellRefPattern = regexp.MustCompile(`\$?[A-Za-z]{1,3}\$?\d+`)

// roundDigitsPattern pulls the digits argument out of a ROUND(...) formula.
var roundDigitsPattern = regexp.MustCompile(`(?i)ROUND\s*\(.*?,\s*(-?\d+)\s*\)`)

// HasCellReference reports whether text contains a spreadsheet cell address.
// Any letter-prefix + digits token counts, so expressions like "B5*2" are
// treated as referencing other cells even without a leading "=".
func HasCellReference(text string) bool {
	return cellRefPattern.MatchString(text)
}

// ParseRoundDigits extracts the digits argument of a ROUND(expr, n) pattern
// in a formula string. Returns ok=false when no ROUND call is present.
func ParseRoundDigits(formula string) (int, bool) {
	if formula == "" {
		return 0, false
	}
	m := roundDigitsPattern.FindStringSubmatch(formula)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Evaluate computes a restricted arithmetic expression: decimal numbers, the
// binary operators + - * /, unary sign, parentheses, and ROUND(expr, digits)
// with an integer digits literal. A leading "=" is tolerated. Anything else
// (cell references, other functions, division by zero, unbalanced parens)
// returns ok=false instead of a value; the function never panics.
//
// ROUND uses half-away-from-zero, matching how Excel rounds the workbooks
// under audit: ROUND(2.5, 0) = 3, ROUND(-2.5, 0) = -3.
func Evaluate(expr string) (float64, bool) {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, "=")
	if strings.TrimSpace(s) == "" {
		return 0, false
	}

	toks, ok := tokenize(s)
	if !ok {
		return 0, false
	}

	p := &exprParser{toks: toks}
	v := p.parseExpr()
	if p.failed || p.pos != len(p.toks) {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// roundTo rounds half away from zero to the given number of decimal places.
// Negative digits round to tens, hundreds and so on.
func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp // one of + - * / ( ) ,
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func tokenize(s string) ([]token, bool) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			seenDot := false
			for j < len(s) {
				if s[j] >= '0' && s[j] <= '9' {
					j++
					continue
				}
				if s[j] == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				break
			}
			n, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, false
			}
			toks = append(toks, token{kind: tokNumber, text: s[i:j], num: n})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j]})
			i = j
		case strings.ContainsRune("+-*/(),", rune(c)):
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		default:
			return nil, false
		}
	}
	return toks, true
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// exprParser is a plain recursive-descent parser over the token stream.
// Any rule violation sets failed and the zero value propagates up.
type exprParser struct {
	toks   []token
	pos    int
	failed bool
}

func (p *exprParser) fail() float64 {
	p.failed = true
	return 0
}

func (p *exprParser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) acceptOp(op string) bool {
	if t, ok := p.peek(); ok && t.kind == tokOp && t.text == op {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) parseExpr() float64 {
	v := p.parseTerm()
	for !p.failed {
		switch {
		case p.acceptOp("+"):
			v += p.parseTerm()
		case p.acceptOp("-"):
			v -= p.parseTerm()
		default:
			return v
		}
	}
	return 0
}

func (p *exprParser) parseTerm() float64 {
	v := p.parseFactor()
	for !p.failed {
		switch {
		case p.acceptOp("*"):
			v *= p.parseFactor()
		case p.acceptOp("/"):
			d := p.parseFactor()
			if d == 0 {
				return p.fail()
			}
			v /= d
		default:
			return v
		}
	}
	return 0
}

func (p *exprParser) parseFactor() float64 {
	if p.acceptOp("-") {
		return -p.parseFactor()
	}
	if p.acceptOp("+") {
		return p.parseFactor()
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() float64 {
	t, ok := p.peek()
	if !ok {
		return p.fail()
	}

	switch t.kind {
	case tokNumber:
		p.pos++
		return t.num
	case tokOp:
		if t.text == "(" {
			p.pos++
			v := p.parseExpr()
			if !p.acceptOp(")") {
				return p.fail()
			}
			return v
		}
		return p.fail()
	case tokIdent:
		// ROUND is the only function the basis grammar admits. Everything
		// else, including bare identifiers such as cell addresses, is
		// unevaluable.
		if !strings.EqualFold(t.text, "ROUND") {
			return p.fail()
		}
		p.pos++
		if !p.acceptOp("(") {
			return p.fail()
		}
		v := p.parseExpr()
		if p.failed || !p.acceptOp(",") {
			return p.fail()
		}
		digits, ok := p.parseIntLiteral()
		if !ok || !p.acceptOp(")") {
			return p.fail()
		}
		return roundTo(v, digits)
	}
	return p.fail()
}

// parseIntLiteral consumes an optionally signed integer number token,
// the only form accepted as the ROUND digits argument.
func (p *exprParser) parseIntLiteral() (int, bool) {
	neg := false
	if p.acceptOp("-") {
		neg = true
	} else {
		p.acceptOp("+")
	}
	t, ok := p.peek()
	if !ok || t.kind != tokNumber || t.num != math.Trunc(t.num) || strings.Contains(t.text, ".") {
		return 0, false
	}
	p.pos++
	n := int(t.num)
	if neg {
		n = -n
	}
	return n, true
}
