package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumber renders a quantity or difference for display: up to six
// decimal places with trailing zeros trimmed, so 9.0559875 stays precise
// while 104.000000 collapses to 104.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatOptional renders a nullable numeric field, empty when absent.
func FormatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}

// FormatCell renders a finding location with its row for messages, e.g.
// "E12 (row 12)".
func FormatCell(cell string, row int) string {
	if cell == "" {
		return fmt.Sprintf("row %d", row)
	}
	return fmt.Sprintf("%s (row %d)", cell, row)
}
