// Package templates renders the audit UI. Components are hand-written
// templ.ComponentFunc values so the pages stay plain Go without a generate
// step.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps page content in the HTML shell: htmx, stylesheet and the
// toast container the HX-Trigger handler writes into.
func Layout(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/styles.css">
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
<header class="topbar">
<a href="/audits" class="brand">수량산출 검증</a>
<nav>
<a href="/audits" hx-get="/audits" hx-target="#main" hx-push-url="true">검증 이력</a>
<a href="/audits/upload" hx-get="/audits/upload" hx-target="#main" hx-push-url="true">새 검증</a>
</nav>
</header>
<main id="main">
`, templ.EscapeString(title)); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<div id="toast-container"></div>
<script>
document.body.addEventListener("showToast", function (evt) {
  var d = evt.detail || {};
  var el = document.createElement("div");
  el.className = "toast toast-" + (d.type || "info");
  el.textContent = d.message || "";
  document.getElementById("toast-container").appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
});
</script>
</body>
</html>
`)
		return err
	})
}
