package report

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

//go:embed template.html
var templateHTML string

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusClass": statusClass,
}).Parse(templateHTML))

func statusClass(s check.Status) string {
	switch s {
	case check.StatusOK:
		return "ok"
	case check.StatusWarning:
		return "warning"
	case check.StatusCritical:
		return "critical"
	}
	return "info"
}

// RenderHTML writes the HTML report.
func RenderHTML(w io.Writer, r *Report, version string) error {
	return htmlTmpl.Execute(w, map[string]any{
		"Report":  r,
		"Version": version,
		"Summary": r.Summary(),
		"Overall": r.Worst(),
	})
}
