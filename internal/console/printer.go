package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/report"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Printer mirrors the report on the terminal with a colored status
// column.
type Printer struct {
	out io.Writer
}

func New() *Printer { return &Printer{out: os.Stdout} }

func NewWriter(w io.Writer) *Printer { return &Printer{out: w} }

func (p *Printer) Header(hostname, version string) {
	fmt.Fprintf(p.out, "%s host %s (v%s)\n", bold("system health check"), hostname, version)
}

func (p *Printer) Section(title string) {
	fmt.Fprintf(p.out, "\n%s\n", bold(title))
}

func (p *Printer) Result(res check.Result) {
	fmt.Fprintf(p.out, "[%s] %s\n", paint(res.Status, report.StatusLabel(res.Status)), res.Message)
}

func (p *Printer) Summary(s report.Summary, worst check.Status, path string) {
	fmt.Fprintf(p.out, "\n%s %s, %s, %s, %s (%d checks)\n",
		bold("summary:"),
		green(fmt.Sprintf("%d ok", s.OK)),
		yellow(fmt.Sprintf("%d warning", s.Warning)),
		red(fmt.Sprintf("%d critical", s.Critical)),
		cyan(fmt.Sprintf("%d info", s.Info)),
		s.Total)
	fmt.Fprintf(p.out, "overall %s, report written to %s\n", paint(worst, string(worst)), path)
}

func paint(s check.Status, text string) string {
	switch s {
	case check.StatusOK:
		return green(text)
	case check.StatusWarning:
		return yellow(text)
	case check.StatusCritical:
		return red(text)
	}
	return cyan(text)
}
