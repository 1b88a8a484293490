package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

const (
	ruleWidth  = 60
	timeLayout = "2006-01-02 15:04:05"
)

// StatusLabel pads a status to a fixed-width column so report rows
// line up.
func StatusLabel(s check.Status) string {
	const width = 8
	text := string(s)
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

// Render writes the plaintext report.
func Render(w io.Writer, r *Report, version string) error {
	rule := strings.Repeat("=", ruleWidth)
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("SYSTEM HEALTH REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Host:      %s\n", r.Hostname)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Version:   %s\n", version)

	for _, section := range r.Sections {
		b.WriteString("\n--- " + section.Title + " ---\n")
		for _, res := range section.Results {
			writeResult(&b, res)
		}
	}

	s := r.Summary()
	b.WriteString("\n" + rule + "\n")
	fmt.Fprintf(&b, "Summary: %d ok, %d warning, %d critical, %d info (%d checks)\n",
		s.OK, s.Warning, s.Critical, s.Info, s.Total)
	fmt.Fprintf(&b, "Overall: %s\n", r.Worst())
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeResult(b *strings.Builder, res check.Result) {
	head, details := splitDetails(res.Message)
	fmt.Fprintf(b, "[%s] %s\n", StatusLabel(res.Status), head)
	for _, d := range details {
		fmt.Fprintf(b, "           - %s\n", d)
	}
}

// splitDetails breaks a "head: a; b; c" message into the head line and
// bullet details. Messages without the list shape pass through whole.
func splitDetails(msg string) (string, []string) {
	head, rest, found := strings.Cut(msg, ": ")
	if !found || !strings.Contains(rest, "; ") {
		return msg, nil
	}
	parts := strings.Split(rest, "; ")
	details := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			details = append(details, p)
		}
	}
	return head, details
}
