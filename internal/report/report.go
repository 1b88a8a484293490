package report

import (
	"time"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

// Section groups the results of one checker under its display title.
type Section struct {
	Title   string
	Results []check.Result
}

// Report collects sections in run order together with the host
// identity stamped at creation time.
type Report struct {
	Hostname    string
	GeneratedAt time.Time
	Sections    []Section
}

func New(hostname string) *Report {
	return &Report{Hostname: hostname, GeneratedAt: time.Now()}
}

func (r *Report) Add(title string, results []check.Result) {
	r.Sections = append(r.Sections, Section{Title: title, Results: results})
}

// Results flattens all sections in run order.
func (r *Report) Results() []check.Result {
	var all []check.Result
	for _, s := range r.Sections {
		all = append(all, s.Results...)
	}
	return all
}

// Worst returns the most severe status across all sections.
func (r *Report) Worst() check.Status {
	return check.Worst(r.Results())
}

// Summary counts results by status.
type Summary struct {
	OK       int
	Warning  int
	Critical int
	Info     int
	Total    int
}

func (r *Report) Summary() Summary {
	var s Summary
	for _, res := range r.Results() {
		switch res.Status {
		case check.StatusOK:
			s.OK++
		case check.StatusWarning:
			s.Warning++
		case check.StatusCritical:
			s.Critical++
		default:
			s.Info++
		}
		s.Total++
	}
	return s
}
