package cpu

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	pscpu "github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/format"
)

// Checker samples processor usage and pressure. The usage reading
// blocks for Sample so the percentage covers a real interval instead
// of the average since boot.
type Checker struct {
	Usage  check.Threshold
	IOWait check.Threshold
	Load   check.Threshold // applied to load1 divided by core count
	Sample time.Duration
	TopN   int
}

func (c *Checker) Name() string { return "CPU" }

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	var results []check.Result

	sample := c.Sample
	if sample <= 0 {
		sample = 3 * time.Second
	}

	if pcts, err := pscpu.PercentWithContext(ctx, sample, false); err == nil && len(pcts) > 0 {
		usage := pcts[0]
		results = append(results, check.New("cpu.usage", c.Usage.Classify(usage), format.Percent(usage),
			fmt.Sprintf("usage %s over %s sample", format.Percent(usage), sample)))
	} else {
		results = append(results, check.Unavailable("cpu.usage", errText(err)))
	}

	if times, err := pscpu.TimesWithContext(ctx, false); err == nil && len(times) > 0 {
		iowait := iowaitPercent(times[0])
		results = append(results, check.New("cpu.iowait", c.IOWait.Classify(iowait), format.Percent(iowait),
			fmt.Sprintf("iowait %s since boot", format.Percent(iowait))))
	} else {
		results = append(results, check.Unavailable("cpu.iowait", errText(err)))
	}

	cores, err := pscpu.CountsWithContext(ctx, true)
	if err != nil || cores <= 0 {
		cores = 1
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		perCore := avg.Load1 / float64(cores)
		results = append(results, check.New("cpu.load", c.Load.Classify(perCore),
			fmt.Sprintf("%.2f", avg.Load1),
			fmt.Sprintf("load average %.2f %.2f %.2f across %d cores", avg.Load1, avg.Load5, avg.Load15, cores)))
	} else {
		results = append(results, check.Unavailable("cpu.load", errText(err)))
	}

	if infos, err := pscpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		model := strings.TrimSpace(infos[0].ModelName)
		if model == "" {
			model = "unknown model"
		}
		results = append(results, check.New("cpu.model", check.StatusInfo, model, model))
	} else {
		results = append(results, check.Unavailable("cpu.model", errText(err)))
	}

	results = append(results, c.topProcesses(ctx))
	return results, nil
}

// iowaitPercent derives the share of cpu time spent waiting on IO from
// the cumulative counters.
func iowaitPercent(t pscpu.TimesStat) float64 {
	total := t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
	if total <= 0 {
		return 0
	}
	return t.Iowait / total * 100
}

func (c *Checker) topProcesses(ctx context.Context) check.Result {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return check.Unavailable("cpu.top_processes", err.Error())
	}

	type row struct {
		pid  int32
		name string
		pct  float64
	}
	rows := make([]row, 0, len(procs))
	for _, p := range procs {
		pct, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}
		name, _ := p.NameWithContext(ctx)
		if name == "" {
			name = "?"
		}
		rows = append(rows, row{pid: p.Pid, name: name, pct: pct})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].pct > rows[j].pct })

	topN := c.TopN
	if topN <= 0 {
		topN = 5
	}
	if len(rows) > topN {
		rows = rows[:topN]
	}

	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, fmt.Sprintf("%s (pid %d) %s", r.name, r.pid, format.Percent(r.pct)))
	}
	return check.New("cpu.top_processes", check.StatusInfo, strconv.Itoa(len(parts)),
		"top by cpu: "+strings.Join(parts, "; "))
}

func errText(err error) string {
	if err == nil {
		return "no data"
	}
	return err.Error()
}
