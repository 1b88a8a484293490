package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/format"
)

// Checker reports physical memory and swap pressure.
type Checker struct {
	Usage check.Threshold
	Swap  check.Threshold
	TopN  int
}

func (c *Checker) Name() string { return "Memory" }

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	var results []check.Result

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		results = append(results, c.usageResult(vm))
	} else {
		results = append(results, check.Unavailable("mem.usage", err.Error()))
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		results = append(results, c.swapResult(sw))
	} else {
		results = append(results, check.Unavailable("mem.swap", err.Error()))
	}

	results = append(results, c.topProcesses(ctx))
	return results, nil
}

func (c *Checker) usageResult(vm *mem.VirtualMemoryStat) check.Result {
	return check.New("mem.usage", c.Usage.Classify(vm.UsedPercent), format.Percent(vm.UsedPercent),
		fmt.Sprintf("%s of %s used (%s), %s available",
			format.Bytes(vm.Used), format.Bytes(vm.Total), format.Percent(vm.UsedPercent), format.Bytes(vm.Available)))
}

func (c *Checker) swapResult(sw *mem.SwapMemoryStat) check.Result {
	if sw.Total == 0 {
		return check.New("mem.swap", check.StatusInfo, "none", "no swap configured")
	}
	return check.New("mem.swap", c.Swap.Classify(sw.UsedPercent), format.Percent(sw.UsedPercent),
		fmt.Sprintf("%s of %s swap used (%s)",
			format.Bytes(sw.Used), format.Bytes(sw.Total), format.Percent(sw.UsedPercent)))
}

func (c *Checker) topProcesses(ctx context.Context) check.Result {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return check.Unavailable("mem.top_processes", err.Error())
	}

	type row struct {
		pid  int32
		name string
		pct  float32
	}
	rows := make([]row, 0, len(procs))
	for _, p := range procs {
		pct, err := p.MemoryPercentWithContext(ctx)
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
		parts = append(parts, fmt.Sprintf("%s (pid %d) %s", r.name, r.pid, format.Percent(float64(r.pct))))
	}
	return check.New("mem.top_processes", check.StatusInfo, strconv.Itoa(len(parts)),
		"top by memory: "+strings.Join(parts, "; "))
}
