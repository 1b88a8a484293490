package logs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/execx"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/format"
)

// Checker looks for trouble in the kernel ring buffer and for log
// files large enough to deserve a rotation review.
type Checker struct {
	KernelErr      check.Threshold
	Runner         execx.Runner
	LogDir         string
	LargeFileBytes int64
	TopN           int
}

func (c *Checker) Name() string { return "Logs" }

func (c *Checker) runner() execx.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return execx.System{}
}

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	return []check.Result{
		c.kernelErrResult(ctx, c.runner()),
		c.largeFilesResult(),
	}, nil
}

func (c *Checker) kernelErrResult(ctx context.Context, run execx.Runner) check.Result {
	if _, err := run.LookPath("dmesg"); err != nil {
		return check.Unavailable("logs.kernel_errors", "dmesg not found")
	}
	out, code, err := run.Run(ctx, "dmesg", "--level=err,crit,alert,emerg")
	if err != nil {
		return check.Unavailable("logs.kernel_errors", err.Error())
	}
	if code != 0 {
		return check.Unavailable("logs.kernel_errors", fmt.Sprintf("dmesg exited %d", code))
	}

	count := countLines(out)
	msg := fmt.Sprintf("%d kernel errors in ring buffer", count)
	if count == 0 {
		msg = "no kernel errors in ring buffer"
	}
	return check.New("logs.kernel_errors", c.KernelErr.Classify(float64(count)), strconv.Itoa(count), msg)
}

func countLines(out string) int {
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

func (c *Checker) largeFilesResult() check.Result {
	dir := c.LogDir
	if dir == "" {
		dir = "/var/log"
	}
	limit := c.LargeFileBytes
	if limit <= 0 {
		limit = 100 << 20
	}

	type entry struct {
		path string
		size int64
	}
	var entries []entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return err
			}
			// Unreadable subtrees are skipped, not fatal.
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > limit {
			entries = append(entries, entry{path: path, size: info.Size()})
		}
		return nil
	})
	if err != nil {
		return check.Unavailable("logs.large_files", err.Error())
	}

	if len(entries) == 0 {
		return check.New("logs.large_files", check.StatusOK, "0",
			fmt.Sprintf("no log files over %s in %s", format.Bytes(uint64(limit)), dir))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].size > entries[j].size })
	topN := c.TopN
	if topN <= 0 {
		topN = 5
	}
	shown := entries
	if len(shown) > topN {
		shown = shown[:topN]
	}

	parts := make([]string, 0, len(shown))
	for _, e := range shown {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.path, format.Bytes(uint64(e.size))))
	}
	return check.New("logs.large_files", check.StatusInfo, strconv.Itoa(len(entries)),
		fmt.Sprintf("%d log files over %s: %s",
			len(entries), format.Bytes(uint64(limit)), strings.Join(parts, "; ")))
}
