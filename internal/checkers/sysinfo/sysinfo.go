package sysinfo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/format"
)

// Checker reports identity facts about the host. Everything here is
// informational; nothing is compared against a threshold.
type Checker struct{}

func (c *Checker) Name() string { return "System Information" }

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("host info: %w", err)
	}

	results := []check.Result{
		check.New("sys.os", check.StatusInfo, info.Platform,
			fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.OS)),
		check.New("sys.kernel", check.StatusInfo, info.KernelVersion,
			"kernel "+info.KernelVersion),
		check.New("sys.arch", check.StatusInfo, info.KernelArch,
			"architecture "+info.KernelArch),
		check.New("sys.uptime", check.StatusInfo, format.Uptime(info.Uptime),
			"up "+format.Uptime(info.Uptime)),
		check.New("sys.procs", check.StatusInfo, strconv.FormatUint(info.Procs, 10),
			fmt.Sprintf("%d running processes", info.Procs)),
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		results = append(results, check.New("sys.cores", check.StatusInfo, strconv.Itoa(cores),
			fmt.Sprintf("%d logical cpus", cores)))
	} else {
		results = append(results, check.Unavailable("sys.cores", err.Error()))
	}

	return results, nil
}
