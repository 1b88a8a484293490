package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/execx"
)

// Checker asks systemd about a configured list of units plus anything
// in the failed state. Units that are not installed on the host are
// skipped rather than reported.
type Checker struct {
	Units  []string
	Runner execx.Runner
}

func (c *Checker) Name() string { return "Services" }

func (c *Checker) runner() execx.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return execx.System{}
}

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	run := c.runner()
	if _, err := run.LookPath("systemctl"); err != nil {
		return []check.Result{check.Unavailable("services", "systemctl not found")}, nil
	}

	var results []check.Result
	for _, unit := range c.Units {
		if r, ok := c.unitResult(ctx, run, unit); ok {
			results = append(results, r)
		}
	}
	results = append(results, c.failedUnitsResult(ctx, run))
	return results, nil
}

func (c *Checker) unitResult(ctx context.Context, run execx.Runner, unit string) (check.Result, bool) {
	listed, _, err := run.Run(ctx, "systemctl", "list-unit-files", unit+".service", "--no-legend")
	if err != nil {
		return check.Unavailable("svc."+unit, err.Error()), true
	}
	if strings.TrimSpace(listed) == "" {
		// Unit not installed on this host.
		return check.Result{}, false
	}

	state, _, err := run.Run(ctx, "systemctl", "is-active", unit+".service")
	if err != nil {
		return check.Unavailable("svc."+unit, err.Error()), true
	}
	state = strings.TrimSpace(state)
	if state == "" {
		state = "unknown"
	}

	enabled, _, _ := run.Run(ctx, "systemctl", "is-enabled", unit+".service")
	enabled = strings.TrimSpace(enabled)
	if enabled == "" {
		enabled = "unknown"
	}

	metric := "svc." + unit
	if state == "active" {
		return check.New(metric, check.StatusOK, state,
			fmt.Sprintf("%s active (%s)", unit, enabled)), true
	}
	return check.New(metric, check.StatusCritical, state,
		fmt.Sprintf("%s %s (%s)", unit, state, enabled)), true
}

func (c *Checker) failedUnitsResult(ctx context.Context, run execx.Runner) check.Result {
	out, _, err := run.Run(ctx, "systemctl", "list-units", "--state=failed", "--no-legend", "--plain")
	if err != nil {
		return check.Unavailable("svc.failed_units", err.Error())
	}
	failed := parseFailedUnits(out)
	if len(failed) == 0 {
		return check.New("svc.failed_units", check.StatusOK, "0", "no failed units")
	}
	return check.New("svc.failed_units", check.StatusWarning, strconv.Itoa(len(failed)),
		fmt.Sprintf("%d failed units: %s", len(failed), strings.Join(failed, ", ")))
}

func parseFailedUnits(out string) []string {
	var units []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		units = append(units, fields[0])
	}
	return units
}
