package security

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/execx"
)

// Checker covers the security posture basics: selinux mode, firewall
// state, pending package updates and failed ssh logins for the current
// day. AuthLogPaths and Now are test seams.
type Checker struct {
	Updates      check.Threshold
	FailedLogins check.Threshold
	Runner       execx.Runner
	AuthLogPaths []string
	Now          func() time.Time
}

func (c *Checker) Name() string { return "Security" }

func (c *Checker) runner() execx.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return execx.System{}
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	run := c.runner()
	return []check.Result{
		c.selinuxResult(ctx, run),
		c.firewallResult(ctx, run),
		c.updatesResult(ctx, run),
		c.failedLoginsResult(),
	}, nil
}

func (c *Checker) selinuxResult(ctx context.Context, run execx.Runner) check.Result {
	if _, err := run.LookPath("getenforce"); err != nil {
		return check.Unavailable("sec.selinux", "getenforce not found")
	}
	out, _, err := run.Run(ctx, "getenforce")
	if err != nil {
		return check.Unavailable("sec.selinux", err.Error())
	}
	mode := strings.TrimSpace(out)
	switch mode {
	case "Enforcing":
		return check.New("sec.selinux", check.StatusOK, mode, "selinux enforcing")
	case "Permissive", "Disabled":
		return check.New("sec.selinux", check.StatusWarning, mode, "selinux "+strings.ToLower(mode))
	}
	return check.Unavailable("sec.selinux", fmt.Sprintf("unexpected getenforce output %q", mode))
}

func (c *Checker) firewallResult(ctx context.Context, run execx.Runner) check.Result {
	if _, err := run.LookPath("systemctl"); err != nil {
		return check.Unavailable("sec.firewall", "systemctl not found")
	}
	for _, unit := range []string{"firewalld", "iptables"} {
		out, _, err := run.Run(ctx, "systemctl", "is-active", unit)
		if err != nil {
			continue
		}
		if strings.TrimSpace(out) == "active" {
			return check.New("sec.firewall", check.StatusOK, unit, unit+" active")
		}
	}
	return check.New("sec.firewall", check.StatusWarning, "none", "no active firewall service")
}

func (c *Checker) updatesResult(ctx context.Context, run execx.Runner) check.Result {
	var tool string
	for _, candidate := range []string{"dnf", "yum"} {
		if _, err := run.LookPath(candidate); err == nil {
			tool = candidate
			break
		}
	}
	if tool == "" {
		return check.Unavailable("sec.updates", "no dnf or yum in PATH")
	}

	out, code, err := run.Run(ctx, tool, "check-update", "--quiet")
	if err != nil {
		return check.Unavailable("sec.updates", err.Error())
	}

	var count int
	switch code {
	case 0:
		count = 0
	// check-update exits 100 when updates are available.
	case 100:
		count = countPackageLines(out)
	default:
		return check.Unavailable("sec.updates", fmt.Sprintf("%s check-update exited %d", tool, code))
	}
	return check.New("sec.updates", c.Updates.Classify(float64(count)), strconv.Itoa(count),
		fmt.Sprintf("%d packages can be updated", count))
}

// countPackageLines counts the name/version/repo rows in check-update
// output, ignoring section headers and wrapped continuation lines.
func countPackageLines(out string) int {
	count := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "Obsoleting") {
			continue
		}
		if len(strings.Fields(line)) >= 3 {
			count++
		}
	}
	return count
}

func (c *Checker) failedLoginsResult() check.Result {
	paths := c.AuthLogPaths
	if len(paths) == 0 {
		paths = []string{"/var/log/secure", "/var/log/auth.log"}
	}

	var f *os.File
	for _, path := range paths {
		if opened, err := os.Open(path); err == nil {
			f = opened
			break
		}
	}
	if f == nil {
		return check.Unavailable("sec.failed_logins", "no auth log found")
	}
	defer f.Close()

	now := c.now()
	prefixes := []string{now.Format("Jan _2"), now.Format("2006-01-02")}
	count, err := countFailedLogins(f, prefixes)
	if err != nil {
		return check.Unavailable("sec.failed_logins", err.Error())
	}
	return check.New("sec.failed_logins", c.FailedLogins.Classify(float64(count)), strconv.Itoa(count),
		fmt.Sprintf("%d failed ssh logins today", count))
}

// countFailedLogins scans an auth log for today's "Failed password"
// lines. Both the traditional syslog timestamp and the ISO form used
// by newer rsyslog configs are matched.
func countFailedLogins(r io.Reader, prefixes []string) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Failed password") {
			continue
		}
		for _, p := range prefixes {
			if strings.HasPrefix(line, p) {
				count++
				break
			}
		}
	}
	return count, scanner.Err()
}
