package hardware

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/execx"
)

var diskPrefixes = []string{"sd", "nvme", "vd", "xvd", "hd"}

// Checker reads hwmon temperature sensors and asks smartctl for drive
// health. SysPath defaults to /sys and exists for tests.
type Checker struct {
	Temp    check.Threshold
	Runner  execx.Runner
	SysPath string
}

func (c *Checker) Name() string { return "Hardware" }

func (c *Checker) runner() execx.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return execx.System{}
}

func (c *Checker) Check(ctx context.Context) ([]check.Result, error) {
	sys := c.SysPath
	if sys == "" {
		sys = "/sys"
	}
	results := c.temperatureResults(sys)
	results = append(results, c.smartResults(ctx, sys)...)
	return results, nil
}

func (c *Checker) temperatureResults(sysPath string) []check.Result {
	inputs, err := filepath.Glob(filepath.Join(sysPath, "class", "hwmon", "hwmon*", "temp*_input"))
	if err != nil || len(inputs) == 0 {
		return []check.Result{check.Unavailable("hw.temp", "no hwmon sensors found")}
	}
	sort.Strings(inputs)

	var results []check.Result
	for _, input := range inputs {
		deg, err := readMilli(input)
		if err != nil {
			continue
		}
		label := sensorLabel(input)
		metric := "hw.temp." + strings.ReplaceAll(label, " ", "_")
		results = append(results, check.New(metric, c.Temp.Classify(deg), fmt.Sprintf("%.1f", deg),
			fmt.Sprintf("%s at %.1f°C", label, deg)))
	}
	if len(results) == 0 {
		return []check.Result{check.Unavailable("hw.temp", "no readable hwmon sensors")}
	}
	return results
}

// readMilli parses a sysfs value in millidegrees.
func readMilli(path string) (float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, err
	}
	return float64(v) / 1000, nil
}

// sensorLabel combines the chip name with the per-sensor label when
// one exists, falling back to the input file stem.
func sensorLabel(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), "_input")

	chip := filepath.Base(filepath.Dir(input))
	if raw, err := os.ReadFile(filepath.Join(filepath.Dir(input), "name")); err == nil {
		if name := strings.TrimSpace(string(raw)); name != "" {
			chip = name
		}
	}

	if raw, err := os.ReadFile(strings.TrimSuffix(input, "_input") + "_label"); err == nil {
		if label := strings.TrimSpace(string(raw)); label != "" {
			return chip + " " + label
		}
	}
	return chip + " " + stem
}

func (c *Checker) smartResults(ctx context.Context, sysPath string) []check.Result {
	devs := blockDevices(sysPath)
	if len(devs) == 0 {
		return nil
	}

	run := c.runner()
	if _, err := run.LookPath("smartctl"); err != nil {
		return []check.Result{check.Unavailable("hw.smart", "smartctl not found")}
	}

	var results []check.Result
	for _, dev := range devs {
		out, code, err := run.Run(ctx, "smartctl", "-H", "-j", "/dev/"+dev)
		if err != nil {
			results = append(results, check.Unavailable("hw.smart."+dev, err.Error()))
			continue
		}
		passed, model, err := parseSmartHealth([]byte(out))
		if err != nil {
			results = append(results, check.Unavailable("hw.smart."+dev,
				fmt.Sprintf("smartctl exited %d: %v", code, err)))
			continue
		}
		if model == "" {
			model = dev
		}
		if passed {
			results = append(results, check.New("hw.smart."+dev, check.StatusOK, "passed",
				fmt.Sprintf("%s (%s) smart health passed", dev, model)))
		} else {
			results = append(results, check.New("hw.smart."+dev, check.StatusCritical, "failed",
				fmt.Sprintf("%s (%s) smart health failed", dev, model)))
		}
	}
	return results
}

// blockDevices lists whole disks under sys/block, skipping loop and
// device-mapper entries.
func blockDevices(sysPath string) []string {
	entries, err := os.ReadDir(filepath.Join(sysPath, "block"))
	if err != nil {
		return nil
	}
	var devs []string
	for _, e := range entries {
		name := e.Name()
		for _, p := range diskPrefixes {
			if strings.HasPrefix(name, p) {
				devs = append(devs, name)
				break
			}
		}
	}
	return devs
}

func parseSmartHealth(out []byte) (bool, string, error) {
	var report struct {
		ModelName   string `json:"model_name"`
		SmartStatus *struct {
			Passed bool `json:"passed"`
		} `json:"smart_status"`
	}
	if err := json.Unmarshal(out, &report); err != nil {
		return false, "", err
	}
	if report.SmartStatus == nil {
		return false, "", fmt.Errorf("no smart_status in output")
	}
	return report.SmartStatus.Passed, report.ModelName, nil
}
