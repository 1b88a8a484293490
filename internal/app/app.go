package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/cpu"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/disk"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/hardware"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/logs"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/memory"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/network"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/security"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/services"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/checkers/sysinfo"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/config"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/console"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/mailer"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/report"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/utils/logger"
)

// Options carries the command line switches into a run.
type Options struct {
	ConfigPath     string
	ConfigRequired bool
	OutputDir      string
	ForceEmail     bool
	HTML           bool
	Verbose        bool
	NoColor        bool
	Version        string
}

// CheckPrivilege rejects non-root callers. dmesg, smartctl and the
// auth logs are only readable by root.
func CheckPrivilege(euid int) error {
	if euid != 0 {
		return fmt.Errorf("must run as root (running as uid %d)", euid)
	}
	return nil
}

// Run executes every checker once, in order, and writes the report.
// Checker failures degrade to INFO results; only config, privilege and
// report IO problems make the run fail.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(&cfg, opts)

	if opts.NoColor {
		color.NoColor = true
	}

	log, closeLog, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if closeLog != nil {
		defer closeLog()
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	log.Infof("health check started on %s", hostname)

	printer := console.New()
	printer.Header(hostname, opts.Version)

	rep := report.New(hostname)
	for _, chk := range buildCheckers(cfg) {
		printer.Section(chk.Name())
		results := runChecker(ctx, chk, cfg.CheckTimeout)
		for _, res := range results {
			printer.Result(res)
			logResult(log, res)
		}
		rep.Add(chk.Name(), results)

		if ctx.Err() != nil {
			log.Errorf("run aborted: %v", ctx.Err())
			return fmt.Errorf("aborted: %w", ctx.Err())
		}
	}

	path, err := report.Write(rep, cfg.OutputDir, opts.Version)
	if err != nil {
		log.Errorf("write report: %v", err)
		return fmt.Errorf("write report: %w", err)
	}
	log.Infof("report written: %s", path)

	if cfg.HTMLReport {
		htmlPath, err := report.WriteHTML(rep, cfg.OutputDir, opts.Version)
		if err != nil {
			log.Errorf("write html report: %v", err)
		} else {
			log.Infof("html report written: %s", htmlPath)
		}
	}

	if cfg.RetentionDays > 0 {
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		removed, err := report.Prune(cfg.OutputDir, retention, time.Now())
		if err != nil {
			log.Warnf("prune old reports: %v", err)
		} else if removed > 0 {
			log.Infof("pruned %d old reports", removed)
		}
	}

	if cfg.EmailEnabled {
		if err := sendReport(ctx, cfg, rep, opts.Version); err != nil {
			log.Errorf("send report mail: %v", err)
		} else {
			log.Infof("report mailed to %s", cfg.AdminEmail)
		}
	}

	printer.Summary(rep.Summary(), rep.Worst(), path)
	log.Infof("health check finished: %s", rep.Worst())
	return nil
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err == nil {
		return cfg, nil
	}
	// The stock config path may simply not exist yet. An explicitly
	// requested file must.
	if errors.Is(err, os.ErrNotExist) && !opts.ConfigRequired {
		return config.Load("")
	}
	return config.Config{}, err
}

func applyFlags(cfg *config.Config, opts Options) {
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.ForceEmail {
		cfg.EmailEnabled = true
	}
	if opts.HTML {
		cfg.HTMLReport = true
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
}

func buildLogger(cfg config.Config) (*logger.Logger, func(), error) {
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	format := cfg.LogFormat
	if format == "" {
		format = "text"
	}

	if cfg.LogFile == "" {
		return logger.New(logger.Config{Level: level, Format: format}), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		_ = file.Close()
	}
	return logger.New(logger.Config{Level: level, Format: format, Output: file}), closeFn, nil
}

// buildCheckers wires the configured thresholds into the fixed report
// order.
func buildCheckers(cfg config.Config) []check.Checker {
	above := func(metric string, warn, crit float64) check.Threshold {
		return check.Threshold{Metric: metric, Warning: warn, Critical: crit, Direction: check.DirectionAbove}
	}

	return []check.Checker{
		&sysinfo.Checker{},
		&cpu.Checker{
			Usage:  above("cpu.usage", cfg.CPUWarning, cfg.CPUCritical),
			IOWait: above("cpu.iowait", cfg.IOWaitWarning, cfg.IOWaitCritical),
			Load:   above("cpu.load", cfg.LoadWarning, cfg.LoadCritical),
			Sample: cfg.CPUSample,
		},
		&memory.Checker{
			Usage: above("mem.usage", cfg.MemoryWarning, cfg.MemoryCritical),
			Swap:  above("mem.swap", cfg.SwapWarning, cfg.SwapCritical),
		},
		&disk.Checker{
			Usage: above("disk.usage", cfg.DiskWarning, cfg.DiskCritical),
			Inode: above("disk.inodes", cfg.InodeWarning, cfg.InodeCritical),
		},
		&network.Checker{DNSHost: cfg.DNSTestHost},
		&services.Checker{Units: cfg.Services},
		&security.Checker{
			Updates:      above("sec.updates", cfg.UpdatesWarning, cfg.UpdatesCritical),
			FailedLogins: above("sec.failed_logins", cfg.FailedLoginWarning, cfg.FailedLoginCritical),
		},
		&logs.Checker{
			KernelErr:      above("logs.kernel_errors", cfg.KernelErrWarning, cfg.KernelErrCritical),
			LargeFileBytes: cfg.LargeFileMB << 20,
		},
		&hardware.Checker{
			Temp: above("hw.temp", cfg.TempWarning, cfg.TempCritical),
		},
	}
}

// CheckerNames lists the report sections in run order.
func CheckerNames() []string {
	checkers := buildCheckers(config.DefaultConfig())
	names := make([]string, 0, len(checkers))
	for _, chk := range checkers {
		names = append(names, chk.Name())
	}
	return names
}

// runChecker gives one checker a bounded slice of the run and folds
// any hard failure into an INFO result so the report stays complete.
func runChecker(ctx context.Context, chk check.Checker, timeout time.Duration) []check.Result {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := chk.Check(cctx)
	if err != nil {
		return []check.Result{check.Unavailable(metricName(chk.Name()), err.Error())}
	}
	if len(results) == 0 {
		return []check.Result{check.Unavailable(metricName(chk.Name()), "no data")}
	}
	return results
}

func metricName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}

func sendReport(ctx context.Context, cfg config.Config, rep *report.Report, version string) error {
	var body strings.Builder
	if err := report.Render(&body, rep, version); err != nil {
		return err
	}

	m := &mailer.Mailer{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		Username:      cfg.SMTPUsername,
		Password:      cfg.SMTPPassword,
		From:          cfg.SMTPFrom,
		To:            []string{cfg.AdminEmail},
		ImplicitTLS:   cfg.SMTPImplicitTLS,
		SkipVerifyTLS: cfg.SMTPSkipVerify,
	}
	subject := fmt.Sprintf("[%s] system health report - %s", rep.Worst(), rep.Hostname)
	return m.Send(ctx, subject, body.String())
}

func logResult(log *logger.Logger, res check.Result) {
	switch res.Status {
	case check.StatusCritical:
		log.Errorf("%s: %s", res.Metric, res.Message)
	case check.StatusWarning:
		log.Warnf("%s: %s", res.Metric, res.Message)
	default:
		log.Infof("%s: %s", res.Metric, res.Message)
	}
}
