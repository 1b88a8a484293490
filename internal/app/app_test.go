package app

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/config"
	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

func TestCheckPrivilege(t *testing.T) {
	if err := CheckPrivilege(0); err != nil {
		t.Fatalf("unexpected error for root: %v", err)
	}
	if err := CheckPrivilege(1000); err == nil {
		t.Fatal("expected error for unprivileged caller")
	}
}

func TestBuildCheckersOrder(t *testing.T) {
	checkers := buildCheckers(config.DefaultConfig())

	want := []string{
		"System Information", "CPU", "Memory", "Disk", "Network",
		"Services", "Security", "Logs", "Hardware",
	}
	if len(checkers) != len(want) {
		t.Fatalf("unexpected checker count: got %d want %d", len(checkers), len(want))
	}
	for i, name := range want {
		if got := checkers[i].Name(); got != name {
			t.Fatalf("unexpected checker at %d: got %q want %q", i, got, name)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlags(&cfg, Options{
		OutputDir:  "/tmp/reports",
		ForceEmail: true,
		HTML:       true,
		Verbose:    true,
	})

	if cfg.OutputDir != "/tmp/reports" {
		t.Fatalf("unexpected output dir: %q", cfg.OutputDir)
	}
	if !cfg.EmailEnabled || !cfg.HTMLReport {
		t.Fatalf("expected email and html to be forced on: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}

	cfg = config.DefaultConfig()
	applyFlags(&cfg, Options{})
	if cfg.EmailEnabled || cfg.LogLevel != "info" {
		t.Fatalf("flags must not change defaults when unset: %+v", cfg)
	}
}

type stubChecker struct {
	name    string
	results []check.Result
	err     error
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(context.Context) ([]check.Result, error) {
	return s.results, s.err
}

func TestRunCheckerDegradesFailure(t *testing.T) {
	chk := &stubChecker{name: "System Information", err: context.DeadlineExceeded}
	results := runChecker(context.Background(), chk, time.Second)
	if len(results) != 1 {
		t.Fatalf("unexpected result count: got %d want 1", len(results))
	}
	if results[0].Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", results[0].Status, check.StatusInfo)
	}
	if results[0].Metric != "system_information" {
		t.Fatalf("unexpected metric: %q", results[0].Metric)
	}
}

func TestRunCheckerDegradesEmpty(t *testing.T) {
	chk := &stubChecker{name: "Disk"}
	results := runChecker(context.Background(), chk, time.Second)
	if len(results) != 1 {
		t.Fatalf("unexpected result count: got %d want 1", len(results))
	}
	if results[0].Message != "cannot determine: no data" {
		t.Fatalf("unexpected message: %q", results[0].Message)
	}
}

func TestRunCheckerPassesResultsThrough(t *testing.T) {
	want := []check.Result{check.New("cpu.usage", check.StatusOK, "10.0%", "usage 10.0%")}
	chk := &stubChecker{name: "CPU", results: want}
	results := runChecker(context.Background(), chk, time.Second)
	if len(results) != 1 || results[0].Metric != "cpu.usage" {
		t.Fatalf("unexpected results: %v", results)
	}
}
