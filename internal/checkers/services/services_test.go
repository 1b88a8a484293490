package services

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

type fakeRunner struct {
	lookErr   error
	responses map[string]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, int, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	return f.responses[key], 0, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + name, nil
}

func TestCheckWithoutSystemctl(t *testing.T) {
	c := &Checker{
		Units:  []string{"sshd"},
		Runner: &fakeRunner{lookErr: exec.ErrNotFound},
	}
	results, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("unexpected result count: got %d want 1", len(results))
	}
	if results[0].Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", results[0].Status, check.StatusInfo)
	}
	if !strings.Contains(results[0].Message, "cannot determine") {
		t.Fatalf("unexpected message: %q", results[0].Message)
	}
}

func TestUnitResultActive(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"systemctl list-unit-files sshd.service --no-legend": "sshd.service enabled",
		"systemctl is-active sshd.service":                   "active",
		"systemctl is-enabled sshd.service":                  "enabled",
	}}
	c := &Checker{Runner: run}

	got, ok := c.unitResult(context.Background(), run, "sshd")
	if !ok {
		t.Fatal("expected a result for installed unit")
	}
	if got.Status != check.StatusOK {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusOK)
	}
	if got.Message != "sshd active (enabled)" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestUnitResultInactive(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"systemctl list-unit-files nginx.service --no-legend": "nginx.service disabled",
		"systemctl is-active nginx.service":                   "inactive",
		"systemctl is-enabled nginx.service":                  "disabled",
	}}
	c := &Checker{Runner: run}

	got, ok := c.unitResult(context.Background(), run, "nginx")
	if !ok {
		t.Fatal("expected a result for installed unit")
	}
	if got.Status != check.StatusCritical {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusCritical)
	}
	if got.Value != "inactive" {
		t.Fatalf("unexpected value: %q", got.Value)
	}
}

func TestUnitResultNotInstalled(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{}}
	c := &Checker{Runner: run}
	if _, ok := c.unitResult(context.Background(), run, "mariadb"); ok {
		t.Fatal("expected missing unit to be skipped")
	}
}

func TestFailedUnitsResult(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{
		"systemctl list-units --state=failed --no-legend --plain": "crond.service loaded failed failed Command Scheduler\npostfix.service loaded failed failed Postfix",
	}}
	c := &Checker{Runner: run}

	got := c.failedUnitsResult(context.Background(), run)
	if got.Status != check.StatusWarning {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusWarning)
	}
	if !strings.Contains(got.Message, "crond.service, postfix.service") {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestFailedUnitsResultClean(t *testing.T) {
	run := &fakeRunner{responses: map[string]string{}}
	c := &Checker{Runner: run}

	got := c.failedUnitsResult(context.Background(), run)
	if got.Status != check.StatusOK {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusOK)
	}
	if got.Message != "no failed units" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestParseFailedUnits(t *testing.T) {
	out := "a.service loaded failed failed A\n\nb.service loaded failed failed B\n"
	got := parseFailedUnits(out)
	if len(got) != 2 || got[0] != "a.service" || got[1] != "b.service" {
		t.Fatalf("unexpected units: %v", got)
	}
	if parseFailedUnits("") != nil {
		t.Fatal("expected no units for empty output")
	}
}
