package logs

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GabrielOvie/Enterprise-linux-toolkit/internal/core/check"
)

type fakeRunner struct {
	missing bool
	out     string
	code    int
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ ...string) (string, int, error) {
	return f.out, f.code, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing {
		return "", exec.ErrNotFound
	}
	return "/usr/bin/" + name, nil
}

func testChecker(run *fakeRunner) *Checker {
	return &Checker{
		KernelErr: check.Threshold{Metric: "logs.kernel_errors", Warning: 0, Critical: 50, Direction: check.DirectionAbove},
		Runner:    run,
	}
}

func TestKernelErrResultClean(t *testing.T) {
	run := &fakeRunner{out: ""}
	got := testChecker(run).kernelErrResult(context.Background(), run)
	if got.Status != check.StatusOK {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusOK)
	}
	if got.Message != "no kernel errors in ring buffer" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestKernelErrResultCounts(t *testing.T) {
	run := &fakeRunner{out: "[1.0] oops one\n[2.0] oops two\n"}
	got := testChecker(run).kernelErrResult(context.Background(), run)
	if got.Status != check.StatusWarning {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusWarning)
	}
	if got.Value != "2" {
		t.Fatalf("unexpected value: %q", got.Value)
	}
}

func TestKernelErrResultWithoutDmesg(t *testing.T) {
	run := &fakeRunner{missing: true}
	got := testChecker(run).kernelErrResult(context.Background(), run)
	if got.Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusInfo)
	}
}

func TestKernelErrResultPermissionDenied(t *testing.T) {
	run := &fakeRunner{code: 1}
	got := testChecker(run).kernelErrResult(context.Background(), run)
	if got.Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusInfo)
	}
	if !strings.Contains(got.Message, "dmesg exited 1") {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestLargeFilesResult(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "small.log"), []byte("ok"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	big := bytes.Repeat([]byte("x"), 2048)
	if err := os.WriteFile(filepath.Join(dir, "huge.log"), big, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	c := &Checker{LogDir: dir, LargeFileBytes: 1024}
	got := c.largeFilesResult()
	if got.Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusInfo)
	}
	if got.Value != "1" {
		t.Fatalf("unexpected value: %q", got.Value)
	}
	if !strings.Contains(got.Message, "huge.log") {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestLargeFilesResultClean(t *testing.T) {
	c := &Checker{LogDir: t.TempDir(), LargeFileBytes: 1024}
	got := c.largeFilesResult()
	if got.Status != check.StatusOK {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusOK)
	}
}

func TestLargeFilesResultMissingDir(t *testing.T) {
	c := &Checker{LogDir: filepath.Join(t.TempDir(), "gone")}
	got := c.largeFilesResult()
	if got.Status != check.StatusInfo {
		t.Fatalf("unexpected status: got %s want %s", got.Status, check.StatusInfo)
	}
	if !strings.Contains(got.Message, "cannot determine") {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}
