package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Runner abstracts external command execution for the few checks that
// still need a system binary (systemctl, getenforce, smartctl, dmesg).
// Checkers hold a Runner so tests can substitute canned output.
type Runner interface {
	// Run executes name with args under ctx and returns trimmed stdout
	// plus the exit code. A non-zero exit is not an error here; err is
	// set only when the command could not start or the context ended.
	Run(ctx context.Context, name string, args ...string) (string, int, error)
	LookPath(name string) (string, error)
}

// System runs commands on the host.
type System struct{}

func (System) Run(ctx context.Context, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err != nil {
		if ctx.Err() != nil {
			return out, -1, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, err
	}
	return out, 0, nil
}

func (System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
