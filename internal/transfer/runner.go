package transfer

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult is the outcome of a process that started and exited.
type RunResult struct {
	ExitCode int
	Output   []byte
}

// Runner launches external processes. A non-nil error means the process
// could not be run at all; a non-zero exit is reported through RunResult.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (RunResult, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return RunResult{Output: out.Bytes()}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return RunResult{ExitCode: exitErr.ExitCode(), Output: out.Bytes()}, nil
	}
	return RunResult{}, err
}
