package attributes

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// ToolStatus classifies how an external tool run ended.
type ToolStatus int

const (
	ToolSucceeded ToolStatus = iota
	ToolTimedOut
	ToolFailedToStart
	ToolExitedNonZero
)

func (s ToolStatus) String() string {
	switch s {
	case ToolSucceeded:
		return "succeeded"
	case ToolTimedOut:
		return "timed_out"
	case ToolFailedToStart:
		return "failed_to_start"
	case ToolExitedNonZero:
		return "exited_non_zero"
	default:
		return "unknown"
	}
}

// ToolResult is the outcome of RunTool.
type ToolResult struct {
	Status   ToolStatus
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
	Elapsed  time.Duration
}

// OK reports a zero exit within the deadline.
func (r ToolResult) OK() bool {
	return r.Status == ToolSucceeded
}

// waitDelay caps how long Wait blocks on inherited pipes after the process
// has been killed.
const waitDelay = 100 * time.Millisecond

// RunTool runs name with args and waits at most timeout. It never retries.
func RunTool(ctx context.Context, timeout time.Duration, name string, args ...string) ToolResult {
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return ToolResult{Status: ToolFailedToStart, ExitCode: -1, Err: err}
	}
	err := cmd.Wait()

	res := ToolResult{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Status = ToolTimedOut
		res.ExitCode = -1
		res.Err = ErrToolTimeout
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Status = ToolExitedNonZero
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.Status = ToolFailedToStart
			res.ExitCode = -1
		}
		res.Err = err
	default:
		res.Status = ToolSucceeded
	}
	return res
}
