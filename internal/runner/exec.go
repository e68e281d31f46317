package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/soyeahso/crowelogic-gateway/internal/logging"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// descendants after the child itself has been killed.
const waitDelay = 2 * time.Second

// ExecRunner runs processes with os/exec. Each child gets its own process
// group so a timeout kills everything it spawned.
type ExecRunner struct {
	log *logging.Logger
}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner(log *logging.Logger) *ExecRunner {
	return &ExecRunner{log: log.Sub("runner")}
}

// Run starts req.Args and waits for it to exit, the timeout to fire, or ctx
// to be cancelled. Stdout and stderr are captured in full.
func (r *ExecRunner) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Args) == 0 || req.Args[0] == "" {
		return nil, errors.New("runner: empty argument vector")
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, req.Args[0], req.Args[1:]...)
	cmd.Dir = req.Dir
	cmd.Env = req.Env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	r.log.Debug().
		Str("cmd", req.Args[0]).
		Strs("args", req.Args[1:]).
		Str("dir", req.Dir).
		Dur("timeout", req.Timeout).
		Msg("starting process")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", req.Args[0], err)
	}
	err := cmd.Wait()
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.log.Warn().
			Str("cmd", req.Args[0]).
			Int("pid", cmd.Process.Pid).
			Dur("duration", elapsed).
			Err(ctxErr).
			Msg("process killed")
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s after %s: %w", req.Args[0], req.Timeout, ErrTimedOut)
		}
		return nil, ctxErr
	}

	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("waiting for %s: %w", req.Args[0], err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.log.Debug().
		Str("cmd", req.Args[0]).
		Int("exitCode", res.ExitCode).
		Int("stdoutBytes", stdout.Len()).
		Int("stderrBytes", stderr.Len()).
		Dur("duration", elapsed).
		Msg("process exited")

	return res, nil
}
