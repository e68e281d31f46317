// Package runner spawns external processes with captured output and a hard
// time limit.
package runner

import (
	"context"
	"errors"
	"time"
)

// ErrTimedOut is returned when a process outlives its Request.Timeout.
var ErrTimedOut = errors.New("process timed out")

// Request describes a single process invocation.
type Request struct {
	// Args is the argument vector; Args[0] is the executable name.
	Args []string

	// Dir is the working directory. Empty means the caller's directory.
	Dir string

	// Env is the complete child environment. Nil inherits the caller's.
	Env []string

	// Timeout bounds the run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ProcessRunner runs one process per call and reports how it exited.
// A non-zero exit is reported through Result, not as an error; errors mean
// the process could not be started, timed out, or ctx was cancelled.
type ProcessRunner interface {
	Run(ctx context.Context, req Request) (*Result, error)
}
