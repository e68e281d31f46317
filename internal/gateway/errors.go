package gateway

import (
	"errors"
	"net/http"
)

// Details returned to HTTP callers.
const (
	detailTimedOut      = "CLI command timed out"
	detailCommandFailed = "CLI command failed"
	detailAgentRequired = "agent is required"
	detailPromptMissing = "prompt is required"
)

// ErrCommandTimedOut is returned when the CLI outlives the configured timeout.
var ErrCommandTimedOut = errors.New(detailTimedOut)

// ValidationError reports a request rejected before any process is spawned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CommandFailedError reports a CLI run that exited non-zero or could not start.
// Message is the trimmed stderr, or a generic message when stderr was empty.
type CommandFailedError struct {
	ExitCode int // -1 when the process never started
	Message  string
}

func (e *CommandFailedError) Error() string { return e.Message }

// statusFor maps a gateway error to an HTTP status and a detail string.
func statusFor(err error) (int, string) {
	var ve *ValidationError
	var cf *CommandFailedError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, ErrCommandTimedOut):
		return http.StatusGatewayTimeout, detailTimedOut
	case errors.As(err, &cf):
		return http.StatusInternalServerError, cf.Message
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
