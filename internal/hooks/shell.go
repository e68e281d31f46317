package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/runner"
)

// defaultHookTimeout applies when a HookEntry has no timeout.
const defaultHookTimeout = 10 * time.Second

// PayloadEnvVar carries the JSON-encoded Payload into shell hooks.
const PayloadEnvVar = "HOOK_PAYLOAD"

// ShellHandler returns a Handler that runs command through /bin/sh with the
// event payload in $HOOK_PAYLOAD. A non-zero exit is reported as an error.
func ShellHandler(r runner.ProcessRunner, command string, timeout time.Duration) Handler {
	if timeout <= 0 {
		timeout = defaultHookTimeout
	}
	return func(ctx context.Context, p Payload) error {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding hook payload: %w", err)
		}
		res, err := r.Run(ctx, runner.Request{
			Args:    []string{"/bin/sh", "-c", command},
			Env:     append(os.Environ(), PayloadEnvVar+"="+string(data)),
			Timeout: timeout,
		})
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("hook %q exited %d: %s", command, res.ExitCode, strings.TrimSpace(res.Stderr))
		}
		return nil
	}
}

// RegisterConfigured wires every shell hook in cfg to its event.
func RegisterConfigured(m *Manager, cfg config.HooksConfig, r runner.ProcessRunner) int {
	lists := []struct {
		event   string
		entries []config.HookEntry
	}{
		{EventGatewayStart, cfg.GatewayStart},
		{EventGatewayStop, cfg.GatewayStop},
		{EventCommandStart, cfg.CommandStart},
		{EventCommandDone, cfg.CommandDone},
	}

	n := 0
	for _, l := range lists {
		for i, e := range l.entries {
			timeout := time.Duration(e.Timeout) * time.Millisecond
			m.On(l.event, fmt.Sprintf("config.%s[%d]", l.event, i), ShellHandler(r, e.Command, timeout))
			n++
		}
	}
	return n
}
