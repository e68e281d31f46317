package hooks

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloadFrom(t *testing.T, req runner.Request) Payload {
	t.Helper()
	prefix := PayloadEnvVar + "="
	for _, kv := range req.Env {
		if raw, ok := strings.CutPrefix(kv, prefix); ok {
			var p Payload
			require.NoError(t, json.Unmarshal([]byte(raw), &p))
			return p
		}
	}
	t.Fatalf("%s not found in hook env", PayloadEnvVar)
	return Payload{}
}

func TestShellHandler(t *testing.T) {
	mock := &runner.MockRunner{}
	h := ShellHandler(mock, "notify-send done", 0)

	err := h(context.Background(), Payload{Event: EventCommandDone, Data: map[string]any{"status": "ok"}})
	require.NoError(t, err)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"/bin/sh", "-c", "notify-send done"}, calls[0].Args)
	assert.Equal(t, defaultHookTimeout, calls[0].Timeout)

	p := payloadFrom(t, calls[0])
	assert.Equal(t, EventCommandDone, p.Event)
	assert.Equal(t, "ok", p.Data["status"])
}

func TestShellHandlerNonZeroExit(t *testing.T) {
	mock := &runner.MockRunner{
		RunFunc: func(_ context.Context, _ runner.Request) (*runner.Result, error) {
			return &runner.Result{ExitCode: 3, Stderr: "nope\n"}, nil
		},
	}
	h := ShellHandler(mock, "false", time.Second)

	err := h(context.Background(), Payload{Event: EventGatewayStart})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited 3: nope")
}

func TestRegisterConfigured(t *testing.T) {
	m := testManager()
	mock := &runner.MockRunner{}

	n := RegisterConfigured(m, config.HooksConfig{
		GatewayStart: []config.HookEntry{{Command: "echo up"}},
		CommandDone:  []config.HookEntry{{Command: "echo a", Timeout: 250}, {Command: "echo b"}},
	}, mock)

	assert.Equal(t, 3, n)
	assert.Equal(t, 1, m.Count(EventGatewayStart))
	assert.Equal(t, 0, m.Count(EventGatewayStop))
	assert.Equal(t, 2, m.Count(EventCommandDone))

	m.Emit(context.Background(), EventCommandDone, nil)
	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "echo a", calls[0].Args[2])
	assert.Equal(t, 250*time.Millisecond, calls[0].Timeout)
	assert.Equal(t, "echo b", calls[1].Args[2])
}
