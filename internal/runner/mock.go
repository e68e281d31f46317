package runner

import (
	"context"
	"sync"
)

// MockRunner is a test double for ProcessRunner. It records every request
// and never spawns a process.
type MockRunner struct {
	RunFunc func(ctx context.Context, req Request) (*Result, error)

	mu    sync.Mutex
	calls []Request
}

// Run records req and delegates to RunFunc, defaulting to a clean exit with
// empty output.
func (m *MockRunner) Run(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, req)
	}
	return &Result{}, nil
}

// Calls returns a copy of the recorded requests.
func (m *MockRunner) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
