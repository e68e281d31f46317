package gateway

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/soyeahso/crowelogic-gateway/internal/api"
	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/hooks"
	"github.com/soyeahso/crowelogic-gateway/internal/logging"
	"github.com/soyeahso/crowelogic-gateway/internal/runner"
)

// ChatArgs builds: tool chat run <prompt> [-s <system>].
func ChatArgs(tool string, req api.ChatRequest) []string {
	args := []string{tool, "chat", "run", req.Prompt}
	if req.System != "" {
		args = append(args, "-s", req.System)
	}
	return args
}

// AgentArgs builds: tool agent run <agent> <prompt> [-f <file>] [-s <system>].
func AgentArgs(tool string, req api.AgentRequest) []string {
	args := []string{tool, "agent", "run", req.Agent, req.Prompt}
	if req.FilePath != "" {
		args = append(args, "-f", req.FilePath)
	}
	if req.System != "" {
		args = append(args, "-s", req.System)
	}
	return args
}

// DoctorArgs builds: tool doctor run.
func DoctorArgs(tool string) []string {
	return []string{tool, "doctor", "run"}
}

// CommandGateway turns argument vectors into CLI runs and maps the outcome
// to output or a typed error. It holds no per-request state.
type CommandGateway struct {
	cfg    config.CLIConfig
	env    []string
	runner runner.ProcessRunner
	hooks  *hooks.Manager
	log    *logging.Logger
}

// NewCommandGateway snapshots the process environment and applies the
// CROWELOGIC_CONFIG_PATH override. hm may be nil.
func NewCommandGateway(cfg config.CLIConfig, r runner.ProcessRunner, hm *hooks.Manager, log *logging.Logger) *CommandGateway {
	return &CommandGateway{
		cfg:    cfg,
		env:    childEnv(os.Environ(), cfg.ConfigPath),
		runner: r,
		hooks:  hm,
		log:    log.Sub("commands"),
	}
}

// childEnv returns base with configPath exported as CROWELOGIC_CONFIG_PATH,
// replacing any inherited value.
func childEnv(base []string, configPath string) []string {
	if configPath == "" {
		return base
	}
	prefix := config.EnvConfigPath + "="
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if !strings.HasPrefix(kv, prefix) {
			env = append(env, kv)
		}
	}
	return append(env, prefix+configPath)
}

// Tool returns the configured executable name.
func (g *CommandGateway) Tool() string { return g.cfg.Command }

// Execute runs args and returns trimmed stdout on a zero exit. A non-zero
// exit yields *CommandFailedError with stdout discarded; exceeding the
// timeout yields ErrCommandTimedOut after the process group is killed.
func (g *CommandGateway) Execute(ctx context.Context, args []string) (string, error) {
	subcommand := ""
	if len(args) > 1 {
		subcommand = args[1]
	}
	g.hooks.EmitAsync(context.WithoutCancel(ctx), hooks.EventCommandStart, map[string]any{
		"subcommand": subcommand,
	})

	res, err := g.runner.Run(ctx, runner.Request{
		Args:    args,
		Dir:     g.cfg.WorkDir,
		Env:     g.env,
		Timeout: g.cfg.Timeout(),
	})

	out, err := g.interpret(ctx, res, err)

	status := "ok"
	switch {
	case errors.Is(err, ErrCommandTimedOut):
		status = "timeout"
	case err != nil:
		status = "failed"
	}
	done := map[string]any{"subcommand": subcommand, "status": status}
	if res != nil {
		done["exitCode"] = res.ExitCode
		done["durationMs"] = res.Duration.Milliseconds()
	}
	g.hooks.EmitAsync(context.WithoutCancel(ctx), hooks.EventCommandDone, done)

	return out, err
}

func (g *CommandGateway) interpret(ctx context.Context, res *runner.Result, err error) (string, error) {
	log := g.log
	if id := requestIDFrom(ctx); id != "" {
		log = log.With("requestId", id)
	}

	if err != nil {
		if errors.Is(err, runner.ErrTimedOut) {
			log.Warn().Err(err).Dur("timeout", g.cfg.Timeout()).Msg("CLI command timed out")
			return "", ErrCommandTimedOut
		}
		log.Error().Err(err).Msg("CLI command could not run")
		return "", &CommandFailedError{ExitCode: -1, Message: err.Error()}
	}

	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = detailCommandFailed
		}
		log.Warn().Int("exitCode", res.ExitCode).Str("stderr", msg).Msg("CLI command failed")
		return "", &CommandFailedError{ExitCode: res.ExitCode, Message: msg}
	}

	return strings.TrimSpace(res.Stdout), nil
}

// Chat runs the chat subcommand.
func (g *CommandGateway) Chat(ctx context.Context, req api.ChatRequest) (string, error) {
	return g.Execute(ctx, ChatArgs(g.cfg.Command, req))
}

// Agent runs the agent subcommand. An empty agent name is rejected without
// spawning a process.
func (g *CommandGateway) Agent(ctx context.Context, req api.AgentRequest) (string, error) {
	if req.Agent == "" {
		return "", &ValidationError{Message: detailAgentRequired}
	}
	return g.Execute(ctx, AgentArgs(g.cfg.Command, req))
}

// Doctor runs the doctor subcommand.
func (g *CommandGateway) Doctor(ctx context.Context) (string, error) {
	return g.Execute(ctx, DoctorArgs(g.cfg.Command))
}
