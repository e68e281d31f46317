package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/gateway"
	"github.com/soyeahso/crowelogic-gateway/internal/hooks"
	"github.com/soyeahso/crowelogic-gateway/internal/logging"
	"github.com/soyeahso/crowelogic-gateway/internal/runner"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadValidConfig(port, bind)
			if err != nil {
				return err
			}

			log = logging.New(cmd.ErrOrStderr(), resolveLogLevel(cfg.Logging.Level), cfg.Logging.Style)

			procs := runner.NewExecRunner(log)

			hookMgr := hooks.NewManager(log)
			if n := hooks.RegisterConfigured(hookMgr, cfg.Hooks, procs); n > 0 {
				log.Info().Int("count", n).Msg("shell hooks registered")
			}

			commands := gateway.NewCommandGateway(cfg.CLI, procs, hookMgr, log)
			srv := gateway.New(cfg, commands, log, gateway.WithHooks(hookMgr))

			log.Info().
				Str("command", cfg.CLI.Command).
				Str("workDir", cfg.CLI.WorkDir).
				Dur("timeout", cfg.CLI.Timeout()).
				Msg("forwarding to CLI")

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (auto, lan, loopback, custom)")

	return cmd
}

// loadValidConfig loads paths.Config, applies flag overrides and fails on
// any validation issue.
func loadValidConfig(port int, bind string) (config.Config, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return cfg, err
	}

	if port != 0 {
		cfg.Server.Port = port
	}
	if bind != "" {
		cfg.Server.Bind = bind
	}

	issues := config.Validate(&cfg)
	if len(issues) > 0 {
		for _, issue := range issues {
			log.Error().Str("path", issue.Path).Msg(issue.Message)
		}
		return cfg, fmt.Errorf("config validation failed with %d issue(s)", len(issues))
	}
	return cfg, nil
}
