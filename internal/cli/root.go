package cli

import (
	"os"

	"github.com/soyeahso/crowelogic-gateway/internal/config"
	"github.com/soyeahso/crowelogic-gateway/internal/logging"
	"github.com/soyeahso/crowelogic-gateway/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crowelogic-gateway",
		Short: "HTTP gateway for the crowelogic CLI",
		Long: "crowelogic-gateway exposes the crowelogic command-line tool over HTTP.\n" +
			"It runs chat, agent and doctor commands as subprocesses and returns their output as JSON.",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			if err := config.LoadEnvFile(paths.Env); err != nil {
				return err
			}
			log = logging.New(cmd.ErrOrStderr(), resolveLogLevel(""), "pretty")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.crowelogic-gateway/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newChatCmd())
	cmd.AddCommand(newAgentCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// resolveLogLevel picks --log-level, then $CROWELOGIC_LOG_LEVEL, then fallback,
// then "info".
func resolveLogLevel(fallback string) string {
	if logLevel != "" {
		return logLevel
	}
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return "info"
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
