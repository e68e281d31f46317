package config

import (
	"fmt"
	"os"
)

const (
	DefaultCommand        = "crowelogic"
	DefaultTimeoutSeconds = 120
	DefaultPort           = 8080
	DefaultMaxBodyBytes   = 1 << 20
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
// The working directory defaults to the process's current directory.
func Defaults() Config {
	cfg := Config{
		CLI: CLIConfig{
			Command:        DefaultCommand,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Server: ServerConfig{
			Port:         DefaultPort,
			Bind:         "loopback",
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.CLI.WorkDir = wd
	}
	return cfg
}
