package config

import (
	"fmt"
	"os"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// CLI validation
	if cfg.CLI.Command == "" {
		issues = append(issues, ValidationIssue{
			Path:    "cli.command",
			Message: "command is required",
		})
	}
	if cfg.CLI.TimeoutSeconds <= 0 {
		issues = append(issues, ValidationIssue{
			Path:    "cli.timeoutSeconds",
			Message: fmt.Sprintf("must be positive, got %d", cfg.CLI.TimeoutSeconds),
		})
	}
	if cfg.CLI.WorkDir != "" {
		if info, err := os.Stat(cfg.CLI.WorkDir); err != nil || !info.IsDir() {
			issues = append(issues, ValidationIssue{
				Path:    "cli.workDir",
				Message: fmt.Sprintf("not a directory: %s", cfg.CLI.WorkDir),
			})
		}
	}

	// Server validation
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBinds := []string{"auto", "lan", "loopback", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}

	if cfg.Server.TLS.Enabled && (cfg.Server.TLS.CertPath == "" || cfg.Server.TLS.KeyPath == "") {
		issues = append(issues, ValidationIssue{
			Path:    "server.tls",
			Message: "certPath and keyPath are required when TLS is enabled",
		})
	}

	if cfg.Server.MaxBodyBytes < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "server.maxBodyBytes",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Server.MaxBodyBytes),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStyles := []string{"pretty", "json"}
	if cfg.Logging.Style != "" && !slices.Contains(validStyles, cfg.Logging.Style) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.style",
			Message: fmt.Sprintf("must be one of %v, got %q", validStyles, cfg.Logging.Style),
		})
	}

	// Hooks validation
	hookLists := []struct {
		path    string
		entries []HookEntry
	}{
		{"hooks.gatewayStart", cfg.Hooks.GatewayStart},
		{"hooks.gatewayStop", cfg.Hooks.GatewayStop},
		{"hooks.commandStart", cfg.Hooks.CommandStart},
		{"hooks.commandDone", cfg.Hooks.CommandDone},
	}
	for _, list := range hookLists {
		for i, h := range list.entries {
			if h.Command == "" {
				issues = append(issues, ValidationIssue{
					Path:    fmt.Sprintf("%s[%d].command", list.path, i),
					Message: "command is required",
				})
			}
		}
	}

	return issues
}
