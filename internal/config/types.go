package config

import "time"

// Config is the root configuration for the gateway.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	CLI     CLIConfig     `yaml:"cli,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Hooks   HooksConfig   `yaml:"hooks,omitempty"`
}

// CLIConfig controls how the external crowelogic tool is invoked.
type CLIConfig struct {
	Command        string `yaml:"command,omitempty"`        // executable name, resolved via PATH
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"` // per-invocation limit
	WorkDir        string `yaml:"workDir,omitempty"`        // defaults to the startup directory
	ConfigPath     string `yaml:"configPath,omitempty"`     // exported to the child as CROWELOGIC_CONFIG_PATH
}

// Timeout returns the per-invocation limit as a duration.
func (c CLIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port           int       `yaml:"port,omitempty"`
	Bind           string    `yaml:"bind,omitempty"` // "loopback" | "lan" | "auto" | "custom"
	CustomBindHost string    `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string  `yaml:"allowedOrigins,omitempty"`
	TLS            ServerTLS `yaml:"tls,omitempty"`
	MaxBodyBytes   int64     `yaml:"maxBodyBytes,omitempty"`
}

// ServerTLS configures TLS for the listener.
type ServerTLS struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	CertPath string `yaml:"certPath,omitempty"`
	KeyPath  string `yaml:"keyPath,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}

// HooksConfig lists shell commands run on lifecycle events.
type HooksConfig struct {
	GatewayStart []HookEntry `yaml:"gatewayStart,omitempty"`
	GatewayStop  []HookEntry `yaml:"gatewayStop,omitempty"`
	CommandStart []HookEntry `yaml:"commandStart,omitempty"`
	CommandDone  []HookEntry `yaml:"commandDone,omitempty"`
}

// HookEntry defines a single hook action.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}
