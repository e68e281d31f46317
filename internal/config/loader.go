package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read at startup.
const (
	EnvCLITimeout = "CROWELOGIC_CLI_TIMEOUT"
	EnvWorkDir    = "CROWELOGIC_WORKDIR"
	EnvConfigPath = "CROWELOGIC_CONFIG_PATH"
	EnvCLICommand = "CROWELOGIC_CLI_COMMAND"
	EnvPort       = "CROWELOGIC_PORT"
	EnvBind       = "CROWELOGIC_BIND"
	EnvLogLevel   = "CROWELOGIC_LOG_LEVEL"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandPathFields resolves ${VAR} references in filesystem paths.
func expandPathFields(cfg *Config) {
	cfg.CLI.WorkDir = expandEnvVars(cfg.CLI.WorkDir)
	cfg.CLI.ConfigPath = expandEnvVars(cfg.CLI.ConfigPath)
	cfg.Server.TLS.CertPath = expandEnvVars(cfg.Server.TLS.CertPath)
	cfg.Server.TLS.KeyPath = expandEnvVars(cfg.Server.TLS.KeyPath)
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &ConfigError{Message: "failed to load env file " + path + ": " + err.Error()}
	}
	return nil
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
		}
		applyDefaults(&cfg)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	expandPathFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.CLI.Command == "" {
		cfg.CLI.Command = def.CLI.Command
	}
	if cfg.CLI.TimeoutSeconds == 0 {
		cfg.CLI.TimeoutSeconds = def.CLI.TimeoutSeconds
	}
	if cfg.CLI.WorkDir == "" {
		cfg.CLI.WorkDir = def.CLI.WorkDir
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.Bind == "" {
		cfg.Server.Bind = def.Server.Bind
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = def.Logging.Style
	}
}

// applyEnvOverrides reads CROWELOGIC_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvCLITimeout); v != "" {
		secs, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || secs <= 0 {
			return &ConfigError{Message: EnvCLITimeout + " must be a positive integer, got " + strconv.Quote(v)}
		}
		cfg.CLI.TimeoutSeconds = secs
	}
	if v := os.Getenv(EnvWorkDir); v != "" {
		cfg.CLI.WorkDir = v
	}
	if v := os.Getenv(EnvConfigPath); v != "" {
		cfg.CLI.ConfigPath = v
	}
	if v := os.Getenv(EnvCLICommand); v != "" {
		cfg.CLI.Command = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv(EnvBind); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	return nil
}
