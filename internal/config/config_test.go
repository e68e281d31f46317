package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvCLITimeout, EnvWorkDir, EnvConfigPath, EnvCLICommand, EnvPort, EnvBind, EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "crowelogic", cfg.CLI.Command)
	assert.Equal(t, 120, cfg.CLI.TimeoutSeconds)
	assert.Equal(t, 120*time.Second, cfg.CLI.Timeout())
	assert.Equal(t, wd, cfg.CLI.WorkDir)
	assert.Empty(t, cfg.CLI.ConfigPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Style)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.CLI.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
cli:
  command: crowelogic-dev
  timeoutSeconds: 30
  workDir: ` + dir + `
  configPath: /etc/crowelogic/config.toml
server:
  port: 9999
  bind: lan
  allowedOrigins:
    - "https://app.example.com"
logging:
  level: debug
  style: json
hooks:
  commandDone:
    - command: "logger done"
      timeout: 500
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "crowelogic-dev", cfg.CLI.Command)
	assert.Equal(t, 30, cfg.CLI.TimeoutSeconds)
	assert.Equal(t, dir, cfg.CLI.WorkDir)
	assert.Equal(t, "/etc/crowelogic/config.toml", cfg.CLI.ConfigPath)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Style)
	require.Len(t, cfg.Hooks.CommandDone, 1)
	assert.Equal(t, "logger done", cfg.Hooks.CommandDone[0].Command)
	assert.Equal(t, 500, cfg.Hooks.CommandDone[0].Timeout)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "crowelogic", cfg.CLI.Command)
	assert.Equal(t, 120, cfg.CLI.TimeoutSeconds)
	assert.Equal(t, "loopback", cfg.Server.Bind)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{invalid yaml"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvCLITimeout, "45")
	t.Setenv(EnvWorkDir, dir)
	t.Setenv(EnvConfigPath, "/tmp/crowelogic.toml")
	t.Setenv(EnvCLICommand, "/opt/bin/crowelogic")
	t.Setenv(EnvPort, "12345")
	t.Setenv(EnvBind, "lan")
	t.Setenv(EnvLogLevel, "TRACE")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.CLI.TimeoutSeconds)
	assert.Equal(t, dir, cfg.CLI.WorkDir)
	assert.Equal(t, "/tmp/crowelogic.toml", cfg.CLI.ConfigPath)
	assert.Equal(t, "/opt/bin/crowelogic", cfg.CLI.Command)
	assert.Equal(t, 12345, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, "trace", cfg.Logging.Level)
}

func TestLoadEnvOverridesBeatFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cli:\n  timeoutSeconds: 10\n"), 0o600))
	t.Setenv(EnvCLITimeout, "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.CLI.TimeoutSeconds)
}

func TestLoadInvalidTimeout(t *testing.T) {
	tests := []string{"abc", "0", "-5", "1.5"}
	for _, v := range tests {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvCLITimeout, v)
			_, err := Load("/nonexistent/config.yaml")
			require.Error(t, err)
			var ce *ConfigError
			assert.ErrorAs(t, err, &ce)
			assert.Contains(t, err.Error(), EnvCLITimeout)
		})
	}
}

func TestLoadExpandsPathVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLI_CFG_DIR", "/srv/cfg")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cli:\n  configPath: ${CLI_CFG_DIR}/crowelogic.toml\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/cfg/crowelogic.toml", cfg.CLI.ConfigPath)
}

func TestExpandEnvVarsUnsetLeftAlone(t *testing.T) {
	assert.Equal(t, "${CROWELOGIC_DEFINITELY_UNSET_VAR}", expandEnvVars("${CROWELOGIC_DEFINITELY_UNSET_VAR}"))
}

func TestLoadEnvFile(t *testing.T) {
	const key = "CROWELOGIC_TEST_DOTENV_VALUE"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	const key = "CROWELOGIC_TEST_DOTENV_KEEP"
	t.Setenv(key, "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv(key))
}

func TestLoadEnvFileMissing(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))
	assert.NoError(t, LoadEnvFile(""))
}

func TestResolvePathsCustomHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("CROWELOGIC_GATEWAY_HOME", tmp)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, tmp, paths.Base)
	assert.Equal(t, filepath.Join(tmp, "config.yaml"), paths.Config)
	assert.Equal(t, ".env", paths.Env)
}
