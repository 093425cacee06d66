package support

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) LookupEnv {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tally.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func usesDefaults(t *testing.T) {
	cfg, err := LoadConfig("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":3000", cfg.Address())
}

func readsFile(t *testing.T) {
	path := writeConfig(t, `
host: 127.0.0.1
port: 8080
log_level: warn
shutdown_timeout: 3s
`)

	cfg, err := LoadConfig(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "logs", cfg.LogDir)
}

func acceptsEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""), env(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func rejectsUnknownFileKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "prot: 8080\n"), env(nil))
	assert.Error(t, err)
}

func rejectsMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), env(nil))
	assert.Error(t, err)
}

func environmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 8080\nlog_level: warn\n")

	cfg, err := LoadConfig(path, env(map[string]string{
		"PORT":             "9090",
		"LOG_LEVEL":        "error",
		"LOG_DIR":          "",
		"METRICS_ADDR":     ":9100",
		"SHUTDOWN_TIMEOUT": "250ms",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "logs", cfg.LogDir, "empty variables are ignored")
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
}

func rejectsInvalidPort(t *testing.T) {
	_, err := LoadConfig("", env(map[string]string{"PORT": "three thousand"}))
	assert.ErrorContains(t, err, "PORT")

	_, err = LoadConfig("", env(map[string]string{"PORT": "70000"}))
	assert.ErrorContains(t, err, "out of range")
}

func requiresTraceEndpoint(t *testing.T) {
	_, err := LoadConfig("", env(map[string]string{"TRACE_EXPORTER": "otlp"}))
	assert.Error(t, err)

	cfg, err := LoadConfig("", env(map[string]string{
		"TRACE_EXPORTER": "otlp",
		"TRACE_ENDPOINT": "localhost:4317",
		"TRACE_INSECURE": "true",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.TraceInsecure)

	_, err = LoadConfig("", env(map[string]string{"TRACE_EXPORTER": "zipkin"}))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("uses defaults", usesDefaults)
	t.Run("reads file", readsFile)
	t.Run("accepts empty file", acceptsEmptyFile)
	t.Run("rejects unknown file keys", rejectsUnknownFileKeys)
	t.Run("rejects missing file", rejectsMissingFile)
	t.Run("environment overrides file", environmentOverridesFile)
	t.Run("rejects invalid port", rejectsInvalidPort)
	t.Run("requires trace endpoint", requiresTraceEndpoint)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "PORT", EnvName("port"))
	assert.Equal(t, "LOG_LEVEL", EnvName("log_level"))
	assert.Equal(t, "SHUTDOWN_TIMEOUT", EnvName("shutdown_timeout"))
}
