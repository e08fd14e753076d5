package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps config discovery away from the developer's files
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	return dir
}

func TestLoadDefaultConfig(t *testing.T) {
	isolate(t)

	config, err := LoadDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, OutputFormatText, config.OutputFormat)
}

func TestLoadConfigDiscoversFile(t *testing.T) {
	dir := isolate(t)
	content := "log_level: debug\nlog_format: json\noutput_format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "relf.yaml"), []byte(content), 0o644))

	config, err := LoadDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, OutputFormatJSON, config.OutputFormat)
}

func TestLoadConfigFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: JSON\n"), 0o644))

	config, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, OutputFormatJSON, config.OutputFormat)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfigFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("RELF_LOG_LEVEL", "error")
	t.Setenv("RELF_OUTPUT_FORMAT", "json")

	config, err := LoadDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.LogLevel)
	assert.Equal(t, OutputFormatJSON, config.OutputFormat)
}

func TestLoadWithOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("RELF_OUTPUT_FORMAT", "text")

	manager := NewConfigManager()
	err := manager.LoadWithOverrides("", map[string]interface{}{
		"output_format": "json",
		"log_level":     "debug",
	})
	require.NoError(t, err)

	config := manager.GetConfig()
	assert.Equal(t, OutputFormatJSON, config.OutputFormat)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
		want      string
	}{
		{"log level", map[string]interface{}{"log_level": "loud"}, "invalid log level"},
		{"log format", map[string]interface{}{"log_format": "xml"}, "invalid log format"},
		{"output format", map[string]interface{}{"output_format": "yaml"}, "invalid output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			err := NewConfigManager().LoadWithOverrides("", tt.overrides)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}

func TestConfigLoggerConfig(t *testing.T) {
	config := &Config{LogLevel: "debug", LogFormat: "json"}
	lc := config.LoggerConfig()
	assert.Equal(t, LogLevelDebug, lc.Level)
	assert.Equal(t, LogFormatJSON, lc.Format)
}

func TestGetVersionString(t *testing.T) {
	assert.Contains(t, GetVersionString(), "(commit: unknown, built: unknown)")
}
