package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "file:.younginvestor", cfg.Store)
	assert.Equal(t, "default", cfg.Slot)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("YI_STORE", "sqlite:saves.db")
	t.Setenv("YI_SLOT", "noa")
	t.Setenv("YI_PORT", "9090")
	t.Setenv("YI_LOG_PRETTY", "false")
	t.Setenv("YI_DEV_MODE", "1")
	t.Setenv("YI_ALLOWED_ORIGINS", "http://localhost:5173, https://game.example ,")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite:saves.db", cfg.Store)
	assert.Equal(t, "noa", cfg.Slot)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.LogPretty)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, []string{"http://localhost:5173", "https://game.example"}, cfg.AllowedOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	// godotenv never overrides variables that are already set
	t.Setenv("YI_SLOT", "from-env")
	os.Unsetenv("YI_LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("YI_LOG_LEVEL") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("YI_SLOT=from-file\nYI_LOG_LEVEL=debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Slot)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port":        {"YI_PORT": "70000"},
		"half s3 key": {"YI_S3_ACCESS_KEY_ID": "key"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
