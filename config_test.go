package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "APP_MODE", "LOG_LEVEL", "CONTENT_PATH", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearConfigEnv(t)

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "debug", cfg.Mode)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.ContentPath)
		assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("Overrides", func(t *testing.T) {
		clearConfigEnv(t)
		path := filepath.Join(t.TempDir(), "content.yaml")
		require.NoError(t, os.WriteFile(path, defaultContent, 0o644))

		t.Setenv("PORT", "3000")
		t.Setenv("APP_MODE", "release")
		t.Setenv("LOG_LEVEL", "warn")
		t.Setenv("CONTENT_PATH", path)
		t.Setenv("SHUTDOWN_TIMEOUT", "1s")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "release", cfg.Mode)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, path, cfg.ContentPath)
		assert.Equal(t, time.Second, cfg.ShutdownTimeout)
	})

	t.Run("IgnoresGinMode", func(t *testing.T) {
		clearConfigEnv(t)
		t.Setenv("GIN_MODE", "release")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Mode)
	})

	t.Run("Invalid", func(t *testing.T) {
		cases := map[string]string{
			"PORT":          "http",
			"APP_MODE":      "production",
			"LOG_LEVEL":     "loud",
			"CONTENT_PATH":  "/does/not/exist.yaml",
			"READ_TIMEOUT":  "soon",
			"WRITE_TIMEOUT": "-1s",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				clearConfigEnv(t)
				t.Setenv(key, value)
				_, err := loadConfig()
				assert.ErrorIs(t, err, ErrInvalidConfig)
			})
		}
	})
}
