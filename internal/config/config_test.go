package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("AMBIANCE_AUTH_SECRET", "0123456789abcdef")
	t.Setenv("AMBIANCE_DATABASE_URL", "postgres://localhost/ambiance")
	t.Setenv("AMBIANCE_EDIT_WINDOW", "2h")
	t.Setenv("AMBIANCE_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.EditWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {
			"AMBIANCE_STORAGE": "memory",
		},
		"short secret": {
			"AMBIANCE_STORAGE":     "memory",
			"AMBIANCE_AUTH_SECRET": "short",
		},
		"postgres without url": {
			"AMBIANCE_AUTH_SECRET": "0123456789abcdef",
		},
		"unknown storage": {
			"AMBIANCE_STORAGE":     "sqlite",
			"AMBIANCE_AUTH_SECRET": "0123456789abcdef",
		},
		"bad log level": {
			"AMBIANCE_STORAGE":     "memory",
			"AMBIANCE_AUTH_SECRET": "0123456789abcdef",
			"AMBIANCE_LOG_LEVEL":   "loud",
		},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MemoryStorageNeedsNoDatabase(t *testing.T) {
	t.Setenv("AMBIANCE_STORAGE", "memory")
	t.Setenv("AMBIANCE_AUTH_SECRET", "0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.EditWindow)
}
