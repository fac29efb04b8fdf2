package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORE_DRIVER", "SESSION_TTL", "GO_ENV", "OTEL_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 12*time.Hour, cfg.App.SessionTTL)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("LLM_TIMEOUT", "5")
	t.Setenv("GO_ENV", "production")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 90*time.Minute, cfg.App.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.Ai.Timeout)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Tracing.Enabled)
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
