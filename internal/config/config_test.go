package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.RunAddress)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.CSRFKey)
}

func TestEnvOverridesFlags(t *testing.T) {
	t.Setenv("API_ADDRESS", "http://api:9000")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("CSRF_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-r", "http://flag:1", "-a", ":9999"})
	require.NoError(t, err)

	assert.Equal(t, "http://api:9000", cfg.APIAddress)
	assert.Equal(t, ":9999", cfg.RunAddress)
	assert.Equal(t, BackendRedis, cfg.SessionBackend)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"backend", map[string]string{"SESSION_BACKEND": "mongo"}, nil},
		{"duration", map[string]string{"SESSION_TTL": "soon"}, nil},
		{"bool", map[string]string{"SECURE_COOKIES": "maybe"}, nil},
		{"csrf key", nil, []string{"-csrf-key", "short"}},
		{"secure cookies without csrf key", map[string]string{"SECURE_COOKIES": "true"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := parse(flag.NewFlagSet("test", flag.ContinueOnError), tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseDevAPI(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := parseDevAPI(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-seed=false"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.False(t, cfg.Seed)
}

func TestLogger(t *testing.T) {
	_, err := Logger("debug", "json")
	assert.NoError(t, err)
	_, err = Logger("loud", "text")
	assert.Error(t, err)
	_, err = Logger("info", "xml")
	assert.Error(t, err)
}
