package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{port: 8080, storage: "memory", rateLimit: 5, rateBurst: 10}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.port = 0 }, "invalid port"},
		{"unknown storage", func(c *Config) { c.storage = "tape" }, "unknown storage"},
		{"file without dir", func(c *Config) { c.storage = "file" }, "--data-dir"},
		{"redis without url", func(c *Config) { c.storage = "redis" }, "--redis-url"},
		{"postgres without dsn", func(c *Config) { c.storage = "postgres" }, "--postgres-dsn"},
		{"negative rate", func(c *Config) { c.rateLimit = -1 }, "rate limit"},
		{"zero burst", func(c *Config) { c.rateBurst = 0 }, "burst"},
		{"rate limiting off", func(c *Config) { c.rateLimit = 0; c.rateBurst = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFlagsReadEnvironment(t *testing.T) {
	t.Setenv("TILESCORE_PORT", "9090")
	t.Setenv("TILESCORE_STORAGE", "redis")
	t.Setenv("TILESCORE_REDIS_URL", "redis://localhost:6379/0")

	cfg := &Config{}
	newCmd(cfg)

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, "redis", cfg.storage)
	assert.Equal(t, "redis://localhost:6379/0", cfg.redisURL)
	assert.Equal(t, "default", cfg.namespace)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("TILESCORE_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.Flags().Parse([]string{"--port", "7070"}))

	assert.Equal(t, 7070, cfg.port)
}
