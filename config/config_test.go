package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 15*time.Second, cfg.Preview.Timeout)
	assert.Equal(t, 400*time.Millisecond, cfg.Workbench.GlassDebounce)
	assert.Equal(t, 500*time.Millisecond, cfg.Workbench.WindDebounce)
	assert.Equal(t, "@every 10s", cfg.Workbench.FigureRefreshSpec)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DB_DSN", "postgres://fw@db/facade")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PREVIEW_SERVICE_URL", "http://calc:5000")
	t.Setenv("PREVIEW_RATE_PER_SEC", "2.5")
	t.Setenv("GLASS_DEBOUNCE_MS", "250")
	t.Setenv("REPORT_TIMEOUT_SEC", "not-a-number")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "http://calc:5000", cfg.Preview.BaseURL)
	assert.Equal(t, 2.5, cfg.Preview.RatePerSec)
	assert.Equal(t, 250*time.Millisecond, cfg.Workbench.GlassDebounce)
	assert.Equal(t, 120*time.Second, cfg.Preview.ReportTimeout)
	assert.Equal(t, "json", cfg.App.LogFormat)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Preview:   PreviewConfig{BaseURL: "http://calc"},
			Workbench: WorkbenchConfig{GlassDebounce: time.Millisecond, WindDebounce: time.Millisecond},
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.Server.Port = ""
	assert.EqualError(t, c.Validate(), "PORT is required")

	c = valid()
	c.Preview.BaseURL = ""
	assert.EqualError(t, c.Validate(), "PREVIEW_SERVICE_URL is required")

	c = valid()
	c.Workbench.WindDebounce = 0
	assert.Error(t, c.Validate())
}
