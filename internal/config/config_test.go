package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FASTFOREX_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, "test-key", cfg.Exchange.APIKey)
	assert.Equal(t, "https://api.fastforex.io", cfg.Exchange.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Exchange.Timeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FASTFOREX_API_KEY", "test-key")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("FASTFOREX_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Exchange.Timeout)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	// required:"true" on the FastForex key must fail fast
	_, err := Load()
	assert.Error(t, err)
}
