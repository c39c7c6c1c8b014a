package config_test

import (
	"testing"
	"time"

	"easi-website/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://backend.example.org/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.org/, ,https://b.example.org")
	t.Setenv("NOTICE_TTL", "10")
	t.Setenv("INFLIGHT_TTL", "30s")
	t.Setenv("RATE_LIMIT_FORM_THRESHOLD", "not-a-number")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://backend.example.org", cfg.BackendURL)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.NoticeTTL)
	assert.Equal(t, 30*time.Second, cfg.InflightTTL)
	assert.Equal(t, 5, cfg.RateLimitFormThreshold)
	assert.Equal(t, time.Duration(0), cfg.BackendTimeout)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
}

func TestLoadConfigEmptyBackendFallsBack(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("GIN_MODE", "release")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://backend.easi.ac.ug", cfg.BackendURL)
	assert.True(t, cfg.IsProduction())
}
