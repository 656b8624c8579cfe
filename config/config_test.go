package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithOptions_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Canvas.MaxWidth)
	assert.Equal(t, 480, cfg.Canvas.MobileBreakpoint)
	assert.Equal(t, "Arial, Helvetica, sans-serif", cfg.Canvas.FontFamily)
	assert.Equal(t, "#f4f4f4", cfg.Canvas.BackgroundColor)
	assert.False(t, cfg.Tracking.Enabled)
	assert.Equal(t, "email", cfg.Tracking.UTMMedium)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWithOptions_EnvOverrides(t *testing.T) {
	t.Setenv("RENDER_MAX_WIDTH", "720")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 720, cfg.Canvas.MaxWidth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWithOptions_TrackingRequiresEndpoint(t *testing.T) {
	t.Setenv("TRACKING_ENABLED", "true")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRACKING_ENDPOINT")

	t.Setenv("TRACKING_ENDPOINT", "https://t.example.net")
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)
	assert.True(t, cfg.Tracking.Enabled)
	assert.Equal(t, "https://t.example.net", cfg.Tracking.Endpoint)
}
