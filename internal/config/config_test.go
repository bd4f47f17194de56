package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, 60*time.Second, cfg.APIRateWindow)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)

	paths := cfg.Datasets()
	assert.Equal(t, cfg.HearingsPath, paths.Hearings)
	assert.Equal(t, cfg.RegistryPath, paths.Registry)
	assert.Equal(t, cfg.DetailPath, paths.Detail)
}

func TestFromViperEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DETAIL_PATH", "/srv/detalle.csv")
	t.Setenv("API_RATE_WINDOW", "5")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/srv/detalle.csv", cfg.Datasets().Detail)
	assert.Equal(t, 5*time.Second, cfg.APIRateWindow)
}

func TestFromViperInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric rate limit", "API_RATE_LIMIT", "many"},
		{"zero rate limit", "API_RATE_LIMIT", "0"},
		{"non numeric window", "API_RATE_WINDOW", "soon"},
		{"port out of range", "PORT", "70000"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromViper(newViper())
			assert.Error(t, err)
		})
	}
}
