package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.StaleJobThreshold)
	assert.Equal(t, 4096, cfg.GenerationMaxToken)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.DefaultModel)
	assert.Empty(t, cfg.ModelOverrides)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_SSL", "true")
	t.Setenv("WORKER_POLL_INTERVAL", "500ms")
	t.Setenv("STALE_JOB_THRESHOLD", "10m")
	t.Setenv("MODEL_OVERRIDES", "landing_page=claude-opus-4-20250514")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5433, cfg.DBPort)
	assert.True(t, cfg.DBSSL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.StaleJobThreshold)
	assert.Equal(t, map[string]string{"landing_page": "claude-opus-4-20250514"}, cfg.ModelOverrides)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("WORKER_POLL_INTERVAL", "soon")
	t.Setenv("DB_SSL", "maybe")

	cfg := Load()

	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.False(t, cfg.DBSSL)
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "single pair", raw: "ad_copy=model-a", want: map[string]string{"ad_copy": "model-a"}},
		{
			name: "multiple pairs with spaces",
			raw:  "ad_copy=model-a, social_posts=model-b",
			want: map[string]string{"ad_copy": "model-a", "social_posts": "model-b"},
		},
		{name: "missing value dropped", raw: "ad_copy=", want: map[string]string{}},
		{name: "missing key dropped", raw: "=model-a", want: map[string]string{}},
		{name: "dangling comma", raw: "ad_copy=model-a,", want: map[string]string{"ad_copy": "model-a"}},
		{name: "no separator dropped", raw: "garbage", want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOverrides(tt.raw))
		})
	}
}
