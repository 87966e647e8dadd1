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

	assert.Equal(t, DefaultDatasetURL, cfg.DatasetURL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "data-cache", cfg.CacheDir)
	assert.Equal(t, 12*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, time.Date(2020, 2, 28, 0, 0, 0, 0, time.UTC), cfg.Since)
	assert.Equal(t, 7, cfg.SmoothWindow)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, "ratio", cfg.SimilarityMetric)
	assert.Equal(t, "keep-last", cfg.DuplicatePolicy)
	assert.Empty(t, cfg.AliasesFile)
	assert.True(t, cfg.LiveEnabled)
	assert.Equal(t, DefaultLiveURL, cfg.LiveURL)
	assert.Equal(t, 10*time.Second, cfg.LiveTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_URL", "http://localhost:8000/confirmed.csv")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("CACHE_DIR", "/tmp/covid-cache")
	t.Setenv("CACHE_MAX_AGE", "1h")
	t.Setenv("OUTPUT_DIR", "plots")
	t.Setenv("SINCE", "2020-03-15")
	t.Setenv("SMOOTH_WINDOW", "3")
	t.Setenv("TOP_K", "10")
	t.Setenv("SIMILARITY_METRIC", "levenshtein")
	t.Setenv("DUPLICATE_POLICY", "merge")
	t.Setenv("ALIASES_FILE", "aliases.yaml")
	t.Setenv("LIVE_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/confirmed.csv", cfg.DatasetURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "/tmp/covid-cache", cfg.CacheDir)
	assert.Equal(t, time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, "plots", cfg.OutputDir)
	assert.Equal(t, time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), cfg.Since)
	assert.Equal(t, 3, cfg.SmoothWindow)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, "levenshtein", cfg.SimilarityMetric)
	assert.Equal(t, "merge", cfg.DuplicatePolicy)
	assert.Equal(t, "aliases.yaml", cfg.AliasesFile)
	assert.False(t, cfg.LiveEnabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"FETCH_TIMEOUT", "not-a-duration"},
		{"FETCH_TIMEOUT", "-5s"},
		{"CACHE_MAX_AGE", "yesterday"},
		{"LIVE_TIMEOUT", "0s"},
		{"TOP_K", "0"},
		{"TOP_K", "five"},
		{"SMOOTH_WINDOW", "-1"},
		{"SINCE", "March 2020"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
