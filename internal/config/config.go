package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default upstream endpoints. The dataset URL points at the JHU CSSE
// confirmed-cases global time series; the live URL is the zeit.de corona
// tracker consulted for a same-day Germany count.
const (
	DefaultDatasetURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv"
	DefaultLiveURL    = "https://interactive.zeit.de/cronjobs/2020/corona/data.json"
)

// Config holds all toolkit settings, populated from environment variables.
type Config struct {
	DatasetURL   string
	FetchTimeout time.Duration
	CacheDir     string
	CacheMaxAge  time.Duration

	OutputDir    string
	Since        time.Time
	SmoothWindow int

	TopK             int
	SimilarityMetric string
	DuplicatePolicy  string
	AliasesFile      string

	LiveEnabled bool
	LiveURL     string
	LiveTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	cacheMaxAge, err := parseDuration("CACHE_MAX_AGE", "12h")
	if err != nil {
		return nil, err
	}
	liveTimeout, err := parseDuration("LIVE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	topK, err := parsePositiveInt("TOP_K", 5)
	if err != nil {
		return nil, err
	}
	smoothWindow, err := parsePositiveInt("SMOOTH_WINDOW", 7)
	if err != nil {
		return nil, err
	}

	// Early data points carry little signal; the analysis starts plotting
	// at the end of February 2020.
	since, err := time.Parse("2006-01-02", envOrDefault("SINCE", "2020-02-28"))
	if err != nil {
		return nil, fmt.Errorf("invalid SINCE (want YYYY-MM-DD): %w", err)
	}

	cfg := &Config{
		DatasetURL:   envOrDefault("DATASET_URL", DefaultDatasetURL),
		FetchTimeout: fetchTimeout,
		CacheDir:     envOrDefault("CACHE_DIR", "data-cache"),
		CacheMaxAge:  cacheMaxAge,

		OutputDir:    envOrDefault("OUTPUT_DIR", "."),
		Since:        since.UTC(),
		SmoothWindow: smoothWindow,

		TopK:             topK,
		SimilarityMetric: envOrDefault("SIMILARITY_METRIC", "ratio"),
		DuplicatePolicy:  envOrDefault("DUPLICATE_POLICY", "keep-last"),
		AliasesFile:      os.Getenv("ALIASES_FILE"),

		LiveEnabled: envOrDefault("LIVE_ENABLED", "true") == "true",
		LiveURL:     envOrDefault("LIVE_URL", DefaultLiveURL),
		LiveTimeout: liveTimeout,

		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.DatasetURL == "" {
		return nil, fmt.Errorf("DATASET_URL is required")
	}
	if cfg.LiveEnabled && cfg.LiveURL == "" {
		return nil, fmt.Errorf("LIVE_ENABLED is true but LIVE_URL is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v := envOrDefault(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
