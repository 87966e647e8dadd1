package jhucsse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
)

const cacheFileName = "time_series_covid19_confirmed_global.csv"

// CachedClient wraps a Fetcher with an on-disk cache. A cached copy younger
// than maxAge is served without hitting the network; on fetch failure a
// stale copy is served as a degraded fallback.
type CachedClient struct {
	inner  Fetcher
	path   string
	maxAge time.Duration
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewCachedClient creates a cache decorator storing the CSV under dir.
func NewCachedClient(inner Fetcher, dir string, maxAge time.Duration, logger *slog.Logger) (*CachedClient, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &CachedClient{
		inner:  inner,
		path:   filepath.Join(dir, cacheFileName),
		maxAge: maxAge,
		clock:  clockwork.NewRealClock(),
		logger: logger,
	}, nil
}

// FetchConfirmed returns the cached CSV when fresh, otherwise fetches and
// refreshes the cache.
func (c *CachedClient) FetchConfirmed(ctx context.Context) ([]byte, error) {
	if data, ok := c.readCache(true); ok {
		c.logger.Info("using cached dataset", "path", c.path)
		return data, nil
	}

	data, err := c.inner.FetchConfirmed(ctx)
	if err != nil {
		// Stale data beats no data for a plotting toolkit.
		if stale, ok := c.readCache(false); ok {
			c.logger.Warn("dataset fetch failed, serving stale cache",
				"path", c.path, "error", err)
			return stale, nil
		}
		return nil, err
	}

	if werr := os.WriteFile(c.path, data, 0o644); werr != nil {
		c.logger.Warn("cache write failed", "path", c.path, "error", werr)
	}
	return data, nil
}

// readCache loads the cache file. With freshOnly set, copies older than
// maxAge are rejected.
func (c *CachedClient) readCache(freshOnly bool) ([]byte, bool) {
	info, err := os.Stat(c.path)
	if err != nil {
		return nil, false
	}
	if freshOnly && c.clock.Now().Sub(info.ModTime()) > c.maxAge {
		return nil, false
	}
	data, err := os.ReadFile(c.path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}
