// Package zeitde implements a live count source against the zeit.de corona
// tracker, which publishes Germany's case count ahead of the JHU CSSE
// dataset's daily update.
package zeitde

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
)

// Client implements dataset.LiveSource using the zeit.de JSON endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewClient creates a zeit.de live count client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

// LatestCount fetches the tracker's chronology and returns today's entry.
// A chronology without a sample for today yields a zero LiveCount and no
// error, mirroring "no result" from a lookup.
func (c *Client) LatestCount(ctx context.Context) (dataset.LiveCount, error) {
	// The time query parameter busts the CDN cache, as the tracker's own
	// frontend does.
	u := fmt.Sprintf("%s?time=%d", c.baseURL, c.clock.Now().Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return dataset.LiveCount{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dataset.LiveCount{}, fmt.Errorf("live count request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dataset.LiveCount{}, fmt.Errorf("zeit.de API error: status %d: %s", resp.StatusCode, body)
	}

	var tracker response
	if err := json.NewDecoder(resp.Body).Decode(&tracker); err != nil {
		return dataset.LiveCount{}, fmt.Errorf("decode response: %w", err)
	}

	today := c.clock.Now().UTC().Format("2006-01-02")
	for _, s := range tracker.Chronology {
		if s.Date != today {
			continue
		}
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			return dataset.LiveCount{}, fmt.Errorf("parse chronology date %q: %w", s.Date, err)
		}
		c.logger.Info("live sample for today", "date", s.Date, "count", s.Count)
		return dataset.LiveCount{Date: date.UTC(), Confirmed: s.Count}, nil
	}

	c.logger.Info("no live sample for today", "date", today)
	return dataset.LiveCount{}, nil
}

// zeit.de API response types.

type response struct {
	Chronology []sample `json:"chronology"`
}

type sample struct {
	Date  string  `json:"date"`
	Count float64 `json:"count"`
}
