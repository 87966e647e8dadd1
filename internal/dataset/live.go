package dataset

import (
	"context"
	"log/slog"
	"time"
)

// LiveCount is a same-day cumulative count from a live news source, ahead of
// the upstream CSV's publication cycle.
type LiveCount struct {
	Date      time.Time
	Confirmed float64
}

// LiveSource provides the current day's count for a single location.
type LiveSource interface {
	LatestCount(ctx context.Context) (LiveCount, error)
}

// EnrichWithLiveCount appends today's count to a record when the live source
// has one the record lacks. If source is nil, the fetch fails, or the record
// already covers the live date, the record is returned unchanged (graceful
// degradation; the upstream CSV remains the source of truth).
func EnrichWithLiveCount(ctx context.Context, rec Record, source LiveSource, logger *slog.Logger) Record {
	if source == nil {
		return rec
	}

	live, err := source.LatestCount(ctx)
	if err != nil {
		logger.Warn("live count fetch failed",
			"country", rec.Country,
			"error", err,
		)
		return rec
	}
	if live.Confirmed <= 0 || live.Date.IsZero() {
		return rec
	}

	if last, ok := rec.LastObservation(); ok && !live.Date.After(last.Date) {
		return rec
	}

	enriched := rec
	enriched.Observations = append(append([]Observation(nil), rec.Observations...),
		Observation(live))
	logger.Info("appended live count",
		"country", rec.Country,
		"date", live.Date.Format("2006-01-02"),
		"confirmed", live.Confirmed,
	)
	return enriched
}
