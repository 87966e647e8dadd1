// Command covidplot resolves a location name against the JHU CSSE
// confirmed-cases time series and renders its case evolution to an
// interactive HTML file.
//
// Usage:
//
//	covidplot [-data file.csv] [-no-live] <location>
//
// The location is free text ("Germany", "us_charleston_county_sc",
// "Korea, South" all land in the same normalized key space). When the
// name does not match a dataset row, the closest candidate keys are printed
// by similarity and the command exits non-zero.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jgehrcke/covid-19-analysis/internal/adapter/jhucsse"
	"github.com/jgehrcke/covid-19-analysis/internal/adapter/zeitde"
	"github.com/jgehrcke/covid-19-analysis/internal/chart"
	"github.com/jgehrcke/covid-19-analysis/internal/config"
	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
	"github.com/jgehrcke/covid-19-analysis/internal/location"
	"github.com/jgehrcke/covid-19-analysis/internal/observability"
	"github.com/jgehrcke/covid-19-analysis/internal/series"
)

func main() {
	dataPath := flag.String("data", "", "read the time-series CSV from this file instead of fetching it")
	noLive := flag.Bool("no-live", false, "skip the live same-day count lookup")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: covidplot [-data file.csv] [-no-live] <location>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	logger := observability.NewLogger(cfg)

	os.Exit(run(context.Background(), cfg, logger, *dataPath, *noLive, flag.Arg(0)))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, dataPath string, noLive bool, input string) int {
	data, err := loadDataset(ctx, cfg, logger, dataPath)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		return 2
	}

	records, err := dataset.ParseCSV(bytes.NewReader(data))
	if err != nil {
		logger.Error("failed to parse dataset", "error", err)
		return 2
	}
	logger.Info("dataset parsed", "records", len(records))

	resolver, err := buildResolver(cfg, records)
	if err != nil {
		logger.Error("failed to build location index", "error", err)
		return 2
	}

	result, err := resolver.Resolve(input)
	if err != nil {
		logger.Error("resolution failed", "error", err)
		return 2
	}
	if !result.Found {
		logger.Error("location not found in data set", "input", input)
		for _, s := range result.Suggestions {
			fmt.Printf("candidate by similarity: %s (similarity %.2f)\n", s.Key, s.Score)
		}
		return 1
	}
	logger.Info("location resolved", "key", result.Key)

	rec := result.Record
	if cfg.LiveEnabled && !noLive && result.Key == "germany" {
		live := zeitde.NewClient(cfg.LiveURL, cfg.LiveTimeout, logger)
		liveCtx, cancel := context.WithTimeout(ctx, cfg.LiveTimeout)
		rec = dataset.EnrichWithLiveCount(liveCtx, rec, live, logger)
		cancel()
	}

	path, err := renderChart(cfg, result.Key, rec)
	if err != nil {
		logger.Error("failed to render chart", "error", err)
		return 2
	}
	logger.Info("chart written", "path", path)
	return 0
}

// loadDataset reads the CSV from disk when a path is given, otherwise
// through the caching fetcher.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger, dataPath string) ([]byte, error) {
	if dataPath != "" {
		return os.ReadFile(dataPath)
	}

	client := jhucsse.NewClient(cfg.DatasetURL, cfg.FetchTimeout, logger)
	cached, err := jhucsse.NewCachedClient(client, cfg.CacheDir, cfg.CacheMaxAge, logger)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()
	return cached.FetchConfirmed(fetchCtx)
}

func buildResolver(cfg *config.Config, records []dataset.Record) (*location.Resolver, error) {
	policy, err := location.PolicyByName(cfg.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	metric, err := location.MetricByName(cfg.SimilarityMetric)
	if err != nil {
		return nil, err
	}

	index, err := location.Build(records, location.WithDuplicatePolicy(policy))
	if err != nil {
		return nil, err
	}

	opts := []location.Option{
		location.WithTopK(cfg.TopK),
		location.WithMetric(metric),
	}
	if cfg.AliasesFile != "" {
		aliases, err := location.LoadAliases(cfg.AliasesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, location.WithAliases(aliases))
	}
	return location.NewResolver(index, opts...), nil
}

func renderChart(cfg *config.Config, key string, rec dataset.Record) (string, error) {
	total := series.FromRecord(rec, cfg.Since)
	daily := total.Daily()

	in := chart.Input{
		Key:      key,
		Total:    total,
		Daily:    daily,
		Smoothed: daily.MovingAverage(cfg.SmoothWindow),
	}
	if _, doubling, fitted, ok := daily.ExpFit(); ok {
		in.Fitted = fitted
		in.DoublingDays = doubling
	}

	// Keep output file names predictable even for odd keys.
	in.Key = strings.ReplaceAll(in.Key, string(os.PathSeparator), "_")

	return chart.WriteHTML(cfg.OutputDir, in)
}
