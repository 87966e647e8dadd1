// Command genmock writes a deterministic JHU-CSSE-format time-series CSV
// for offline demos and fixtures. Counts follow a seeded exponential-ish
// random walk, so the generated file exercises the same chart paths as the
// real dataset.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/mock_confirmed.csv -days 60 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// mockLocation mirrors the naming variety of the real dataset: plain
// countries, province rows, and early-US county-style labels.
var mockLocations = []struct {
	province string
	country  string
	lat, lon float64
}{
	{"", "Germany", 51.0, 9.0},
	{"", "Italy", 43.0, 12.0},
	{"", "Korea, South", 36.0, 128.0},
	{"Hubei", "China", 31.0, 112.0},
	{"Charleston County, SC", "US", 32.8, -79.9},
	{"Charlton, GA", "US", 30.8, -82.1},
	{"", "Curaçao", 12.2, -69.0},
}

func main() {
	out := flag.String("out", "mock_confirmed.csv", "output CSV path")
	days := flag.Int("days", 60, "number of date columns")
	start := flag.String("start", "2020-01-22", "first date (YYYY-MM-DD)")
	seed := flag.Int64("seed", 1, "random seed (same seed, same file)")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: invalid -start: %v\n", err)
		os.Exit(1)
	}
	if *days < 2 {
		fmt.Fprintf(os.Stderr, "FATAL: -days must be at least 2\n")
		os.Exit(1)
	}

	if err := write(*out, startDate, *days, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d locations x %d days\n", *out, len(mockLocations), *days)
}

func write(path string, start time.Time, days int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"Province/State", "Country/Region", "Lat", "Long"}
	for d := 0; d < days; d++ {
		t := start.AddDate(0, 0, d)
		header = append(header, fmt.Sprintf("%d/%d/%02d", t.Month(), t.Day(), t.Year()%100))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	for _, loc := range mockLocations {
		row := []string{
			loc.province,
			loc.country,
			strconv.FormatFloat(loc.lat, 'f', 4, 64),
			strconv.FormatFloat(loc.lon, 'f', 4, 64),
		}
		for _, c := range walk(rng, days) {
			row = append(row, strconv.FormatFloat(c, 'f', 0, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// walk produces a cumulative series: a quiet lead-in, then roughly
// exponential growth with jitter and occasional no-update days.
func walk(rng *rand.Rand, days int) []float64 {
	counts := make([]float64, days)
	leadIn := days / 4
	total := 0.0
	for d := 0; d < days; d++ {
		if d >= leadIn {
			growth := 0.12 + 0.10*rng.Float64()
			newCases := math.Ceil(math.Max(total, 1) * growth)
			if rng.Float64() < 0.1 {
				newCases = 0 // upstream skipped this day's update
			}
			total += newCases
		}
		counts[d] = total
	}
	return counts
}
