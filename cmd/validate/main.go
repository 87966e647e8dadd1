// Command validate performs integrity checks on a JHU CSSE time-series CSV
// before it is used for plotting: structural shape, per-row field sanity,
// cumulative-count monotonicity, and location key-space collisions.
//
// Usage:
//
//	go run ./cmd/validate -data data-cache/time_series_covid19_confirmed_global.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
	"github.com/jgehrcke/covid-19-analysis/internal/location"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "", "path to the time-series CSV file")
	maxErrors := flag.Int("max-errors", 20, "maximum detailed errors printed per phase")
	flag.Parse()

	if *dataPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataPath, *maxErrors); code != 0 {
		os.Exit(code)
	}
}

func run(dataPath string, maxErrors int) int {
	fmt.Println("=== Time-Series Dataset Integrity Validation ===")
	fmt.Println()

	f, err := os.Open(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open dataset: %v\n", err)
		return 1
	}
	defer f.Close()

	records, err := dataset.ParseCSV(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse dataset: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateObservations(records),
		validateCoordinates(records),
		validateMonotonicity(records),
		validateKeySpace(records),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d locations, %d observations each\n",
		len(records), len(records[0].Observations))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxErrors {
				fmt.Printf("  ... %d more\n", len(p.errors)-maxErrors)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Observations ──
// Counts must be non-negative and every record must carry the same dates in
// strictly increasing order.

func validateObservations(records []dataset.Record) *phase {
	p := &phase{name: "Phase 1: Observations (counts, dates)"}

	ref := records[0].Observations
	for i := 1; i < len(ref); i++ {
		if !ref[i].Date.After(ref[i-1].Date) {
			p.errorf("date columns not strictly increasing at %s", ref[i].Date.Format("2006-01-02"))
		}
	}

	for i, rec := range records {
		if len(rec.Observations) != len(ref) {
			p.errorf("record %d (%s): %d observations, expected %d", i, rec.Country, len(rec.Observations), len(ref))
			continue
		}
		for j, o := range rec.Observations {
			if !o.Date.Equal(ref[j].Date) {
				p.errorf("record %d (%s): date mismatch at column %d", i, rec.Country, j)
				break
			}
			if o.Confirmed < 0 {
				p.errorf("record %d (%s): negative count %.0f on %s", i, rec.Country, o.Confirmed, o.Date.Format("2006-01-02"))
			}
		}
	}
	return p
}

// ── Phase 2: Coordinates ──

func validateCoordinates(records []dataset.Record) *phase {
	p := &phase{name: "Phase 2: Coordinates (WGS-84 bounds)"}
	for i, rec := range records {
		if rec.Geo.Lat < -90 || rec.Geo.Lat > 90 {
			p.errorf("record %d (%s): latitude %.4f out of range", i, rec.Country, rec.Geo.Lat)
		}
		if rec.Geo.Lon < -180 || rec.Geo.Lon > 180 {
			p.errorf("record %d (%s): longitude %.4f out of range", i, rec.Country, rec.Geo.Lon)
		}
	}
	return p
}

// ── Phase 3: Monotonicity ──
// Cumulative counts should never decrease. Upstream corrections do happen;
// each one is reported so the analyst can decide whether to care.

func validateMonotonicity(records []dataset.Record) *phase {
	p := &phase{name: "Phase 3: Monotonicity (cumulative counts)"}
	for i, rec := range records {
		for j := 1; j < len(rec.Observations); j++ {
			prev, cur := rec.Observations[j-1], rec.Observations[j]
			if cur.Confirmed < prev.Confirmed {
				p.errorf("record %d (%s %s): count drops %.0f → %.0f on %s",
					i, rec.Country, rec.Province,
					prev.Confirmed, cur.Confirmed, cur.Date.Format("2006-01-02"))
			}
		}
	}
	return p
}

// ── Phase 4: Key Space ──
// Location keys should be unique; collisions mean the default KeepLast
// build policy silently drops data.

func validateKeySpace(records []dataset.Record) *phase {
	p := &phase{name: "Phase 4: Key Space (normalization collisions)"}

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		key := location.Normalize(rec.Country, rec.Province)
		if key == "" {
			p.errorf("record %d: country %q province %q normalizes to an empty key", i, rec.Country, rec.Province)
			continue
		}
		if first, dup := seen[key]; dup {
			p.errorf("records %d and %d share key %q", first, i, key)
			continue
		}
		seen[key] = i
	}
	return p
}
