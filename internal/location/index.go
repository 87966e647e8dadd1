// Package location maps free-text location names to rows of the time-series
// dataset. It normalizes the dataset's messy country/province labels into a
// canonical key space, and resolves user input against that space with
// ranked similarity suggestions on miss.
package location

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
)

// DuplicatePolicy controls what Build does when two records normalize to the
// same location key.
type DuplicatePolicy int

const (
	// KeepLast silently overwrites the earlier record (last-write-wins by
	// file order). This matches the upstream dataset's own de-duplication
	// behavior and is the default.
	KeepLast DuplicatePolicy = iota
	// Reject fails construction on the first duplicate key.
	Reject
	// Merge sums the observations of colliding records per date, treating
	// them as sub-series of the same location.
	Merge
)

// PolicyByName maps a configuration string to a DuplicatePolicy.
func PolicyByName(name string) (DuplicatePolicy, error) {
	switch name {
	case "", "keep-last":
		return KeepLast, nil
	case "reject":
		return Reject, nil
	case "merge":
		return Merge, nil
	default:
		return KeepLast, fmt.Errorf("unknown duplicate policy %q (want keep-last, reject, or merge)", name)
	}
}

// Index is an immutable mapping from location key to dataset record.
// It is built once per dataset load and safe for concurrent readers.
type Index struct {
	records map[string]dataset.Record
	keys    []string // sorted
}

type buildConfig struct {
	policy DuplicatePolicy
}

// BuildOption adjusts Index construction.
type BuildOption func(*buildConfig)

// WithDuplicatePolicy selects how duplicate location keys are handled.
func WithDuplicatePolicy(p DuplicatePolicy) BuildOption {
	return func(c *buildConfig) { c.policy = p }
}

// Build derives a location key for every record and assembles the index.
// A record with neither country nor province is a construction error. An
// empty record slice builds an empty (but usable) index.
func Build(records []dataset.Record, opts ...BuildOption) (*Index, error) {
	cfg := buildConfig{policy: KeepLast}
	for _, opt := range opts {
		opt(&cfg)
	}

	ix := &Index{records: make(map[string]dataset.Record, len(records))}
	for i, rec := range records {
		key := Normalize(rec.Country, rec.Province)
		if key == "" {
			return nil, fmt.Errorf("record %d: neither country nor province yields a location key", i)
		}

		prev, dup := ix.records[key]
		if dup {
			switch cfg.policy {
			case Reject:
				return nil, fmt.Errorf("record %d: duplicate location key %q", i, key)
			case Merge:
				rec = mergeRecords(prev, rec)
			}
		}
		ix.records[key] = rec
	}

	ix.keys = make([]string, 0, len(ix.records))
	for k := range ix.records {
		ix.keys = append(ix.keys, k)
	}
	sort.Strings(ix.keys)
	return ix, nil
}

// Lookup returns the record stored under an already-normalized key.
func (ix *Index) Lookup(key string) (dataset.Record, bool) {
	rec, ok := ix.records[key]
	return rec, ok
}

// Keys returns every indexed location key in lexicographic order.
func (ix *Index) Keys() []string {
	out := make([]string, len(ix.keys))
	copy(out, ix.keys)
	return out
}

// Len reports the number of indexed locations.
func (ix *Index) Len() int {
	return len(ix.records)
}

// mergeRecords combines two records sharing a key by summing their
// observations per date. Metadata comes from the earlier record.
func mergeRecords(a, b dataset.Record) dataset.Record {
	sums := make(map[time.Time]float64, len(a.Observations)+len(b.Observations))
	for _, o := range a.Observations {
		sums[o.Date] += o.Confirmed
	}
	for _, o := range b.Observations {
		sums[o.Date] += o.Confirmed
	}

	dates := make([]time.Time, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	merged := a
	merged.Observations = make([]dataset.Observation, 0, len(dates))
	for _, d := range dates {
		merged.Observations = append(merged.Observations, dataset.Observation{Date: d, Confirmed: sums[d]})
	}
	return merged
}

// Normalize derives the canonical location key for a country/province pair:
// the normalized country, with the normalized province appended after an
// underscore when present. Pure and total; every input yields exactly one key.
func Normalize(country, province string) string {
	key := NormalizeText(country)
	if p := NormalizeText(province); p != "" {
		if key == "" {
			return p
		}
		key += "_" + p
	}
	return key
}

// NormalizeText canonicalizes free text into the key alphabet: ASCII-folded,
// lower-cased, with runs of whitespace, commas, and underscores collapsed to
// a single underscore and stripped from the ends. Idempotent, so user input
// and dataset fields land in the same key space no matter how often it runs.
func NormalizeText(s string) string {
	s = strings.ToLower(foldASCII(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == ',' || r == '_':
			if b.Len() > 0 {
				pendingSep = true
			}
		case r > unicode.MaxASCII:
			// Anything folding could not reduce to ASCII is dropped.
		default:
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldASCII strips combining marks after NFD decomposition, so "Curaçao"
// becomes "Curacao". Returns the input unchanged if transformation fails.
func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
