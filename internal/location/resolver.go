package location

import (
	"errors"
	"sort"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
)

// DefaultTopK is the suggestion list length used when no override is given.
const DefaultTopK = 5

// Suggestion is one ranked candidate key from a failed resolution.
type Suggestion struct {
	Key   string
	Score float64
}

// Result is the outcome of a resolution attempt. A miss is a normal value,
// not an error: Found is false and Suggestions carries the ranked candidates
// (empty when the index holds no keys).
type Result struct {
	Found       bool
	Key         string
	Record      dataset.Record
	Suggestions []Suggestion
}

// Resolver maps free-text input to an indexed location. It holds no mutable
// state; concurrent Resolve calls against the same index are safe.
type Resolver struct {
	index   *Index
	topK    int
	score   ScoreFunc
	aliases map[string]string
}

// Option adjusts Resolver behavior.
type Option func(*Resolver)

// WithTopK caps the suggestion list length. Values below 1 are ignored.
func WithTopK(k int) Option {
	return func(r *Resolver) {
		if k >= 1 {
			r.topK = k
		}
	}
}

// WithMetric selects the similarity metric used to rank suggestions.
func WithMetric(f ScoreFunc) Option {
	return func(r *Resolver) {
		if f != nil {
			r.score = f
		}
	}
}

// WithAliases installs a colloquial-name table consulted after
// normalization and before exact lookup. Both sides are normalized here, so
// callers can pass the table as written in the aliases file.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) {
		if len(aliases) == 0 {
			return
		}
		m := make(map[string]string, len(aliases))
		for from, to := range aliases {
			m[NormalizeText(from)] = NormalizeText(to)
		}
		r.aliases = m
	}
}

// NewResolver creates a Resolver over a built index.
func NewResolver(index *Index, opts ...Option) *Resolver {
	r := &Resolver{
		index: index,
		topK:  DefaultTopK,
		score: RatioScore,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve normalizes input into the index's key space and looks it up. On an
// exact hit it returns the record; on a miss it scores the input against
// every indexed key and returns the top-K candidates ordered by descending
// score, ties broken by lexicographic key order. The only error is a nil
// index, a precondition violation, distinct from "not found".
func (r *Resolver) Resolve(input string) (Result, error) {
	if r.index == nil {
		return Result{}, errors.New("location index not built")
	}

	key := NormalizeText(input)
	if target, ok := r.aliases[key]; ok {
		key = target
	}

	if rec, ok := r.index.Lookup(key); ok {
		return Result{Found: true, Key: key, Record: rec}, nil
	}

	keys := r.index.keys
	suggestions := make([]Suggestion, 0, len(keys))
	for _, k := range keys {
		suggestions = append(suggestions, Suggestion{Key: k, Score: r.score(key, k)})
	}
	// keys is already sorted, so with a stable sort equal scores stay in
	// lexicographic order.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > r.topK {
		suggestions = suggestions[:r.topK]
	}
	return Result{Suggestions: suggestions}, nil
}
