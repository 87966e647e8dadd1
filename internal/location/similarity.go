package location

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// ScoreFunc computes a similarity score between two normalized keys.
// Implementations must be deterministic, symmetric, and bounded to [0,1],
// with 1 meaning identical strings.
type ScoreFunc func(a, b string) float64

// RatioScore scores by sequence-matching ratio: twice the total length of
// the longest matching blocks divided by the combined length of both
// strings. The underlying matcher is order-sensitive, so the pair is put in
// lexicographic order first to keep the score symmetric.
func RatioScore(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// LevenshteinScore scores by normalized edit distance:
// 1 - distance/max(len(a), len(b)), measured in runes.
func LevenshteinScore(a, b string) float64 {
	if a == b {
		return 1
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(max)
}

// MetricByName maps a configuration string to a ScoreFunc.
func MetricByName(name string) (ScoreFunc, error) {
	switch name {
	case "", "ratio":
		return RatioScore, nil
	case "levenshtein":
		return LevenshteinScore, nil
	default:
		return nil, fmt.Errorf("unknown similarity metric %q (want ratio or levenshtein)", name)
	}
}
