// Package series derives chartable time series from a dataset record:
// cumulative totals, per-day deltas, a smoothed trend, and a simple
// exponential fit.
package series

import (
	"math"
	"time"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
)

// Series is an ordered sequence of dated values. Values may be NaN to mark
// gaps (days without a usable sample); consumers skip those points.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len reports the number of points.
func (s Series) Len() int { return len(s.Values) }

// FromRecord extracts a record's observations from the given date onward.
// A zero since keeps the full history.
func FromRecord(rec dataset.Record, since time.Time) Series {
	var out Series
	for _, o := range rec.Observations {
		if !since.IsZero() && o.Date.Before(since) {
			continue
		}
		out.Dates = append(out.Dates, o.Date)
		out.Values = append(out.Values, o.Confirmed)
	}
	return out
}

// Daily returns first differences of a cumulative series. A delta of zero
// becomes NaN: for cumulative counts it almost always means the upstream
// file was not updated that day, not that nothing happened.
func (s Series) Daily() Series {
	if s.Len() < 2 {
		return Series{}
	}
	out := Series{
		Dates:  append([]time.Time(nil), s.Dates[1:]...),
		Values: make([]float64, 0, s.Len()-1),
	}
	for i := 1; i < s.Len(); i++ {
		d := s.Values[i] - s.Values[i-1]
		if d == 0 {
			d = math.NaN()
		}
		out.Values = append(out.Values, d)
	}
	return out
}

// MovingAverage returns the trailing mean over the given window, skipping
// NaN samples. Points with no usable sample in their window are NaN.
// A window below 2 returns the series unchanged.
func (s Series) MovingAverage(window int) Series {
	if window < 2 || s.Len() == 0 {
		return s
	}
	out := Series{
		Dates:  append([]time.Time(nil), s.Dates...),
		Values: make([]float64, s.Len()),
	}
	for i := range s.Values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		sum, n := 0.0, 0
		for j := lo; j <= i; j++ {
			if math.IsNaN(s.Values[j]) {
				continue
			}
			sum += s.Values[j]
			n++
		}
		if n == 0 {
			out.Values[i] = math.NaN()
			continue
		}
		out.Values[i] = sum / float64(n)
	}
	return out
}

// ExpFit least-squares-fits an exponential y = exp(a + b·t) through the
// positive samples of the series (t in days from the first point). It
// returns the per-day growth rate b, the doubling time in days, and the
// fitted overlay evaluated at the series' dates. ok is false when fewer
// than three positive samples exist or the fit is degenerate.
func (s Series) ExpFit() (growthRate, doublingDays float64, fitted Series, ok bool) {
	if s.Len() == 0 {
		return 0, 0, Series{}, false
	}

	t0 := s.Dates[0]
	var xs, ys []float64
	for i, v := range s.Values {
		if math.IsNaN(v) || v <= 0 {
			continue
		}
		xs = append(xs, s.Dates[i].Sub(t0).Hours()/24)
		ys = append(ys, math.Log(v))
	}
	if len(xs) < 3 {
		return 0, 0, Series{}, false
	}

	a, b, ok := linearFit(xs, ys)
	if !ok {
		return 0, 0, Series{}, false
	}

	fitted = Series{
		Dates:  append([]time.Time(nil), s.Dates...),
		Values: make([]float64, s.Len()),
	}
	for i := range s.Dates {
		x := s.Dates[i].Sub(t0).Hours() / 24
		fitted.Values[i] = math.Exp(a + b*x)
	}

	doublingDays = math.Inf(1)
	if b > 0 {
		doublingDays = math.Ln2 / b
	}
	return b, doublingDays, fitted, true
}

// linearFit computes ordinary least squares y = a + b·x.
func linearFit(xs, ys []float64) (a, b float64, ok bool) {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0, 0, false
	}
	b = (n*sxy - sx*sy) / den
	a = (sy - b*sx) / n
	return a, b, true
}
