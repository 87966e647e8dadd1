package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgehrcke/covid-19-analysis/internal/dataset"
)

var day0 = time.Date(2020, 2, 28, 0, 0, 0, 0, time.UTC)

func testSeries(values ...float64) Series {
	s := Series{Values: values}
	for i := range values {
		s.Dates = append(s.Dates, day0.AddDate(0, 0, i))
	}
	return s
}

func TestFromRecord(t *testing.T) {
	rec := dataset.Record{
		Country: "Germany",
		Observations: []dataset.Observation{
			{Date: day0.AddDate(0, 0, -2), Confirmed: 1},
			{Date: day0.AddDate(0, 0, -1), Confirmed: 2},
			{Date: day0, Confirmed: 4},
			{Date: day0.AddDate(0, 0, 1), Confirmed: 8},
		},
	}

	t.Run("since filters earlier points", func(t *testing.T) {
		s := FromRecord(rec, day0)
		require.Equal(t, 2, s.Len())
		assert.Equal(t, day0, s.Dates[0])
		assert.Equal(t, []float64{4, 8}, s.Values)
	})

	t.Run("zero since keeps everything", func(t *testing.T) {
		s := FromRecord(rec, time.Time{})
		assert.Equal(t, 4, s.Len())
	})
}

func TestDaily(t *testing.T) {
	s := testSeries(10, 15, 15, 22)

	d := s.Daily()
	require.Equal(t, 3, d.Len())
	assert.Equal(t, day0.AddDate(0, 0, 1), d.Dates[0])
	assert.Equal(t, 5.0, d.Values[0])
	// A zero delta means "no upstream update", not "no cases".
	assert.True(t, math.IsNaN(d.Values[1]))
	assert.Equal(t, 7.0, d.Values[2])
}

func TestDaily_TooShort(t *testing.T) {
	assert.Equal(t, 0, testSeries(5).Daily().Len())
	assert.Equal(t, 0, Series{}.Daily().Len())
}

func TestMovingAverage(t *testing.T) {
	s := testSeries(3, 6, 9, 12)

	m := s.MovingAverage(3)
	require.Equal(t, 4, m.Len())
	assert.Equal(t, 3.0, m.Values[0])
	assert.Equal(t, 4.5, m.Values[1])
	assert.Equal(t, 6.0, m.Values[2])
	assert.Equal(t, 9.0, m.Values[3])
}

func TestMovingAverage_SkipsNaN(t *testing.T) {
	s := testSeries(3, math.NaN(), 9)

	m := s.MovingAverage(3)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, 3.0, m.Values[0])
	assert.Equal(t, 3.0, m.Values[1])
	assert.Equal(t, 6.0, m.Values[2])
}

func TestMovingAverage_WindowBelowTwoIsIdentity(t *testing.T) {
	s := testSeries(1, 2, 3)
	assert.Equal(t, s.Values, s.MovingAverage(1).Values)
}

func TestExpFit(t *testing.T) {
	// Exact exponential: y = exp(0.1 * t)
	s := Series{}
	for i := 0; i < 10; i++ {
		s.Dates = append(s.Dates, day0.AddDate(0, 0, i))
		s.Values = append(s.Values, math.Exp(0.1*float64(i)))
	}

	growth, doubling, fitted, ok := s.ExpFit()
	require.True(t, ok)
	assert.InDelta(t, 0.1, growth, 1e-9)
	assert.InDelta(t, math.Ln2/0.1, doubling, 1e-6)
	require.Equal(t, s.Len(), fitted.Len())
	for i := range s.Values {
		assert.InDelta(t, s.Values[i], fitted.Values[i], 1e-6)
	}
}

func TestExpFit_IgnoresGapsAndNonPositive(t *testing.T) {
	s := testSeries(1, math.NaN(), 0, math.Exp(0.3), math.Exp(0.4))
	// Three usable samples (t=0, 3, 4) still produce a fit.
	_, _, _, ok := s.ExpFit()
	assert.True(t, ok)
}

func TestExpFit_TooFewSamples(t *testing.T) {
	_, _, _, ok := testSeries(1, 2).ExpFit()
	assert.False(t, ok)

	_, _, _, ok = Series{}.ExpFit()
	assert.False(t, ok)

	// All samples on the same day count as one x value; the fit degenerates.
	s := Series{
		Dates:  []time.Time{day0, day0, day0},
		Values: []float64{1, 2, 3},
	}
	_, _, _, ok = s.ExpFit()
	assert.False(t, ok)
}

func TestExpFit_FlatSeriesHasNoDoubling(t *testing.T) {
	s := testSeries(5, 5, 5, 5)
	growth, doubling, _, ok := s.ExpFit()
	require.True(t, ok)
	assert.InDelta(t, 0.0, growth, 1e-9)
	assert.True(t, math.IsInf(doubling, 1))
}
