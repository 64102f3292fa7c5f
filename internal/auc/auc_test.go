package auc

import (
	"math"
	"testing"

	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(values ...float64) table.Series {
	pp := make([]int, len(values))
	for i := range pp {
		pp[i] = 100 + i
	}
	return table.Series{Positions: pp, Values: values}
}

func TestCallTopsDips(t *testing.T) {

	nan := math.NaN()

	type test struct {
		series table.Series
		tops   []Range
		dips   []Range
	}

	tests := map[string]test{
		"alternating": {
			series: series(0.99, 0.98, 0.5, 0.6, 0.97, 0.4),
			tops:   []Range{{100, 101}, {104, 104}},
			dips:   []Range{{102, 103}, {105, 105}},
		},
		"nan-skipped": {
			series: series(0.5, nan, 0.6, 0.99),
			tops:   []Range{{103, 103}},
			dips:   []Range{{100, 102}},
		},
		"all-top": {
			series: series(0.95, 1.0),
			tops:   []Range{{100, 101}},
			dips:   []Range{},
		},
		"empty": {
			series: series(),
			tops:   []Range{},
			dips:   []Range{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tops, dips := CallTopsDips(tt.series, 0.95)
			assert.Equal(t, tt.tops, tops)
			assert.Equal(t, tt.dips, dips)
		})
	}

}

func TestDipAreas(t *testing.T) {

	s := series(0.99, 0.85, math.NaN(), 0.75, 0.96, 0.90)
	areas := DipAreas(s, 0.95)

	require.Len(t, areas, 4)
	// the deepest dip comes first
	assert.Equal(t, Range{101, 103}, areas[0].Range)
	assert.InDelta(t, -0.3, areas[0].Area, 1e-12)
	assert.Equal(t, Range{105, 105}, areas[1].Range)
	assert.InDelta(t, -0.05, areas[1].Area, 1e-12)
	// tops have no area below the line
	assert.Equal(t, 0.0, areas[2].Area)
	assert.Equal(t, 0.0, areas[3].Area)
	assert.Equal(t, 3, areas[0].Range.Width())
}

func TestHistogram(t *testing.T) {

	bins := Bins(0, 1, 4)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, bins)

	counts, err := Histogram(bins, []float64{0, 0.1, 0.3, 1, math.NaN(), 1.5, -0.1, 0.8})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 0, 2}, counts)

	counts, err = Histogram(bins, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, counts)

	_, err = Histogram([]float64{1}, nil)
	assert.Error(t, err)
	_, err = Histogram([]float64{1, 0}, nil)
	assert.Error(t, err)
}

func TestHistograms(t *testing.T) {

	s := series(0.1, 0.9, 0.95, 0.2, 0.3)
	in, out, err := Histograms(s, Bins(0, 1, 2), Range{End5: 101, End3: 102})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, in)
	assert.Equal(t, []float64{3, 0}, out)
}
