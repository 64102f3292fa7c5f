package ct

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcs(t *testing.T) {

	ss, err := Parse(strings.NewReader(hairpins))
	require.NoError(t, err)

	aspect := ArcAspect(1, 9, 0.5)
	assert.Equal(t, 8.0, aspect)

	arcs := Arcs(ss[0], 1, aspect)
	require.Len(t, arcs, 2)
	assert.Equal(t, Point{X: 4.5, Y: 1}, arcs[0].Center)
	assert.Equal(t, 7.0, arcs[0].Width)
	assert.Equal(t, 7.0/8, arcs[0].Height)
	assert.Equal(t, 5.0, arcs[1].Width)
}

func TestColorPair(t *testing.T) {

	corr := map[int]float64{
		10: 0.5,
		20: 0.95,
		30: math.NaN(),
	}
	lookup := func(pos int) (float64, bool) {
		v, ok := corr[pos]
		return v, ok
	}
	target := Range{End5: 1, End3: 5}

	type test struct {
		pair  Pair
		color Color
	}

	tests := map[string]test{
		"both-targeted":      {pair: NewPair(1, 5), color: PairNone},
		"none-targeted":      {pair: NewPair(10, 20), color: PairNone},
		"5-targeted-low":     {pair: NewPair(2, 10), color: PairTrue},
		"5-targeted-high":    {pair: NewPair(2, 20), color: PairFalse},
		"5-targeted-nan":     {pair: NewPair(2, 30), color: PairNone},
		"5-targeted-missing": {pair: NewPair(2, 40), color: PairNone},
		"3-targeted":         {pair: Pair{P5: -10, P3: 3}, color: PairNone},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.color, ColorPair(tt.pair, target, lookup, 0.9))
		})
	}

	upstream := Range{End5: 20, End3: 25}
	assert.Equal(t, PairTrue, ColorPair(NewPair(10, 22), upstream, lookup, 0.9))
	assert.Equal(t, "true", PairTrue.String())
	assert.Equal(t, "none", PairNone.String())
}

// a 20 nt structure with a local pair 3-8 on the main row and long-range pairs 5-18, 6-17
const longRange = `20 fold
1 N 0 2 0 1
2 N 1 3 0 2
3 N 2 4 8 3
4 N 3 5 0 4
5 N 4 6 18 5
6 N 5 7 17 6
7 N 6 8 0 7
8 N 7 9 3 8
9 N 8 10 0 9
10 N 9 11 0 10
11 N 10 12 0 11
12 N 11 13 0 12
13 N 12 14 0 13
14 N 13 15 0 14
15 N 14 16 0 15
16 N 15 17 0 16
17 N 16 18 6 17
18 N 17 19 5 18
19 N 18 20 0 19
20 N 19 0 0 20
`

func TestFoldBack(t *testing.T) {

	ss, err := Parse(strings.NewReader(longRange))
	require.NoError(t, err)
	s := ss[0]

	section := Range{End5: 1, End3: 10}
	fb, pairs, err := NewFoldBack(s, section, Range{End5: 3, End3: 8}, 1.25)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Pair{{3, 8}, {5, 18}, {6, 17}}, pairs)

	assert.Equal(t, Point{X: 4, Y: 1}, fb.Map(4))
	// 18 is the furthest partner, it maps onto the start of the upper row
	assert.Equal(t, Point{X: 1, Y: 1.25}, fb.Map(18))
	assert.Equal(t, Point{X: 2, Y: 1.25}, fb.Map(17))

	lo, hi := fb.Limits()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 10.0, hi)

	arcs, lines := fb.Layout(pairs, 0.001)
	require.Len(t, arcs, 1)
	assert.Equal(t, NewPair(3, 8), arcs[0].Pair)
	assert.InDelta(t, 0.005, arcs[0].Height, 1e-12)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 1.0, l.From.Y)
		assert.Equal(t, 1.25, l.To.Y)
	}

	_, _, err = NewFoldBack(s, section, Range{End5: 6, End3: 8}, 1.25)
	assert.Error(t, err, "3 pairs with 8 upstream of the main row")

	_, _, err = NewFoldBack(s, section, Range{End5: 1, End3: 2}, 1.25)
	assert.Error(t, err, "no pair reaches downstream")

	_, _, err = NewFoldBack(s, Range{End5: 4, End3: 10}, Range{End5: 3, End3: 8}, 1.25)
	assert.Error(t, err)
}
