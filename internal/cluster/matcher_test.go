package cluster

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func total(cost mat.Matrix, a Assignment) float64 {
	var sum float64
	for j, i := range a {
		sum += cost.At(j, i)
	}
	return sum
}

func TestExhaustiveMatcher_Ties(t *testing.T) {

	type test struct {
		cost   []float64
		k      int
		output Assignment
	}

	tests := map[string]test{
		"all-equal": {
			cost:   []float64{1, 1, 1, 1, 1, 1, 1, 1, 1},
			k:      3,
			output: Assignment{0, 1, 2},
		},
		"two-optima": {
			// both {0,1} and {1,0} cost 2, the lexicographically first wins
			cost:   []float64{1, 1, 1, 1},
			k:      2,
			output: Assignment{0, 1},
		},
		"swap": {
			cost:   []float64{5, 1, 1, 5},
			k:      2,
			output: Assignment{1, 0},
		},
		"nan-is-infinite": {
			cost:   []float64{math.NaN(), 1, 1, 0},
			k:      2,
			output: Assignment{1, 0},
		},
		"all-nan": {
			cost:   []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()},
			k:      2,
			output: Assignment{0, 1},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := ExhaustiveMatcher{}.Match(mat.NewDense(tt.k, tt.k, tt.cost))
			require.NoError(t, err)
			assert.Equal(t, tt.output, a)
		})
	}

}

func TestMatchers_NotSquare(t *testing.T) {
	cost := mat.NewDense(2, 3, nil)
	for _, m := range []Matcher{ExhaustiveMatcher{}, HungarianMatcher{}, AutoMatcher{}} {
		_, err := m.Match(cost)
		assert.True(t, errors.Is(err, ShapeMismatchErr), "%T", m)
	}
}

func TestHungarianMatcher_AgreesWithExhaustive(t *testing.T) {

	rnd := rand.New(rand.NewSource(42))

	for k := 1; k <= 7; k++ {
		for trial := 0; trial < 20; trial++ {
			data := make([]float64, k*k)
			for i := range data {
				data[i] = rnd.Float64()
			}
			cost := mat.NewDense(k, k, data)

			exact, err := ExhaustiveMatcher{}.Match(cost)
			require.NoError(t, err)
			hungarian, err := HungarianMatcher{}.Match(cost)
			require.NoError(t, err)

			require.NoError(t, hungarian.Validate())
			assert.InDelta(t, total(cost, exact), total(cost, hungarian), 1e-9, "k = %d", k)
		}
	}

}

func TestHungarianMatcher_NaN(t *testing.T) {
	cost := mat.NewDense(3, 3, []float64{
		math.NaN(), 0, 5,
		0, math.NaN(), 5,
		5, 5, 0,
	})
	a, err := HungarianMatcher{}.Match(cost)
	require.NoError(t, err)
	assert.Equal(t, Assignment{1, 0, 2}, a)
}

func TestAutoMatcher_Large(t *testing.T) {

	k := MaxExhaustive + 2
	data := make([]float64, k*k)
	// the cheapest pairing is the reversed order
	for j := 0; j < k; j++ {
		for i := 0; i < k; i++ {
			data[j*k+i] = 1
		}
		data[j*k+(k-1-j)] = 0
	}

	a, err := AutoMatcher{}.Match(mat.NewDense(k, k, data))
	require.NoError(t, err)
	for j, i := range a {
		assert.Equal(t, k-1-j, i)
	}
}
