package cluster

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// permute builds a set whose row j is row p[j] of the given set.
func permute(s Set, p Assignment) Set {
	rows := make([][]float64, len(p))
	for j, i := range p {
		rows[j] = s.Row(i)
	}
	return MustSet(rows...)
}

func permutations(k int) []Assignment {
	var all []Assignment
	var visit func(prefix Assignment, used []bool)
	visit = func(prefix Assignment, used []bool) {
		if len(prefix) == k {
			all = append(all, append(Assignment{}, prefix...))
			return
		}
		for i := 0; i < k; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			visit(append(prefix, i), used)
			used[i] = false
		}
	}
	visit(Assignment{}, make([]bool, k))
	return all
}

func TestEngine_Identity(t *testing.T) {

	expected := MustSet(
		[]float64{0.01, 0.05, 0.20, 0.02},
		[]float64{0.10, 0.01, 0.03, 0.30},
		[]float64{0.07, 0.07, 0.01, 0.01},
	)

	for name, engine := range map[string]Engine{
		"default":     NewEngine(),
		"zero":        {},
		"hungarian":   NewEngine().WithMatcher(HungarianMatcher{}),
		"correlation": NewEngine().WithDistance(Correlation),
	} {
		t.Run(name, func(t *testing.T) {
			a, err := engine.Assign(expected, expected)
			require.NoError(t, err)
			assert.True(t, a.IsIdentity())

			r, ok, err := engine.Compare(expected, expected)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, 0.0, r.MutationRMSD)
			assert.Equal(t, 0.0, r.MutationNorm)
			assert.InDelta(t, 1.0, r.MutationCorr, 1e-9)
		})
	}

}

func TestEngine_RecoversPermutation(t *testing.T) {

	expected := MustSet(
		[]float64{0.01, 0.05, 0.20, 0.02, 0.00},
		[]float64{0.10, 0.01, 0.03, 0.30, 0.05},
		[]float64{0.07, 0.07, 0.01, 0.01, 0.12},
		[]float64{0.30, 0.00, 0.15, 0.04, 0.02},
	)

	for _, matcher := range []Matcher{ExhaustiveMatcher{}, HungarianMatcher{}} {
		engine := NewEngine().WithMatcher(matcher)
		for _, p := range permutations(expected.K()) {
			observed := permute(expected, p)
			a, err := engine.Assign(expected, observed)
			require.NoError(t, err)
			assert.Equal(t, p, a, "matcher %T", matcher)

			ordered, err := Reorder(observed, a)
			require.NoError(t, err)
			assert.Equal(t, expected.Rows(), ordered.Rows())
		}
	}

}

func TestEngine_SwappedNoisyClusters(t *testing.T) {

	expected := MustSet(
		[]float64{0.1, 0.2, 0.3},
		[]float64{0.9, 0.8, 0.7},
	)
	observed := MustSet(
		[]float64{0.85, 0.82, 0.72},
		[]float64{0.12, 0.19, 0.31},
	)

	engine := NewEngine()
	a, err := engine.Assign(expected, observed)
	require.NoError(t, err)
	assert.Equal(t, Assignment{1, 0}, a)

	r, ok, err := engine.Compare(expected, observed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Less(t, r.MutationRMSD, 0.05)
	assert.Greater(t, r.MutationCorr, 0.99)
}

func TestEngine_CompareWithProportions(t *testing.T) {

	expectedMus := MustSet(
		[]float64{0.1, 0.2, 0.3},
		[]float64{0.9, 0.8, 0.7},
		[]float64{0.5, 0.0, 0.5},
	)
	// observed clusters are rotated: 0 -> 1, 1 -> 2, 2 -> 0
	observedMus := MustSet(
		[]float64{0.9, 0.8, 0.7},
		[]float64{0.5, 0.0, 0.5},
		[]float64{0.1, 0.2, 0.3},
	)

	r, ok, err := NewEngine().CompareWithProportions(expectedMus, observedMus,
		[]float64{0.5, 0.3, 0.2},
		[]float64{0.29, 0.19, 0.52},
	)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Assignment{1, 2, 0}, r.Assignment)
	assert.Equal(t, []float64{0.52, 0.29, 0.19}, r.Proportions)
	assert.InDelta(t, math.Sqrt(0.02*0.02+0.01*0.01+0.01*0.01), r.ProportionNorm, 1e-9)
	assert.InDelta(t, 0.0245, r.ProportionNorm, 1e-4)
	assert.InDelta(t, math.Sqrt((0.02*0.02+0.01*0.01+0.01*0.01)/3), r.ProportionRMSD, 1e-9)
}

func TestEngine_Compare_ClusterCountMismatch(t *testing.T) {

	expected := MustSet([]float64{0.1, 0.2}, []float64{0.3, 0.4})
	observed := MustSet([]float64{0.1, 0.2})

	_, ok, err := NewEngine().Compare(expected, observed)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = NewEngine().Assign(expected, observed)
	assert.True(t, errors.Is(err, ShapeMismatchErr))
}

func TestEngine_Errors(t *testing.T) {

	nan := math.NaN()

	type test struct {
		expected Set
		observed Set
		err      error
	}

	tests := map[string]test{
		"positions-mismatch": {
			expected: MustSet([]float64{0.1, 0.2}),
			observed: MustSet([]float64{0.1, 0.2, 0.3}),
			err:      ShapeMismatchErr,
		},
		"all-nan-row": {
			expected: MustSet([]float64{0.1, 0.2}, []float64{0.3, 0.4}),
			observed: MustSet([]float64{0.1, 0.2}, []float64{nan, nan}),
			err:      DegenerateInputErr,
		},
		"empty": {
			expected: Set{},
			observed: Set{},
			err:      DegenerateInputErr,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEngine().Assign(tt.expected, tt.observed)
			assert.True(t, errors.Is(err, tt.err), "unexpected error %v", err)
		})
	}

}

func TestEngine_StubMatcher(t *testing.T) {

	expected := MustSet([]float64{0.1, 0.2}, []float64{0.3, 0.4})

	var seen mat.Matrix
	stub := MatcherFunc(func(cost mat.Matrix) (Assignment, error) {
		seen = cost
		return Assignment{1, 0}, nil
	})

	r, ok, err := NewEngine().WithMatcher(stub).Compare(expected, expected)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Assignment{1, 0}, r.Assignment)
	assert.InDelta(t, 0.2, r.MutationRMSD, 1e-9)

	require.NotNil(t, seen)
	assert.Equal(t, 0.0, seen.At(0, 0))
	assert.InDelta(t, 0.2, seen.At(0, 1), 1e-9)

	broken := MatcherFunc(func(cost mat.Matrix) (Assignment, error) {
		return Assignment{0, 0}, nil
	})
	_, _, err = NewEngine().WithMatcher(broken).Compare(expected, expected)
	assert.True(t, errors.Is(err, InvalidAssignmentErr))

	failing := MatcherFunc(func(cost mat.Matrix) (Assignment, error) {
		return nil, errors.New("boom")
	})
	_, _, err = NewEngine().WithMatcher(failing).Compare(expected, expected)
	assert.Error(t, err)
}

func TestEngine_PartialNaN(t *testing.T) {

	nan := math.NaN()
	expected := MustSet(
		[]float64{0.1, nan, 0.3, 0.4},
		[]float64{0.9, 0.8, nan, 0.6},
	)
	observed := MustSet(
		[]float64{0.9, 0.8, 0.7, nan},
		[]float64{nan, 0.2, 0.3, 0.4},
	)

	r, ok, err := NewEngine().Compare(expected, observed)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Assignment{1, 0}, r.Assignment)
	assert.InDelta(t, 0.0, r.MutationRMSD, 1e-12)
}

func TestCorrelationMatrix(t *testing.T) {

	a := MustSet(
		[]float64{1, 2, 3, 4},
		[]float64{4, 3, 2, 1},
	)
	b := MustSet(
		[]float64{2, 4, 6, 8},
		[]float64{1, 1, 1, 1},
		[]float64{8, 6, 4, 2},
	)

	corr, err := CorrelationMatrix(a, b)
	require.NoError(t, err)

	r, c := corr.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.InDelta(t, 1.0, corr.At(0, 0), 1e-9)
	assert.True(t, math.IsNaN(corr.At(0, 1)))
	assert.InDelta(t, -1.0, corr.At(0, 2), 1e-9)
	assert.InDelta(t, 1.0, corr.At(1, 2), 1e-9)

	_, err = CorrelationMatrix(a, MustSet([]float64{1, 2}))
	assert.True(t, errors.Is(err, ShapeMismatchErr))
}
