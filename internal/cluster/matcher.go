package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxExhaustive is the largest number of clusters the AutoMatcher solves by enumeration.
const MaxExhaustive = 8

// tolerance below which two total costs are considered equal.
const tolerance = 1e-12

// Matcher solves the assignment problem for a square cost matrix.
// cost.At(j, i) is the cost of pairing observed cluster j with expected cluster i.
// NaN costs are treated as infinite.
type Matcher interface {
	Match(cost mat.Matrix) (Assignment, error)
}

// MatcherFunc adapts a plain function to a Matcher.
type MatcherFunc func(cost mat.Matrix) (Assignment, error)

func (f MatcherFunc) Match(cost mat.Matrix) (Assignment, error) {
	return f(cost)
}

func square(cost mat.Matrix) (int, error) {
	r, c := cost.Dims()
	if r != c {
		return 0, fmt.Errorf("cost matrix [%d x %d] is not square: %w", r, c, ShapeMismatchErr)
	}
	return r, nil
}

func costAt(cost mat.Matrix, j, i int) float64 {
	c := cost.At(j, i)
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}

// ExhaustiveMatcher tries every permutation in lexicographic order.
// The first permutation reaching the minimum total cost wins,
// so ties resolve towards the input order, e.g. the identity when all costs are equal.
type ExhaustiveMatcher struct{}

func (ExhaustiveMatcher) Match(cost mat.Matrix) (Assignment, error) {
	k, err := square(cost)
	if err != nil {
		return nil, err
	}

	var best Assignment
	bestCost := math.Inf(1)

	current := make(Assignment, k)
	used := make([]bool, k)

	var visit func(j int, total float64)
	visit = func(j int, total float64) {
		if j == k {
			if best == nil || total < bestCost-tolerance {
				best = append(Assignment{}, current...)
				bestCost = total
			}
			return
		}
		for i := 0; i < k; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			current[j] = i
			visit(j+1, total+costAt(cost, j, i))
			used[i] = false
		}
	}
	visit(0, 0)

	if best == nil {
		best = Assignment{}
	}
	return best, nil
}

// HungarianMatcher solves the assignment with the Kuhn-Munkres algorithm in O(k^3).
// Ties resolve by the scan order over rows and columns.
type HungarianMatcher struct{}

func (HungarianMatcher) Match(cost mat.Matrix) (Assignment, error) {
	n, err := square(cost)
	if err != nil {
		return nil, err
	}
	c := finite(cost, n)

	// potentials and matching are 1-indexed, column 0 is a sentinel
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for row := 1; row <= n; row++ {
		p[0] = row
		j0 := 0
		minv := make([]float64, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		used := make([]bool, n+1)
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	a := make(Assignment, n)
	for j := 1; j <= n; j++ {
		a[p[j]-1] = j - 1
	}
	return a, nil
}

// finite copies the cost matrix replacing NaN and infinite costs
// with a value larger than any finite total.
func finite(cost mat.Matrix, n int) [][]float64 {
	var max float64
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := cost.At(j, i)
			if !math.IsNaN(x) && !math.IsInf(x, 0) && math.Abs(x) > max {
				max = math.Abs(x)
			}
		}
	}
	big := (max + 1) * float64(n+1)
	c := make([][]float64, n)
	for j := range c {
		c[j] = make([]float64, n)
		for i := range c[j] {
			x := cost.At(j, i)
			switch {
			case math.IsNaN(x), math.IsInf(x, 1):
				x = big
			case math.IsInf(x, -1):
				x = -big
			}
			c[j][i] = x
		}
	}
	return c
}

// AutoMatcher enumerates small problems exhaustively and falls back to the Hungarian algorithm.
type AutoMatcher struct{}

func (AutoMatcher) Match(cost mat.Matrix) (Assignment, error) {
	k, _ := cost.Dims()
	if k <= MaxExhaustive {
		return ExhaustiveMatcher{}.Match(cost)
	}
	return HungarianMatcher{}.Match(cost)
}
