package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Set is an ordered collection of clusters,
// each one a vector of values over the same positions.
// Row i of the underlying matrix is cluster i.
type Set struct {
	m *mat.Dense
}

// NewSet creates a new Set from the given cluster vectors.
// The values are copied.
func NewSet(clusters [][]float64) (Set, error) {
	if len(clusters) == 0 || len(clusters[0]) == 0 {
		return Set{}, fmt.Errorf("empty cluster set: %w", ShapeMismatchErr)
	}
	n := len(clusters[0])
	data := make([]float64, 0, len(clusters)*n)
	for k, c := range clusters {
		if len(c) != n {
			return Set{}, fmt.Errorf("cluster %d has %d positions instead of %d: %w", k, len(c), n, ShapeMismatchErr)
		}
		data = append(data, c...)
	}
	return Set{m: mat.NewDense(len(clusters), n, data)}, nil
}

// MustSet creates a new Set and panics on inconsistent input.
func MustSet(clusters ...[]float64) Set {
	s, err := NewSet(clusters)
	if err != nil {
		panic(err.Error())
	}
	return s
}

// FromMatrix creates a new Set as a copy of the given matrix.
func FromMatrix(m mat.Matrix) Set {
	return Set{m: mat.DenseCopyOf(m)}
}

// Dims returns the number of clusters and the number of positions.
func (s Set) Dims() (int, int) {
	if s.m == nil {
		return 0, 0
	}
	return s.m.Dims()
}

// K returns the number of clusters.
func (s Set) K() int {
	k, _ := s.Dims()
	return k
}

// Len returns the number of positions.
func (s Set) Len() int {
	_, n := s.Dims()
	return n
}

// At returns the value of cluster k at position i.
func (s Set) At(k, i int) float64 {
	return s.m.At(k, i)
}

// Row returns a copy of the vector of the given cluster.
func (s Set) Row(k int) []float64 {
	return mat.Row(nil, k, s.m)
}

// Rows returns a copy of all cluster vectors.
func (s Set) Rows() [][]float64 {
	rows := make([][]float64, s.K())
	for k := range rows {
		rows[k] = s.Row(k)
	}
	return rows
}

// Flatten returns all values in row-major order.
func (s Set) Flatten() []float64 {
	k, n := s.Dims()
	ff := make([]float64, 0, k*n)
	for i := 0; i < k; i++ {
		ff = append(ff, s.m.RawRowView(i)...)
	}
	return ff
}

// Matrix exposes a read-only view of the set.
func (s Set) Matrix() mat.Matrix {
	return s.m
}

// Sub returns the element-wise difference s - o.
func (s Set) Sub(o Set) (Set, error) {
	k1, n1 := s.Dims()
	k2, n2 := o.Dims()
	if k1 != k2 || n1 != n2 {
		return Set{}, fmt.Errorf("cannot subtract [%d x %d] from [%d x %d]: %w", k2, n2, k1, n1, ShapeMismatchErr)
	}
	if k1 == 0 {
		return Set{}, nil
	}
	d := mat.NewDense(k1, n1, nil)
	d.Sub(s.m, o.m)
	return Set{m: d}, nil
}

// Column returns the values of all clusters at the given position.
func (s Set) Column(i int) []float64 {
	return mat.Col(nil, i, s.m)
}
