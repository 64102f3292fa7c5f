package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Assignment maps each observed cluster to an expected cluster.
// a[j] is the index of the expected cluster matched with observed cluster j.
type Assignment []int

// Identity returns the identity assignment over k clusters.
func Identity(k int) Assignment {
	a := make(Assignment, k)
	for i := range a {
		a[i] = i
	}
	return a
}

// Validate checks that the assignment is a bijection over 0..len(a)-1.
func (a Assignment) Validate() error {
	seen := make([]bool, len(a))
	for j, i := range a {
		if i < 0 || i >= len(a) {
			return fmt.Errorf("observed cluster %d assigned to %d out of [0,%d): %w", j, i, len(a), InvalidAssignmentErr)
		}
		if seen[i] {
			return fmt.Errorf("expected cluster %d assigned twice: %w", i, InvalidAssignmentErr)
		}
		seen[i] = true
	}
	return nil
}

// Inverse returns the mapping from expected cluster to observed cluster.
func (a Assignment) Inverse() Assignment {
	inv := make(Assignment, len(a))
	for j, i := range a {
		inv[i] = j
	}
	return inv
}

// IsIdentity returns true if every observed cluster keeps its position.
func (a Assignment) IsIdentity() bool {
	for j, i := range a {
		if i != j {
			return false
		}
	}
	return true
}

// Reorder moves the clusters of the given set into the order of the expected clusters.
// Row j of values becomes row a[j] of the result. The input is not modified.
func Reorder(values Set, a Assignment) (Set, error) {
	k, n := values.Dims()
	if k != len(a) {
		return Set{}, fmt.Errorf("cannot reorder %d clusters with assignment of %d: %w", k, len(a), ShapeMismatchErr)
	}
	if err := a.Validate(); err != nil {
		return Set{}, err
	}
	if k == 0 {
		return Set{}, nil
	}
	m := mat.NewDense(k, n, nil)
	for j, i := range a {
		m.SetRow(i, values.m.RawRowView(j))
	}
	return Set{m: m}, nil
}

// ReorderVec moves the per-cluster values, e.g. proportions, into the order of the expected clusters.
// The input is not modified.
func ReorderVec(values []float64, a Assignment) ([]float64, error) {
	if len(values) != len(a) {
		return nil, fmt.Errorf("cannot reorder %d values with assignment of %d: %w", len(values), len(a), ShapeMismatchErr)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for j, i := range a {
		out[i] = values[j]
	}
	return out, nil
}
