package cluster

import (
	"errors"
	"fmt"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"gonum.org/v1/gonum/mat"
)

var (
	ShapeMismatchErr     = errors.New("shape mismatch")
	DegenerateInputErr   = errors.New("degenerate input")
	InvalidAssignmentErr = errors.New("invalid assignment")
)

// Result holds the discrepancy between expected and observed clusters,
// computed after the observed clusters have been reordered.
type Result struct {
	Assignment     Assignment
	MutationRMSD   float64
	MutationNorm   float64
	MutationCorr   float64
	ProportionRMSD float64
	ProportionNorm float64
	// Proportions are the observed proportions in the order of the expected clusters.
	Proportions []float64
}

// Engine matches observed clusters to expected ones and measures how far apart they are.
// The zero value uses the AutoMatcher with the RMSD distance.
type Engine struct {
	matcher  Matcher
	distance Distance
}

// NewEngine creates a new comparison engine.
func NewEngine() Engine {
	return Engine{
		matcher:  AutoMatcher{},
		distance: RMSD,
	}
}

// WithMatcher sets the strategy solving the assignment.
func (e Engine) WithMatcher(m Matcher) Engine {
	e.matcher = m
	return e
}

// WithDistance sets the pairwise cost between an observed and an expected cluster.
func (e Engine) WithDistance(d Distance) Engine {
	e.distance = d
	return e
}

func (e Engine) match() Matcher {
	if e.matcher == nil {
		return AutoMatcher{}
	}
	return e.matcher
}

func (e Engine) dist() Distance {
	if e.distance == nil {
		return RMSD
	}
	return e.distance
}

// Cost builds the matrix of distances between every observed (row) and expected (column) cluster.
func (e Engine) Cost(expected, observed Set) (*mat.Dense, error) {
	ke, ne := expected.Dims()
	ko, no := observed.Dims()
	if ke != ko {
		return nil, fmt.Errorf("expected %d clusters but observed %d: %w", ke, ko, ShapeMismatchErr)
	}
	if ne != no {
		return nil, fmt.Errorf("expected %d positions but observed %d: %w", ne, no, ShapeMismatchErr)
	}
	if ke == 0 {
		return nil, fmt.Errorf("no clusters: %w", DegenerateInputErr)
	}
	if err := checkDefined("expected", expected); err != nil {
		return nil, err
	}
	if err := checkDefined("observed", observed); err != nil {
		return nil, err
	}
	d := e.dist()
	cost := mat.NewDense(ko, ke, nil)
	for j := 0; j < ko; j++ {
		o := observed.m.RawRowView(j)
		for i := 0; i < ke; i++ {
			cost.Set(j, i, d(o, expected.m.RawRowView(i)))
		}
	}
	return cost, nil
}

func checkDefined(name string, s Set) error {
	for k := 0; k < s.K(); k++ {
		if len(rnamath.Valid(s.m.RawRowView(k))) == 0 {
			return fmt.Errorf("%s cluster %d has no defined value: %w", name, k, DegenerateInputErr)
		}
	}
	return nil
}

// Assign finds the one-to-one correspondence between observed and expected clusters
// with the lowest total cost.
func (e Engine) Assign(expected, observed Set) (Assignment, error) {
	cost, err := e.Cost(expected, observed)
	if err != nil {
		return nil, err
	}
	a, err := e.match().Match(cost)
	if err != nil {
		return nil, fmt.Errorf("could not match clusters: %w", err)
	}
	if len(a) != expected.K() {
		return nil, fmt.Errorf("matcher returned %d assignments for %d clusters: %w", len(a), expected.K(), InvalidAssignmentErr)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Compare assigns the observed clusters to the expected ones and computes the discrepancy.
// It returns false without error if the number of clusters differs,
// as there is no meaningful comparison in that case.
func (e Engine) Compare(expected, observed Set) (Result, bool, error) {
	if expected.K() != observed.K() {
		return Result{}, false, nil
	}
	a, err := e.Assign(expected, observed)
	if err != nil {
		return Result{}, false, err
	}
	ordered, err := Reorder(observed, a)
	if err != nil {
		return Result{}, false, err
	}
	diff, err := ordered.Sub(expected)
	if err != nil {
		return Result{}, false, err
	}
	d := diff.Flatten()
	return Result{
		Assignment:     a,
		MutationRMSD:   rnamath.CalcRMS(d),
		MutationNorm:   rnamath.CalcNorm(d),
		MutationCorr:   rnamath.CalcPearsonCorr(ordered.Flatten(), expected.Flatten()),
		ProportionRMSD: rnamath.CalcRMS(nil),
		ProportionNorm: rnamath.CalcNorm(nil),
	}, true, nil
}

// CompareWithProportions compares the mutation rates like Compare
// and reorders the observed proportions with the same assignment.
func (e Engine) CompareWithProportions(expectedMus, observedMus Set, expectedPis, observedPis []float64) (Result, bool, error) {
	r, ok, err := e.Compare(expectedMus, observedMus)
	if err != nil || !ok {
		return r, ok, err
	}
	if len(expectedPis) != len(r.Assignment) {
		return Result{}, false, fmt.Errorf("expected %d proportions for %d clusters: %w", len(expectedPis), len(r.Assignment), ShapeMismatchErr)
	}
	pis, err := ReorderVec(observedPis, r.Assignment)
	if err != nil {
		return Result{}, false, err
	}
	d := rnamath.Diff(pis, expectedPis)
	r.Proportions = pis
	r.ProportionRMSD = rnamath.CalcRMS(d)
	r.ProportionNorm = rnamath.CalcNorm(d)
	return r, true, nil
}

// CorrelationMatrix returns the Pearson correlation between every cluster of a (rows)
// and every cluster of b (columns), over the positions defined in both.
func CorrelationMatrix(a, b Set) (*mat.Dense, error) {
	ka, na := a.Dims()
	kb, nb := b.Dims()
	if na != nb {
		return nil, fmt.Errorf("cannot correlate %d with %d positions: %w", na, nb, ShapeMismatchErr)
	}
	if ka == 0 || kb == 0 {
		return nil, fmt.Errorf("no clusters: %w", DegenerateInputErr)
	}
	corr := mat.NewDense(ka, kb, nil)
	for i := 0; i < ka; i++ {
		for j := 0; j < kb; j++ {
			corr.Set(i, j, rnamath.CalcPearsonCorr(a.m.RawRowView(i), b.m.RawRowView(j)))
		}
	}
	return corr, nil
}
