package table

import (
	"fmt"
	"math"

	"github.com/drakos74/seismic-bench/internal/cluster"
)

// relationship codes of a simulated mutation-rate parameter table
var (
	MatchCode     = "1"
	MutationCodes = []string{"16", "32", "64", "128"}
)

func ratio(num, den []float64) []float64 {
	r := make([]float64, len(num))
	for i := range num {
		if den[i] == 0 {
			r[i] = math.NaN()
			continue
		}
		r[i] = num[i] / den[i]
	}
	return r
}

// MutatedRatio returns the fraction of informative reads that are mutated at every position
// for the given cluster.
func MutatedRatio(t *PosTable, order, cluster int) ([]float64, error) {
	mut, err := t.Column(Mutated, order, cluster)
	if err != nil {
		return nil, err
	}
	inf, err := t.Column(Informative, order, cluster)
	if err != nil {
		return nil, err
	}
	return ratio(mut, inf), nil
}

func clusters(t *PosTable, order int) ([]int, error) {
	kk := t.Clusters(order)
	if len(kk) != order {
		return nil, fmt.Errorf("found %d clusters for order %d in '%s': %w", len(kk), order, t.Path, MalformedErr)
	}
	return kk, nil
}

// ObservedMutationRates extracts the mutation rates of every cluster of the largest order.
func ObservedMutationRates(t *PosTable) (cluster.Set, error) {
	return ObservedMutationRatesOf(t, t.MaxOrder())
}

// ObservedMutationRatesOf extracts the mutation rates of every cluster of the given order.
func ObservedMutationRatesOf(t *PosTable, order int) (cluster.Set, error) {
	kk, err := clusters(t, order)
	if err != nil {
		return cluster.Set{}, err
	}
	rows := make([][]float64, len(kk))
	for i, k := range kk {
		r, err := MutatedRatio(t, order, k)
		if err != nil {
			return cluster.Set{}, err
		}
		rows[i] = r
	}
	return cluster.NewSet(rows)
}

// ExpectedMutationRates derives the simulated mutation rates of every cluster of the largest order
// as mutations / (mutations + matches).
func ExpectedMutationRates(t *PosTable) (cluster.Set, error) {
	order := t.MaxOrder()
	kk, err := clusters(t, order)
	if err != nil {
		return cluster.Set{}, err
	}
	rows := make([][]float64, len(kk))
	for i, k := range kk {
		muts, err := t.Sum(order, k, MutationCodes...)
		if err != nil {
			return cluster.Set{}, err
		}
		match, err := t.Column(MatchCode, order, k)
		if err != nil {
			return cluster.Set{}, err
		}
		total := make([]float64, len(muts))
		for p := range total {
			total[p] = muts[p] + match[p]
		}
		rows[i] = ratio(muts, total)
	}
	return cluster.NewSet(rows)
}
