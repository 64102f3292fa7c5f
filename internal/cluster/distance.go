package cluster

import (
	rnamath "github.com/drakos74/seismic-bench/internal/math"
)

// Distance measures how dissimilar two cluster vectors are.
// It may return NaN if the vectors share no defined position.
type Distance func(x, y []float64) float64

// RMSD is the root-mean-square deviation over the positions defined in both vectors.
func RMSD(x, y []float64) float64 {
	return rnamath.CalcRMS(rnamath.Diff(x, y))
}

// Correlation is 1 minus the Pearson correlation of the two vectors.
func Correlation(x, y []float64) float64 {
	return 1 - rnamath.CalcPearsonCorr(x, y)
}
