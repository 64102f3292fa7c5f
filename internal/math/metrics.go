package math

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Valid returns the values that are not NaN.
func Valid(xx []float64) []float64 {
	vv := make([]float64, 0, len(xx))
	for _, x := range xx {
		if !math.IsNaN(x) {
			vv = append(vv, x)
		}
	}
	return vv
}

// Mask keeps only the positions where both x and y are defined.
// It returns nil slices if the lengths differ.
func Mask(x, y []float64) ([]float64, []float64) {
	if len(x) != len(y) {
		return nil, nil
	}
	mx := make([]float64, 0, len(x))
	my := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		mx = append(mx, x[i])
		my = append(my, y[i])
	}
	return mx, my
}

// Diff returns x - y element-wise. NaN on either side stays NaN.
func Diff(x, y []float64) []float64 {
	if len(x) != len(y) {
		panic("inconsistent lengths for diff")
	}
	d := make([]float64, len(x))
	floats.SubTo(d, x, y)
	return d
}

// sumSquares returns the sum of squares of the defined values and how many there were.
func sumSquares(diff []float64) (float64, int) {
	var sum float64
	var n int
	for _, d := range diff {
		if math.IsNaN(d) {
			continue
		}
		sum += d * d
		n++
	}
	return sum, n
}

// CalcRMS is the root-mean-square of the given values ignoring NaNs.
// It returns NaN if no value is defined.
func CalcRMS(diff []float64) float64 {
	sum, n := sumSquares(diff)
	if n == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum / float64(n))
}

// CalcNorm is the L2 norm of the given values ignoring NaNs.
// It returns NaN if no value is defined.
func CalcNorm(diff []float64) float64 {
	sum, n := sumSquares(diff)
	if n == 0 {
		return math.NaN()
	}
	return math.Sqrt(sum)
}

// CalcPearsonCorr is the Pearson correlation of x and y over the positions where both are defined.
// It returns NaN for fewer than 2 valid pairs or if either side has no variance.
func CalcPearsonCorr(x, y []float64) float64 {
	mx, my := Mask(x, y)
	if len(mx) < 2 {
		return math.NaN()
	}
	if stat.Variance(mx, nil) == 0 || stat.Variance(my, nil) == 0 {
		return math.NaN()
	}
	return stat.Correlation(mx, my, nil)
}
