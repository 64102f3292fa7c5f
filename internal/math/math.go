package math

import (
	"math"
	"strconv"
)

// Format formats a float for tabular output.
// NaN is written as an empty cell, so that downstream readers see a missing value.
func Format(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Parse parses a tabular cell into a float.
// Empty cells and any spelling of NaN are read as NaN.
func Parse(s string) (float64, error) {
	switch s {
	case "", "NaN", "nan", "NAN", "NA":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Log10 returns the decimal logarithm, or NaN for non-positive values.
func Log10(f float64) float64 {
	if f <= 0 {
		return math.NaN()
	}
	return math.Log10(f)
}
