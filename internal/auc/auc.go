package auc

import (
	"fmt"
	"math"
	"sort"

	"github.com/drakos74/seismic-bench/internal/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Range is an inclusive range of positions.
type Range struct {
	End5 int
	End3 int
}

// Width returns the number of positions in the range.
func (r Range) Width() int {
	return r.End3 - r.End5 + 1
}

// Area is the area of a range below the topline.
type Area struct {
	Range Range
	Area  float64
}

// CallTopsDips splits the defined values of the series into maximal runs
// at or above the topline (tops) and below it (dips).
func CallTopsDips(s table.Series, topline float64) (tops, dips []Range) {
	pp := make([]int, 0, s.Len())
	vv := make([]float64, 0, s.Len())
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		pp = append(pp, s.Positions[i])
		vv = append(vv, v)
	}
	tops = make([]Range, 0)
	dips = make([]Range, 0)
	for i := 0; i < len(vv); {
		top := vv[i] >= topline
		j := i
		for j+1 < len(vv) && (vv[j+1] >= topline) == top {
			j++
		}
		r := Range{End5: pp[i], End3: pp[j]}
		if top {
			tops = append(tops, r)
		} else {
			dips = append(dips, r)
		}
		i = j + 1
	}
	return tops, dips
}

// DipAreas returns the area below the topline of every top and dip,
// sorted from the deepest dip upwards.
func DipAreas(s table.Series, topline float64) []Area {
	tops, dips := CallTopsDips(s, topline)
	areas := make([]Area, 0, len(tops)+len(dips))
	for _, r := range append(tops, dips...) {
		var area float64
		for _, v := range s.Between(r.End5, r.End3).Values {
			if math.IsNaN(v) {
				continue
			}
			area += math.Min(v-topline, 0)
		}
		areas = append(areas, Area{Range: r, Area: area})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Area < areas[j].Area
	})
	return areas
}

// Bins returns n+1 evenly spaced dividers over [lo, hi].
func Bins(lo, hi float64, n int) []float64 {
	dividers := make([]float64, n+1)
	floats.Span(dividers, lo, hi)
	return dividers
}

// Histogram counts the defined values falling in each bin.
// Values outside the dividers are ignored and the last bin includes its upper edge.
func Histogram(dividers, values []float64) ([]float64, error) {
	if len(dividers) < 2 {
		return nil, fmt.Errorf("need at least 2 dividers but got %d", len(dividers))
	}
	if !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("dividers are not sorted")
	}
	lo, hi := dividers[0], dividers[len(dividers)-1]
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		if v == hi {
			v = math.Nextafter(hi, lo)
		}
		x = append(x, v)
	}
	sort.Float64s(x)
	return stat.Histogram(nil, dividers, x, nil), nil
}

// Histograms counts the values inside and outside the given region separately.
func Histograms(s table.Series, dividers []float64, region Range) (in, out []float64, err error) {
	in, err = Histogram(dividers, s.Between(region.End5, region.End3).Values)
	if err != nil {
		return nil, nil, err
	}
	out, err = Histogram(dividers, s.Outside(region.End5, region.End3).Values)
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}
