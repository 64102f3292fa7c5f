package ct

import (
	"fmt"
	"math"
)

// Range is an inclusive range of positions.
type Range struct {
	End5 int `json:"end5"`
	End3 int `json:"end3"`
}

// Contains returns true if the position lies in the range.
func (r Range) Contains(pos int) bool {
	return r.End5 <= pos && pos <= r.End3
}

// Point is a coordinate on the diagram.
type Point struct {
	X, Y float64
}

// Arc is the upper half of an ellipse connecting the two bases of a pair.
type Arc struct {
	Pair   Pair
	Center Point
	Width  float64
	Height float64
}

// Line is a straight connection between two bases on different rows.
type Line struct {
	Pair     Pair
	From, To Point
}

// ArcAspect returns the width-to-height ratio of the arcs
// such that the widest arc over [xmin, xmax] is ratio times as high as half the x range.
func ArcAspect(xmin, xmax, ratio float64) float64 {
	return (xmax - xmin) / 2 / ratio
}

// Arcs lays out every base pair of the structure as an arc on the given baseline.
func Arcs(s Structure, baseline, aspect float64) []Arc {
	pairs := s.Pairs()
	arcs := make([]Arc, len(pairs))
	for i, p := range pairs {
		arcs[i] = arc(p, Point{X: float64(p.P5+p.P3) / 2, Y: baseline}, aspect)
	}
	return arcs
}

func arc(p Pair, center Point, aspect float64) Arc {
	w := float64(p.P3 - p.P5)
	return Arc{
		Pair:   p,
		Center: center,
		Width:  w,
		Height: w / aspect,
	}
}

// Color classifies a base pair relative to a targeted region.
type Color int

const (
	// PairNone means the pair is not informative about the target.
	PairNone Color = iota
	// PairTrue means the untargeted base lost correlation, supporting the pair.
	PairTrue
	// PairFalse means the untargeted base kept its correlation.
	PairFalse
)

func (c Color) String() string {
	switch c {
	case PairTrue:
		return "true"
	case PairFalse:
		return "false"
	}
	return "none"
}

// ColorPair classifies a pair for which exactly one base lies in the target region
// by the correlation at the other base.
func ColorPair(p Pair, target Range, corr func(pos int) (float64, bool), threshold float64) Color {
	t5 := target.Contains(p.P5)
	t3 := target.Contains(p.P3)
	var other int
	switch {
	case t5 && t3:
		return PairNone
	case t5:
		other = p.P3
	case t3:
		other = p.P5
	default:
		return PairNone
	}
	d, ok := corr(other)
	if !ok || math.IsNaN(d) {
		return PairNone
	}
	if d <= threshold {
		return PairTrue
	}
	return PairFalse
}

// FoldBack lays out a section on a main row with the partners downstream of it
// folded back onto an upper row, so that long-range pairs become lines between rows.
type FoldBack struct {
	Section  Range
	Upper    float64
	afterMin int
	afterMax int
}

// NewFoldBack lays out the pairs formed by the bases in main.
// Pairs may not reach upstream of main, and at least one must reach downstream of it.
func NewFoldBack(s Structure, section, main Range, upper float64) (*FoldBack, []Pair, error) {
	if !(section.End5 <= main.End5 && main.End5 <= main.End3 && main.End3 <= section.End3) {
		return nil, nil, fmt.Errorf("main row %v not within section %v", main, section)
	}
	pairs := make([]Pair, 0)
	seen := make(map[Pair]bool)
	afterMin, afterMax := math.MaxInt32, 0
	for pos := main.End5; pos <= main.End3; pos++ {
		partner := s.Partner(pos)
		if partner == 0 {
			continue
		}
		if partner < main.End5 {
			return nil, nil, fmt.Errorf("position %d pairs with %d before the main row", pos, partner)
		}
		if partner > main.End3 {
			if partner < afterMin {
				afterMin = partner
			}
			if partner > afterMax {
				afterMax = partner
			}
		}
		p := NewPair(pos, partner)
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	if afterMax == 0 {
		return nil, nil, fmt.Errorf("no pairs reach beyond the main row %v", main)
	}
	return &FoldBack{
		Section:  section,
		Upper:    upper,
		afterMin: afterMin,
		afterMax: afterMax,
	}, pairs, nil
}

// Map returns the coordinate of a position: on the main row at height 1 inside the section,
// otherwise mirrored onto the upper row.
func (f *FoldBack) Map(pos float64) Point {
	if float64(f.Section.End5) <= pos && pos <= float64(f.Section.End3) {
		return Point{X: pos, Y: 1}
	}
	return Point{X: float64(f.Section.End5) + (float64(f.afterMax) - pos), Y: f.Upper}
}

// Limits returns the x range covering both rows.
func (f *FoldBack) Limits() (float64, float64) {
	lo := math.Min(f.Map(float64(f.afterMax)).X, float64(f.Section.End5))
	hi := math.Max(f.Map(float64(f.afterMin)).X, float64(f.Section.End3))
	return lo, hi
}

// Layout connects pairs within the section with flat arcs and all others with lines.
func (f *FoldBack) Layout(pairs []Pair, flatness float64) ([]Arc, []Line) {
	arcs := make([]Arc, 0)
	lines := make([]Line, 0)
	for _, p := range pairs {
		if f.Section.Contains(p.P5) && f.Section.Contains(p.P3) {
			arcs = append(arcs, arc(p, f.Map(float64(p.P5+p.P3)/2), 1/flatness))
			continue
		}
		lines = append(lines, Line{
			Pair: p,
			From: f.Map(float64(p.P5)),
			To:   f.Map(float64(p.P3)),
		})
	}
	return arcs, lines
}
