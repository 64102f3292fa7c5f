package table

import (
	"fmt"
)

// Series is a single value per position, e.g. the AUC-ROC of a sliding window.
type Series struct {
	Positions []int
	Values    []float64
}

// LoadSeries loads a per-position table holding exactly one data column.
func LoadSeries(path string) (Series, error) {
	t, err := LoadPositions(path)
	if err != nil {
		return Series{}, err
	}
	return t.Series()
}

// Series returns the only data column of the table.
func (t *PosTable) Series() (Series, error) {
	if len(t.columns) != 1 {
		return Series{}, fmt.Errorf("expected a single column in '%s' but found %d: %w", t.Path, len(t.columns), MalformedErr)
	}
	return Series{
		Positions: append([]int{}, t.Positions...),
		Values:    append([]float64{}, t.values[0]...),
	}, nil
}

// Len returns the number of positions.
func (s Series) Len() int {
	return len(s.Positions)
}

// Between returns the part of the series with positions in [end5, end3].
func (s Series) Between(end5, end3 int) Series {
	out := Series{}
	for i, p := range s.Positions {
		if p >= end5 && p <= end3 {
			out.Positions = append(out.Positions, p)
			out.Values = append(out.Values, s.Values[i])
		}
	}
	return out
}

// Outside returns the part of the series with positions outside [end5, end3].
func (s Series) Outside(end5, end3 int) Series {
	out := Series{}
	for i, p := range s.Positions {
		if p < end5 || p > end3 {
			out.Positions = append(out.Positions, p)
			out.Values = append(out.Values, s.Values[i])
		}
	}
	return out
}

// At returns the value at the given position.
func (s Series) At(pos int) (float64, bool) {
	for i, p := range s.Positions {
		if p == pos {
			return s.Values[i], true
		}
	}
	return 0, false
}
