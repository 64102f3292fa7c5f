package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"github.com/rs/zerolog/log"
)

var (
	MissingFileErr = errors.New("missing file")
	MalformedErr   = errors.New("malformed table")
	NotFoundErr    = errors.New("column not found")
)

const (
	PositionLevel = "Position"
	BaseLevel     = "Base"
	OrderLevel    = "K"
	ClusterLevel  = "Cluster"

	Mutated     = "Mutated"
	Informative = "Informative"
)

// Column identifies a data column of a per-position table.
// Tables without cluster levels hold a single profile with Order and Cluster set to 1.
type Column struct {
	Rel     string
	Order   int
	Cluster int
}

func (c Column) String() string {
	return fmt.Sprintf("%s/%d/%d", c.Rel, c.Order, c.Cluster)
}

// PosTable is a table of values per position, with one or more header rows labelling the columns.
type PosTable struct {
	Path      string
	Positions []int
	Bases     []string
	columns   []Column
	values    [][]float64
	index     map[Column]int
}

// Open opens the given file, reporting a missing file with MissingFileErr.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not open '%s': %w", path, MissingFileErr)
		}
		return nil, fmt.Errorf("could not open '%s': %w", path, err)
	}
	return f, nil
}

// LoadPositions loads a per-position table from the given path.
func LoadPositions(path string) (*PosTable, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadPositions(f)
	if err != nil {
		return nil, fmt.Errorf("could not read table '%s': %w", path, err)
	}
	t.Path = path
	log.Debug().
		Str("path", path).
		Int("positions", len(t.Positions)).
		Int("columns", len(t.columns)).
		Msg("loaded table")
	return t, nil
}

func isOrderLevel(name string) bool {
	switch name {
	case OrderLevel, "Order", "NumClusters":
		return true
	}
	return false
}

// ReadPositions parses a per-position table.
// Every header row starts with the name of its level,
// and the last header row names the index columns, e.g.
//
//	Relationship,,Mutated,Informative
//	K,,1,1
//	Cluster,,1,1
//	Position,Base,,
//	1,A,10,100
func ReadPositions(r io.Reader) (*PosTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}

	headerEnd := -1
	for i, rec := range records {
		if len(rec) > 0 && rec[0] == PositionLevel {
			headerEnd = i
			break
		}
	}
	if headerEnd < 0 {
		return nil, fmt.Errorf("no '%s' index row: %w", PositionLevel, MalformedErr)
	}

	idx := records[headerEnd]
	nIndex := 0
	for nIndex < len(idx) && idx[nIndex] != "" {
		nIndex++
	}
	hasBase := nIndex > 1 && idx[1] == BaseLevel

	headers := records[:headerEnd]
	width := len(idx)
	if len(headers) == 0 {
		return nil, fmt.Errorf("no header rows: %w", MalformedErr)
	}
	for _, h := range headers {
		if len(h) != width {
			return nil, fmt.Errorf("header '%s' has %d fields instead of %d: %w", h[0], len(h), width, MalformedErr)
		}
	}

	t := &PosTable{
		index: make(map[Column]int),
	}
	for c := nIndex; c < width; c++ {
		col := Column{Order: 1, Cluster: 1}
		rels := make([]string, 0)
		for _, h := range headers {
			level, value := h[0], h[c]
			switch {
			case isOrderLevel(level):
				o, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("invalid order '%s' in column %d: %w", value, c, MalformedErr)
				}
				col.Order = o
			case level == ClusterLevel:
				k, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("invalid cluster '%s' in column %d: %w", value, c, MalformedErr)
				}
				col.Cluster = k
			default:
				rels = append(rels, value)
			}
		}
		col.Rel = strings.Join(rels, "/")
		if _, ok := t.index[col]; ok {
			return nil, fmt.Errorf("duplicate column %s: %w", col, MalformedErr)
		}
		t.index[col] = len(t.columns)
		t.columns = append(t.columns, col)
		t.values = append(t.values, make([]float64, 0))
	}

	for i, rec := range records[headerEnd+1:] {
		if len(rec) != width {
			return nil, fmt.Errorf("row %d has %d fields instead of %d: %w", i, len(rec), width, MalformedErr)
		}
		pos, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid position '%s' in row %d: %w", rec[0], i, MalformedErr)
		}
		t.Positions = append(t.Positions, pos)
		if hasBase {
			t.Bases = append(t.Bases, rec[1])
		}
		for c := nIndex; c < width; c++ {
			v, err := rnamath.Parse(rec[c])
			if err != nil {
				return nil, fmt.Errorf("invalid value '%s' at row %d column %d: %w", rec[c], i, c, MalformedErr)
			}
			t.values[c-nIndex] = append(t.values[c-nIndex], v)
		}
	}
	return t, nil
}

// Columns returns the column labels in file order.
func (t *PosTable) Columns() []Column {
	return append([]Column{}, t.columns...)
}

// MaxOrder returns the largest number of clusters present in the table.
func (t *PosTable) MaxOrder() int {
	var max int
	for _, c := range t.columns {
		if c.Order > max {
			max = c.Order
		}
	}
	return max
}

// Clusters returns the cluster numbers present for the given order, sorted.
func (t *PosTable) Clusters(order int) []int {
	seen := make(map[int]bool)
	kk := make([]int, 0)
	for _, c := range t.columns {
		if c.Order == order && !seen[c.Cluster] {
			seen[c.Cluster] = true
			kk = append(kk, c.Cluster)
		}
	}
	sort.Ints(kk)
	return kk
}

// Column returns a copy of the values of the given column.
func (t *PosTable) Column(rel string, order, cluster int) ([]float64, error) {
	col := Column{Rel: rel, Order: order, Cluster: cluster}
	i, ok := t.index[col]
	if !ok {
		return nil, fmt.Errorf("no column %s in '%s': %w", col, t.Path, NotFoundErr)
	}
	return append([]float64{}, t.values[i]...), nil
}

// Sum adds up the given relationships of one cluster position by position.
func (t *PosTable) Sum(order, cluster int, rels ...string) ([]float64, error) {
	sum := make([]float64, len(t.Positions))
	for _, rel := range rels {
		v, err := t.Column(rel, order, cluster)
		if err != nil {
			return nil, err
		}
		for i := range sum {
			sum[i] += v[i]
		}
	}
	return sum, nil
}
