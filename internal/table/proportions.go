package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"gonum.org/v1/gonum/floats"
)

const (
	ProportionField = "Proportion"
	CountField      = "Count"
)

// ClustRow is one cluster of a per-cluster table.
type ClustRow struct {
	Order   int
	Cluster int
	Values  map[string]float64
}

// ClustTable is a table with one row per cluster, e.g. cluster proportions or read counts.
type ClustTable struct {
	Path string
	Rows []ClustRow
}

// LoadClusters loads a per-cluster table from the given path.
func LoadClusters(path string) (*ClustTable, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadClusters(f)
	if err != nil {
		return nil, fmt.Errorf("could not read cluster table '%s': %w", path, err)
	}
	t.Path = path
	return t, nil
}

// ReadClusters parses a per-cluster table with the order and cluster as the first two columns, e.g.
//
//	K,Cluster,Proportion
//	2,1,0.6
//	2,2,0.4
func ReadClusters(r io.Reader) (*ClustTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table: %w", MalformedErr)
	}
	header := records[0]
	if len(header) < 3 || !isOrderLevel(header[0]) || header[1] != ClusterLevel {
		return nil, fmt.Errorf("invalid header %v: %w", header, MalformedErr)
	}
	t := &ClustTable{}
	for i, rec := range records[1:] {
		order, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid order '%s' in row %d: %w", rec[0], i, MalformedErr)
		}
		k, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("invalid cluster '%s' in row %d: %w", rec[1], i, MalformedErr)
		}
		row := ClustRow{
			Order:   order,
			Cluster: k,
			Values:  make(map[string]float64, len(header)-2),
		}
		for c := 2; c < len(header); c++ {
			v, err := rnamath.Parse(rec[c])
			if err != nil {
				return nil, fmt.Errorf("invalid %s '%s' in row %d: %w", header[c], rec[c], i, MalformedErr)
			}
			row.Values[header[c]] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// MaxOrder returns the largest order present in the table.
func (t *ClustTable) MaxOrder() int {
	var max int
	for _, r := range t.Rows {
		if r.Order > max {
			max = r.Order
		}
	}
	return max
}

// Values returns the given field for every cluster of the given order, sorted by cluster.
func (t *ClustTable) Values(order int, field string) ([]float64, error) {
	rows := make([]ClustRow, 0)
	for _, r := range t.Rows {
		if r.Order == order {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no clusters of order %d in '%s': %w", order, t.Path, NotFoundErr)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Cluster < rows[j].Cluster
	})
	vv := make([]float64, len(rows))
	for i, r := range rows {
		v, ok := r.Values[field]
		if !ok {
			return nil, fmt.Errorf("no field '%s' in '%s': %w", field, t.Path, NotFoundErr)
		}
		vv[i] = v
	}
	return vv, nil
}

// ExpectedProportions returns the simulated proportions of the clusters of the largest order.
func ExpectedProportions(t *ClustTable) ([]float64, error) {
	return t.Values(t.MaxOrder(), ProportionField)
}

// ObservedProportions returns the read counts of the clusters of the largest order,
// normalised to sum up to 1.
func ObservedProportions(t *ClustTable) ([]float64, error) {
	counts, err := t.Values(t.MaxOrder(), CountField)
	if err != nil {
		return nil, err
	}
	pis := append([]float64{}, counts...)
	floats.Scale(1/floats.Sum(counts), pis)
	return pis, nil
}
