package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"gonum.org/v1/gonum/mat"
)

// WriteRecords writes the header and rows as csv.
func WriteRecords(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("could not write rows: %w", err)
	}
	return nil
}

// WriteMatrix writes a labelled matrix as csv, with the row labels in the first column.
func WriteMatrix(w io.Writer, corner string, rowLabels, colLabels []string, m mat.Matrix) error {
	r, c := m.Dims()
	if len(rowLabels) != r || len(colLabels) != c {
		return fmt.Errorf("labels [%d x %d] do not fit matrix [%d x %d]: %w", len(rowLabels), len(colLabels), r, c, MalformedErr)
	}
	header := append([]string{corner}, colLabels...)
	rows := make([][]string, r)
	for i := range rows {
		row := make([]string, c+1)
		row[0] = rowLabels[i]
		for j := 0; j < c; j++ {
			row[j+1] = rnamath.Format(m.At(i, j))
		}
		rows[i] = row
	}
	return WriteRecords(w, header, rows)
}

// Labels numbers n labels starting from 1.
func Labels(n int) []string {
	ll := make([]string, n)
	for i := range ll {
		ll[i] = strconv.Itoa(i + 1)
	}
	return ll
}

// Create creates the file at the given path along with its directory.
func Create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not make dir for '%s': %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create file '%s': %w", path, err)
	}
	return f, nil
}
