package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog/log"
)

var (
	// MissingFileErr is shared with the table loaders, so that callers can check for both in one go.
	MissingFileErr   = table.MissingFileErr
	FieldNotFoundErr = errors.New("field not found")
	InvalidFieldErr  = errors.New("invalid field")
)

// Field is the title of a report entry.
type Field string

const (
	NumReadsKept     Field = "Number of reads kept"
	NumUniqReadsKept Field = "Number of unique reads kept"
	NumClusters      Field = "Optimal number of clusters"
	Sample           Field = "Name of sample"
	Ref              Field = "Name of reference"
	Section          Field = "Name of section"
	End5             Field = "5' end of section"
	End3             Field = "3' end of section"
)

// Report is the json report written by each step of the analysis toolkit.
type Report struct {
	Path   string
	fields map[string]interface{}
}

// Load loads the report from the given path.
func Load(path string) (*Report, error) {
	f, err := table.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not read report '%s': %w", path, err)
	}
	r.Path = path
	log.Debug().Str("path", path).Int("fields", len(r.fields)).Msg("loaded report")
	return r, nil
}

// Read parses a report.
func Read(r io.Reader) (*Report, error) {
	fields := make(map[string]interface{})
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("could not decode report: %w", err)
	}
	return &Report{fields: fields}, nil
}

// Get returns the raw value of the given field.
func (r *Report) Get(field Field) (interface{}, error) {
	v, ok := r.fields[string(field)]
	if !ok {
		return nil, fmt.Errorf("no '%s' in '%s': %w", field, r.Path, FieldNotFoundErr)
	}
	return v, nil
}

// Float returns the given field as a number.
func (r *Report) Float(field Field) (float64, error) {
	v, err := r.Get(field)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("'%s' = %v: %w", field, v, InvalidFieldErr)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("'%s' = %v: %w", field, v, InvalidFieldErr)
		}
		return f, nil
	case nil:
		return math.NaN(), nil
	}
	return 0, fmt.Errorf("'%s' = %v: %w", field, v, InvalidFieldErr)
}

// Int returns the given field as an integer.
func (r *Report) Int(field Field) (int, error) {
	f, err := r.Float(field)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("'%s' = %v is not an integer: %w", field, f, InvalidFieldErr)
	}
	return int(f), nil
}

// String returns the given field as text.
func (r *Report) String(field Field) (string, error) {
	v, err := r.Get(field)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	}
	return "", fmt.Errorf("'%s' = %v: %w", field, v, InvalidFieldErr)
}
