package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
)

var (
	// DefaultDir is the root directory for file based storage.
	DefaultDir = "file-storage"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for the outcome of a single run.
type Key struct {
	Run    string `json:"run"`
	Sample string `json:"sample"`
	Label  string `json:"label"`
}

// Path returns the relative file path for the key.
func (k Key) Path() string {
	if k.Sample == "" {
		return filepath.Join(k.Run, k.Label)
	}
	return filepath.Join(k.Run, fmt.Sprintf("%s_%s", k.Sample, k.Label))
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// Number is a float that survives json encoding when undefined.
// NaN and infinities are written as null and null is read back as NaN.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Numbers converts the given floats.
func Numbers(ff []float64) []Number {
	nn := make([]Number, len(ff))
	for i, f := range ff {
		nn[i] = Number(f)
	}
	return nn
}

// Floats converts the given numbers.
func Floats(nn []Number) []float64 {
	ff := make([]float64, len(nn))
	for i, n := range nn {
		ff[i] = float64(n)
	}
	return ff
}
