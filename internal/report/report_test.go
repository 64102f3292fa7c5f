package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clusterReport = `{
  "Name of sample": "c2-1-ampl2-n10000",
  "Name of reference": "ref-280",
  "Optimal number of clusters": 2,
  "Number of unique reads kept": 9120,
  "Number of reads kept": "9876",
  "5' end of section": 1,
  "Fraction": 0.5,
  "Missing": null,
  "Nested": {"a": 1}
}`

func TestReport(t *testing.T) {

	r, err := Read(strings.NewReader(clusterReport))
	require.NoError(t, err)

	n, err := r.Int(NumClusters)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.Int(NumReadsKept)
	require.NoError(t, err)
	assert.Equal(t, 9876, n)

	s, err := r.String(Sample)
	require.NoError(t, err)
	assert.Equal(t, "c2-1-ampl2-n10000", s)

	f, err := r.Float("Fraction")
	require.NoError(t, err)
	assert.Equal(t, 0.5, f)

	_, err = r.Int("Fraction")
	assert.True(t, errors.Is(err, InvalidFieldErr))

	_, err = r.Int("Missing")
	assert.True(t, errors.Is(err, InvalidFieldErr))

	_, err = r.Float("Nested")
	assert.True(t, errors.Is(err, InvalidFieldErr))

	_, err = r.Int(End3)
	assert.True(t, errors.Is(err, FieldNotFoundErr))
}

func TestLoad(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "cluster-report.json")
	require.NoError(t, os.WriteFile(path, []byte(clusterReport), 0600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, r.Path)

	_, err = Load(filepath.Join(dir, "mask-report.json"))
	assert.True(t, errors.Is(err, MissingFileErr))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0600))
	_, err = Load(bad)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, MissingFileErr))
}
