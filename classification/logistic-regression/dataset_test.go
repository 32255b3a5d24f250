package main

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// writeTempCSV writes rows to a CSV file under a test temp dir.
func writeTempCSV(t *testing.T, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())
	return path
}

func TestTargetLabel(t *testing.T) {
	tests := []struct {
		code float64
		want string
	}{
		{1.0, LabelPass},
		{0.5, LabelHalf},
		{0.0, LabelFail},
		{0.3, LabelFail},
		{0.999, LabelFail},
		{0.999999, LabelFail},
		{1.0000001, LabelFail},
		{0.5000001, LabelFail},
		{-1.0, LabelFail},
		{2.0, LabelFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetLabel(tt.code), "code %v", tt.code)
	}
}

func TestNewDataset(t *testing.T) {
	table := mat.NewDense(4, 2, []float64{
		10, 0.0,
		50, 0.5,
		90, 1.0,
		70, 0.999999,
	})

	ds, err := NewDataset(table)
	require.NoError(t, err)

	assert.Equal(t, 4, ds.NSamples())
	assert.Equal(t, 1, ds.NFeatures())
	r, _ := ds.Records.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, []string{"marks"}, ds.FeatureNames)
	assert.Equal(t, []float64{10, 50, 90, 70}, mat.Col(nil, 0, ds.Records))
	if diff := cmp.Diff([]string{"fail", "half", "pass", "fail"}, ds.Targets); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"fail", "half", "pass"}, ds.Classes())
	assert.Equal(t, 3, ds.NClasses())
}

func TestNewDatasetWrongShape(t *testing.T) {
	_, err := NewDataset(mat.NewDense(2, 3, nil))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadDatasetRoundTrip(t *testing.T) {
	rows := [][]string{{"marks", "result"}}
	for _, r := range [][]string{{"10", "0"}, {"50", "0.5"}, {"90", "1.0"}, {"33.5", "0.0"}, {"71", "1"}} {
		rows = append(rows, r)
	}
	path := writeTempCSV(t, rows)

	table, err := LoadTable(path)
	require.NoError(t, err)
	r, c := table.Dims()
	assert.Equal(t, 5, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 33.5, table.At(3, 0))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.NSamples())
	assert.Equal(t, []string{"fail", "half", "pass", "fail", "pass"}, ds.Targets)
}

func TestLoadTableErrors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
	}{
		{
			name: "non-numeric field",
			rows: [][]string{{"marks", "result"}, {"10", "0"}, {"abc", "1"}},
		},
		{
			name: "non-numeric target",
			rows: [][]string{{"marks", "result"}, {"10", "pass"}},
		},
		{
			name: "extra column",
			rows: [][]string{{"marks", "result"}, {"10", "0"}, {"20", "0", "1"}},
		},
		{
			name: "missing column",
			rows: [][]string{{"marks", "result"}, {"10"}},
		},
		{
			name: "header only",
			rows: [][]string{{"marks", "result"}},
		},
		{
			name: "empty file",
			rows: nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempCSV(t, tc.rows)
			_, err := LoadTable(path)
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, path, loadErr.Path)
		})
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, ExitLoadError, exitCode(err))
}

func TestBundledData(t *testing.T) {
	for _, path := range []string{trainingDataSet, testDataSet} {
		ds, err := LoadDataset(path)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"fail", "half", "pass"}, ds.Classes(), path)
	}
}
