package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Labels assigned to the raw target codes.
const (
	LabelFail = "fail"
	LabelHalf = "half"
	LabelPass = "pass"
)

// featureName is the name of the only feature column.
const featureName = "marks"

// tableColumns is the number of columns of every data row: the marks and
// the raw target code.
const tableColumns = 2

// Dataset holds the feature records and their string labels.
type Dataset struct {
	Records      *mat.Dense
	Targets      []string
	FeatureNames []string
}

// NSamples returns the number of rows.
func (d *Dataset) NSamples() int { return len(d.Targets) }

// NFeatures returns the number of feature columns.
func (d *Dataset) NFeatures() int {
	_, c := d.Records.Dims()
	return c
}

// Classes returns the distinct labels of the dataset in sorted order.
func (d *Dataset) Classes() []string {
	return distinctLabels(d.Targets)
}

// NClasses returns the number of distinct labels.
func (d *Dataset) NClasses() int { return len(d.Classes()) }

// TargetLabel maps a raw target code to its label. The comparison is an
// exact float equality: 0.999999 is a "fail", not a "pass".
func TargetLabel(code float64) string {
	if code == 1.0 {
		return LabelPass
	} else if code == 0.5 {
		return LabelHalf
	}
	return LabelFail
}

// LoadTable reads a CSV file with one header line followed by rows of two
// numeric fields. Any malformed row aborts the whole load.
func LoadTable(path string) (*mat.Dense, error) {
	// Open the CSV file.
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	table, err := readTable(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	r, c := table.Dims()
	slog.Debug("loaded table", "path", path, "rows", r, "cols", c)
	return table, nil
}

func readTable(r io.Reader) (*mat.Dense, error) {
	// Create a new CSV reader. Every record must have exactly two fields.
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = tableColumns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	// The first record is the header.
	if len(records) < 2 {
		return nil, errors.New("no data rows")
	}
	data := make([]float64, 0, (len(records)-1)*tableColumns)
	for i, record := range records {
		// Skip the header.
		if i == 0 {
			continue
		}
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", i+1, j+1, err)
			}
			data = append(data, v)
		}
	}
	return mat.NewDense(len(records)-1, tableColumns, data), nil
}

// NewDataset splits a loaded table into the "marks" feature column and the
// labels derived from the raw target column.
func NewDataset(table mat.Matrix) (*Dataset, error) {
	rows, cols := table.Dims()
	if cols != tableColumns {
		return nil, &LoadError{Err: fmt.Errorf("expected %d columns, got %d", tableColumns, cols)}
	}
	records := mat.NewDense(rows, 1, mat.Col(nil, 0, table))
	codes := mat.Col(nil, 1, table)
	targets := make([]string, rows)
	for i, code := range codes {
		targets[i] = TargetLabel(code)
	}
	return &Dataset{
		Records:      records,
		Targets:      targets,
		FeatureNames: []string{featureName},
	}, nil
}

// LoadDataset loads the CSV file at path and builds a Dataset from it.
func LoadDataset(path string) (*Dataset, error) {
	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	ds, err := NewDataset(table)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return ds, nil
}

func distinctLabels(labels ...[]string) []string {
	seen := make(map[string]struct{})
	for _, ls := range labels {
		for _, l := range ls {
			seen[l] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
