package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sjwhitworth/golearn/evaluation"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ConfusionMatrix counts (true label, predicted label) pairs. Rows of
// Counts are true labels and columns are predicted labels, both in the
// order of Labels.
type ConfusionMatrix struct {
	Labels []string
	Counts *mat.Dense
}

// NewConfusionMatrix compares predicted labels with the ground truth. The
// label set is the sorted union of both slices.
func NewConfusionMatrix(predicted, truth []string) (*ConfusionMatrix, error) {
	if len(predicted) != len(truth) {
		return nil, &EvaluationError{Err: fmt.Errorf("got %d predictions for %d samples", len(predicted), len(truth))}
	}
	if len(truth) == 0 {
		return nil, &EvaluationError{Err: errors.New("no samples to evaluate")}
	}
	labels := distinctLabels(truth, predicted)
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	counts := mat.NewDense(len(labels), len(labels), nil)
	for i := range truth {
		r, c := idx[truth[i]], idx[predicted[i]]
		counts.Set(r, c, counts.At(r, c)+1)
	}
	return &ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// Total returns the number of evaluated samples.
func (cm *ConfusionMatrix) Total() float64 { return mat.Sum(cm.Counts) }

// Accuracy returns the fraction of samples on the diagonal.
func (cm *ConfusionMatrix) Accuracy() float64 {
	return evaluation.GetAccuracy(cm.Golearn())
}

// MCC returns the multi-class Matthews correlation coefficient. It is 0
// when the coefficient is undefined, e.g. when a single label was predicted
// for every sample.
func (cm *ConfusionMatrix) MCC() float64 {
	k := len(cm.Labels)
	truth := make([]float64, k)
	pred := make([]float64, k)
	for i := 0; i < k; i++ {
		truth[i] = floats.Sum(cm.Counts.RawRowView(i))
		pred[i] = mat.Sum(cm.Counts.ColView(i))
	}
	c := mat.Trace(cm.Counts)
	s := cm.Total()

	num := c*s - floats.Dot(pred, truth)
	den := math.Sqrt((s*s - floats.Dot(pred, pred)) * (s*s - floats.Dot(truth, truth)))
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	return num / den
}

// Golearn returns the matrix in golearn's representation, keyed by true
// label then predicted label.
func (cm *ConfusionMatrix) Golearn() evaluation.ConfusionMatrix {
	out := make(evaluation.ConfusionMatrix, len(cm.Labels))
	for i, actual := range cm.Labels {
		out[actual] = make(map[string]int, len(cm.Labels))
		for j, predicted := range cm.Labels {
			out[actual][predicted] = int(cm.Counts.At(i, j))
		}
	}
	return out
}

// Summary returns golearn's per-class precision, recall and F1 table.
func (cm *ConfusionMatrix) Summary() string {
	return evaluation.GetSummary(cm.Golearn())
}

// String renders the matrix with true labels as rows.
func (cm *ConfusionMatrix) String() string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader(append([]string{"true \\ predicted"}, cm.Labels...))
	for i, l := range cm.Labels {
		row := []string{l}
		for _, v := range cm.Counts.RawRowView(i) {
			row = append(row, strconv.Itoa(int(v)))
		}
		table.Append(row)
	}
	table.Render()
	return b.String()
}
