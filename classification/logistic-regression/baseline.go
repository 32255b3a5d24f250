package main

import (
	"fmt"
	"math"

	"github.com/sajari/regression"
	"gonum.org/v1/gonum/mat"
)

// targetCodes are the raw codes that have a label of their own, plus 0 for
// "fail".
var targetCodes = []float64{0, 0.5, 1}

// Baseline is an ordinary least squares line through the raw target codes.
// Its predictions are snapped to the nearest target code before being
// labelled, which gives a reference accuracy for the classifier.
type Baseline struct {
	r regression.Regression
}

// FitBaseline regresses the raw target code on marks. Labels are turned
// back into codes since the Dataset only keeps labels.
func FitBaseline(ds *Dataset) (*Baseline, error) {
	var b Baseline
	b.r.SetObserved("result")
	b.r.SetVar(0, featureName)
	for i, label := range ds.Targets {
		b.r.Train(regression.DataPoint(labelCode(label), []float64{ds.Records.At(i, 0)}))
	}
	// Train/fit the regression model.
	if err := b.r.Run(); err != nil {
		return nil, &FitError{Err: fmt.Errorf("baseline: %w", err)}
	}
	return &b, nil
}

// Formula returns the fitted line.
func (b *Baseline) Formula() string { return b.r.Formula }

// Predict labels every row of records.
func (b *Baseline) Predict(records mat.Matrix) ([]string, error) {
	n, d := records.Dims()
	if d != 1 {
		return nil, fmt.Errorf("baseline expects 1 feature column, got %d", d)
	}
	labels := make([]string, n)
	for i := range labels {
		y, err := b.r.Predict([]float64{records.At(i, 0)})
		if err != nil {
			return nil, err
		}
		labels[i] = TargetLabel(nearestCode(y))
	}
	return labels, nil
}

func nearestCode(y float64) float64 {
	best := targetCodes[0]
	for _, c := range targetCodes[1:] {
		if math.Abs(y-c) < math.Abs(y-best) {
			best = c
		}
	}
	return best
}

func labelCode(label string) float64 {
	switch label {
	case LabelPass:
		return 1
	case LabelHalf:
		return 0.5
	default:
		return 0
	}
}
