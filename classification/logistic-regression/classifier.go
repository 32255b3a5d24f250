package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Options configures the multinomial logistic regression fit.
type Options struct {
	// MaxIterations caps the number of major L-BFGS iterations.
	MaxIterations int
	// Alpha is the L2 penalty on the weights. Intercepts are not penalized.
	Alpha float64
	// GradientTolerance is the infinity norm of the gradient at which the
	// fit is considered converged.
	GradientTolerance float64
}

// DefaultOptions returns the options used by the command.
func DefaultOptions() Options {
	return Options{
		MaxIterations:     1000,
		Alpha:             1.0,
		GradientTolerance: 1e-4,
	}
}

// Model is a fitted multinomial logistic regression.
type Model struct {
	classes   []string
	nFeatures int
	// params is (nFeatures+1) x len(classes); the last row holds the intercepts.
	params *mat.Dense
	result *optimize.Result
}

// Fit trains a multinomial logistic regression on ds by minimizing the
// penalized negative log-likelihood of the softmax model.
func Fit(ds *Dataset, opts Options) (*Model, error) {
	if opts.MaxIterations <= 0 {
		return nil, &FitError{Err: fmt.Errorf("max iterations must be positive, got %d", opts.MaxIterations)}
	}
	if ds.NSamples() == 0 {
		return nil, &FitError{Err: errors.New("empty training dataset")}
	}
	classes := ds.Classes()
	if len(classes) < 2 {
		return nil, &FitError{Err: fmt.Errorf("need at least two target classes, got %v", classes)}
	}

	n, d := ds.Records.Dims()
	k := len(classes)
	p := d + 1

	// Map every sample to the column of its class.
	classIdx := make(map[string]int, k)
	for i, c := range classes {
		classIdx[c] = i
	}
	targets := make([]int, n)
	for i, t := range ds.Targets {
		targets[i] = classIdx[t]
	}

	xa := withIntercept(ds.Records)
	scores := mat.NewDense(n, k, nil)
	resid := mat.NewDense(n, k, nil)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			scores.Mul(xa, mat.NewDense(p, k, x))
			var loss float64
			for i := 0; i < n; i++ {
				row := scores.RawRowView(i)
				loss += floats.LogSumExp(row) - row[targets[i]]
			}
			w := x[:d*k]
			return loss + 0.5*opts.Alpha*floats.Dot(w, w)
		},
		Grad: func(grad, x []float64) {
			scores.Mul(xa, mat.NewDense(p, k, x))
			for i := 0; i < n; i++ {
				r := resid.RawRowView(i)
				softmax(r, scores.RawRowView(i))
				r[targets[i]] -= 1
			}
			g := mat.NewDense(p, k, grad)
			g.Mul(xa.T(), resid)
			floats.AddScaled(grad[:d*k], opts.Alpha, x[:d*k])
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   opts.MaxIterations,
		GradientThreshold: opts.GradientTolerance,
		Converger:         &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 100},
	}

	result, err := optimize.Minimize(problem, make([]float64, p*k), settings, &optimize.LBFGS{})
	if err != nil {
		return nil, &FitError{Err: fmt.Errorf("optimizer: %w", err)}
	}
	slog.Debug("fit finished",
		"status", result.Status.String(),
		"iterations", result.MajorIterations,
		"funcEvaluations", result.FuncEvaluations,
		"loss", result.F)
	if result.Status == optimize.IterationLimit {
		return nil, &FitError{Err: fmt.Errorf("no convergence within %d iterations", opts.MaxIterations)}
	}
	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &FitError{Err: errors.New("optimizer produced non-finite parameters")}
		}
	}

	return &Model{
		classes:   classes,
		nFeatures: d,
		params:    mat.NewDense(p, k, result.X),
		result:    result,
	}, nil
}

// Classes returns the labels the model can predict, in sorted order.
func (m *Model) Classes() []string {
	return append([]string(nil), m.classes...)
}

// Iterations returns the number of major iterations the fit took.
func (m *Model) Iterations() int { return m.result.MajorIterations }

// Status returns the optimizer termination status.
func (m *Model) Status() optimize.Status { return m.result.Status }

// PredictProba returns the class probabilities of every row of records as
// an (rows, classes) matrix. Columns follow Classes.
func (m *Model) PredictProba(records mat.Matrix) (*mat.Dense, error) {
	n, d := records.Dims()
	if d != m.nFeatures {
		return nil, fmt.Errorf("model expects %d feature columns, got %d", m.nFeatures, d)
	}
	k := len(m.classes)
	scores := mat.NewDense(n, k, nil)
	scores.Mul(records, m.params.Slice(0, d, 0, k))
	intercepts := m.params.RawRowView(d)
	proba := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		row := scores.RawRowView(i)
		floats.Add(row, intercepts)
		softmax(proba.RawRowView(i), row)
	}
	return proba, nil
}

// Predict returns the most probable label of every row of records. Ties go
// to the first class in sorted order.
func (m *Model) Predict(records mat.Matrix) ([]string, error) {
	proba, err := m.PredictProba(records)
	if err != nil {
		return nil, err
	}
	n, _ := proba.Dims()
	labels := make([]string, n)
	for i := range labels {
		labels[i] = m.classes[floats.MaxIdx(proba.RawRowView(i))]
	}
	return labels, nil
}

// withIntercept returns records with a trailing column of ones.
func withIntercept(records mat.Matrix) *mat.Dense {
	n, d := records.Dims()
	xa := mat.NewDense(n, d+1, nil)
	xa.Slice(0, n, 0, d).(*mat.Dense).Copy(records)
	for i := 0; i < n; i++ {
		xa.Set(i, d, 1)
	}
	return xa
}

// softmax writes the normalized exponentials of scores into dst.
func softmax(dst, scores []float64) {
	lse := floats.LogSumExp(scores)
	for j, s := range scores {
		dst[j] = math.Exp(s - lse)
	}
}
