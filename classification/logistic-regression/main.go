package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/mat"
)

// main is the entry point of the program. It performs the following tasks:
// 1. Loads the training and test datasets from CSV files.
// 2. Reports the number of samples, features and target classes.
// 3. Fits a multinomial logistic regression on the training data.
// 4. Predicts the test data and prints the confusion matrix, accuracy and MCC.
// 5. Classifies one ad hoc value of marks.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func run(cfg config, w io.Writer) error {
	// Load the training and test datasets.
	train, err := LoadDataset(cfg.TrainPath)
	if err != nil {
		return err
	}
	test, err := LoadDataset(cfg.TestPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "training with %d samples, testing with %d samples, %d features and %d target classes\n",
		train.NSamples(), test.NSamples(), train.NFeatures(), train.NClasses())

	if cfg.Describe {
		fmt.Fprintln(w, Describe(train))
	}

	// Train the model.
	model, err := Fit(train, cfg.Options)
	if err != nil {
		return err
	}
	slog.Debug("model fitted", "classes", model.Classes(), "iterations", model.Iterations(), "status", model.Status().String())

	// Make predictions on the test data.
	pred, err := model.Predict(test.Records)
	if err != nil {
		return &EvaluationError{Err: err}
	}
	// Generate a confusion matrix.
	cm, err := NewConfusionMatrix(pred, test.Targets)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nConfusion matrix\n%s", cm)
	fmt.Fprintf(w, "accuracy %.4f, MCC %.4f\n\n", cm.Accuracy(), cm.MCC())
	fmt.Fprintln(w, cm.Summary())

	if cfg.Baseline {
		if err := reportBaseline(w, train, test); err != nil {
			return err
		}
	}
	if cfg.Curve || cfg.PlotPath != "" {
		if err := reportCurves(w, cfg, model, train); err != nil {
			return err
		}
	}

	// Classify one ad hoc row. The target code is a placeholder and is
	// discarded by the dataset builder.
	adHoc, err := NewDataset(mat.NewDense(1, tableColumns, []float64{cfg.Marks, 0.0}))
	if err != nil {
		return err
	}
	label, err := model.Predict(adHoc.Records)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "prediction for %s = %g: %s\n", featureName, cfg.Marks, label[0])
	return nil
}

func reportBaseline(w io.Writer, train, test *Dataset) error {
	b, err := FitBaseline(train)
	if err != nil {
		return err
	}
	pred, err := b.Predict(test.Records)
	if err != nil {
		return &EvaluationError{Err: err}
	}
	cm, err := NewConfusionMatrix(pred, test.Targets)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Baseline %s\naccuracy %.4f, MCC %.4f\n\n", b.Formula(), cm.Accuracy(), cm.MCC())
	return nil
}

func reportCurves(w io.Writer, cfg config, model *Model, train *Dataset) error {
	marks, curves, err := ProbabilityCurves(model, train, curvePoints)
	if err != nil {
		return err
	}
	if cfg.Curve {
		fmt.Fprint(w, AsciiCurves(model.Classes(), marks, curves))
	}
	if cfg.PlotPath != "" {
		if err := SavePlot(cfg.PlotPath, model.Classes(), marks, curves); err != nil {
			return fmt.Errorf("save plot: %w", err)
		}
		fmt.Fprintf(w, "saved probability curves to %s\n\n", cfg.PlotPath)
	}
	return nil
}
