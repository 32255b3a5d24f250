package main

import (
	"errors"
	"fmt"
)

// Exit codes for the different failure modes.
const (
	ExitSuccess         = 0
	ExitError           = 1 // flags, plotting and anything else
	ExitLoadError       = 2
	ExitFitError        = 3
	ExitEvaluationError = 4
)

// LoadError is returned when a CSV file cannot be turned into a dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FitError is returned when the optimizer does not produce a usable model.
type FitError struct {
	Err error
}

func (e *FitError) Error() string { return fmt.Sprintf("cannot train model: %v", e.Err) }

func (e *FitError) Unwrap() error { return e.Err }

// EvaluationError is returned when predictions cannot be compared to the
// ground truth.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string { return fmt.Sprintf("evaluate model: %v", e.Err) }

func (e *EvaluationError) Unwrap() error { return e.Err }

// exitCode maps an error returned by the command to a process exit code.
func exitCode(err error) int {
	var (
		loadErr *LoadError
		fitErr  *FitError
		evalErr *EvaluationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &loadErr):
		return ExitLoadError
	case errors.As(err, &fitErr):
		return ExitFitError
	case errors.As(err, &evalErr):
		return ExitEvaluationError
	default:
		return ExitError
	}
}
