// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package model

import "fmt"

// LogicError signals a violated internal invariant: an assertion-class
// bug in the core rather than a problem with user input. It must never
// be surfaced as a user-facing error; callers should abort the analysis.
type LogicError struct {
	Msg string
}

func (e *LogicError) Error() string { return "logic error: " + e.Msg }

// NewLogicError builds a LogicError with a formatted message.
func NewLogicError(format string, a ...interface{}) *LogicError {
	return &LogicError{Msg: fmt.Sprintf(format, a...)}
}

// ValidityError signals that a model fails syntactic or semantic
// validation (cycles, undefined references, probabilities out of
// [0,1], ATLEAST with a bad k). It carries a source location when one
// is known.
type ValidityError struct {
	Msg      string
	Location string
}

func (e *ValidityError) Error() string {
	if e.Location == "" {
		return "validity error: " + e.Msg
	}
	return fmt.Sprintf("validity error at %s: %s", e.Location, e.Msg)
}

// NewValidityError builds a ValidityError without a source location.
func NewValidityError(format string, a ...interface{}) *ValidityError {
	return &ValidityError{Msg: fmt.Sprintf(format, a...)}
}

// NewValidityErrorAt builds a ValidityError with a source location.
func NewValidityErrorAt(location, format string, a ...interface{}) *ValidityError {
	return &ValidityError{Msg: fmt.Sprintf(format, a...), Location: location}
}

// IOError wraps a failure to read or write a file, or to validate a
// document against a schema.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error on %s: %s", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err with the path that triggered it.
func NewIOError(path string, err error) *IOError {
	return &IOError{Path: path, Err: err}
}

// AnalysisError signals exhaustion of a cutoff where the result would be
// unsound, or a numerical problem while sampling a distribution.
type AnalysisError struct {
	Msg string
}

func (e *AnalysisError) Error() string { return "analysis error: " + e.Msg }

// NewAnalysisError builds an AnalysisError with a formatted message.
func NewAnalysisError(format string, a ...interface{}) *AnalysisError {
	return &AnalysisError{Msg: fmt.Sprintf(format, a...)}
}

// Cancelled signals that cooperative cancellation was observed. Callers
// must discard partial results and surface this as a terminal state.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "analysis cancelled" }

// Warning is not an error: it records a condition the caller should
// know about (a clamped approximation, a cutoff truncation, a
// simplified PFH) without aborting the analysis. Warnings accumulate on
// the final report instead of propagating as errors.
type Warning struct {
	Kind    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Warning kinds used across the engines.
const (
	WarnClampedProbability = "clamped-probability"
	WarnCutoffTruncated    = "cutoff-truncated"
	WarnApproximatePFH     = "approximate-pfh"
	WarnNonCoherentMCUB    = "non-coherent-mcub"
)
