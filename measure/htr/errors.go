package htr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them with [errors.Is].
var (
	ErrConfig           = errors.New("htr: invalid config")
	ErrEmptyInput       = errors.New("htr: empty input")
	ErrInsufficientData = errors.New("htr: insufficient data")
	ErrNumeric          = errors.New("htr: non-finite value")
)

// Stage names a pipeline stage.
type Stage string

// Pipeline stages in processing order.
const (
	StageFilter    Stage = "filter"
	StageBaseline  Stage = "baseline"
	StageThreshold Stage = "threshold"
	StageDetect    Stage = "detect"
	StageClassify  Stage = "classify"
)

// ConfigError reports an invalid or physically inconsistent parameter.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("htr: invalid config: %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("htr: invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfig, e.Err}
	}
	return []error{ErrConfig}
}

// EmptyInputError reports a stage that received no samples.
type EmptyInputError struct {
	Stage Stage
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("htr: %s: empty input", e.Stage)
}

func (e *EmptyInputError) Unwrap() error { return ErrEmptyInput }

// InsufficientDataError reports input too short for a statistic.
type InsufficientDataError struct {
	Stage Stage
	Have  int
	Need  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("htr: %s: need at least %d samples, have %d", e.Stage, e.Need, e.Have)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// NumericError reports a NaN or infinite value. Index is the sample
// position, or -1 when the value is an aggregate.
type NumericError struct {
	Stage Stage
	Index int
	Value float64
}

func (e *NumericError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("htr: %s: non-finite value %v", e.Stage, e.Value)
	}
	return fmt.Sprintf("htr: %s: non-finite value %v at sample %d", e.Stage, e.Value, e.Index)
}

func (e *NumericError) Unwrap() error { return ErrNumeric }
