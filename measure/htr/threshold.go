package htr

import (
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-htr/dsp/core"
)

// Threshold is the output of [EstimateThreshold].
type Threshold struct {
	// StdDev is the N-1 sample standard deviation of the corrected signal.
	StdDev float64
	// Candidate is StdDev times the multiplier.
	Candidate float64
	// Value is min(Candidate, ceiling).
	Value float64
	// Capped reports whether the ceiling was applied.
	Capped bool
}

// EstimateThreshold derives the operating threshold from the dispersion of
// corrected, bounded above by ceiling.
func EstimateThreshold(corrected []float64, multiplier, ceiling float64) (Threshold, error) {
	if len(corrected) < 2 {
		return Threshold{}, &InsufficientDataError{Stage: StageThreshold, Have: len(corrected), Need: 2}
	}

	sd := stat.StdDev(corrected, nil)
	if !core.IsFinite(sd) {
		return Threshold{}, &NumericError{Stage: StageThreshold, Index: -1, Value: sd}
	}

	th := Threshold{
		StdDev:    sd,
		Candidate: sd * multiplier,
	}

	if th.Candidate > ceiling {
		th.Value = ceiling
		th.Capped = true
	} else {
		th.Value = th.Candidate
	}

	return th, nil
}
