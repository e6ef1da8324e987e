package htr

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-htr/dsp/core"
)

// Baseline is the output of [CorrectBaseline].
type Baseline struct {
	Mean      float64
	Corrected []float64 // filtered - Mean
	Rectified []float64 // |Corrected|
}

// CorrectBaseline subtracts the arithmetic mean of filtered and rectifies
// the result. The input is not modified.
func CorrectBaseline(filtered []float64) (Baseline, error) {
	if len(filtered) == 0 {
		return Baseline{}, &EmptyInputError{Stage: StageBaseline}
	}

	if i := core.FirstNonFinite(filtered); i >= 0 {
		return Baseline{}, &NumericError{Stage: StageBaseline, Index: i, Value: filtered[i]}
	}

	mean := stat.Mean(filtered, nil)
	if !core.IsFinite(mean) {
		return Baseline{}, &NumericError{Stage: StageBaseline, Index: -1, Value: mean}
	}

	corrected := core.Clone(filtered)
	floats.AddConst(-mean, corrected)

	rectified := make([]float64, len(corrected))
	for i, v := range corrected {
		rectified[i] = math.Abs(v)
	}

	return Baseline{
		Mean:      mean,
		Corrected: corrected,
		Rectified: rectified,
	}, nil
}
