package htr

import (
	"context"
	"math"

	"github.com/cwbudde/algo-htr/dsp/core"
	"github.com/cwbudde/algo-htr/dsp/filter/biquad"
	"github.com/cwbudde/algo-htr/dsp/filter/design"
)

// cancelCheckInterval is the number of samples filtered between context checks.
const cancelCheckInterval = 4096

// settleSpan bounds the impulse response inspected by [Filter.Response].
const settleSpan = 8192

// settleLevel is the impulse response level, relative to its peak, below
// which the section counts as settled.
const settleLevel = 1e-3

// Filter is the causal band-limiting stage: one Butterworth low-pass
// section. Each call to Run starts from zero state, so a Filter can be
// shared between goroutines.
type Filter struct {
	coeffs     biquad.Coefficients
	cutoffHz   float64
	sampleRate float64
}

// NewFilter designs the low-pass section for cutoffHz at sampleRate.
func NewFilter(cutoffHz, sampleRate float64) (*Filter, error) {
	c, err := design.ButterworthLowpass(cutoffHz, sampleRate)
	if err != nil {
		return nil, &ConfigError{Field: "cutoff_hz", Reason: "cannot design low-pass section", Err: err}
	}

	return &Filter{coeffs: c, cutoffHz: cutoffHz, sampleRate: sampleRate}, nil
}

// Coefficients returns the designed section coefficients.
func (f *Filter) Coefficients() biquad.Coefficients {
	return f.coeffs
}

// Response describes the designed section.
type Response struct {
	// DCGain is the steady-state gain for a constant input.
	DCGain float64
	// CutoffGain is |H| at the cutoff frequency, 1/sqrt(2) for Butterworth.
	CutoffGain float64
	// CutoffGainDB is CutoffGain in decibels, about -3 dB.
	CutoffGainDB float64
	// CutoffPhase is the phase at the cutoff frequency in radians.
	CutoffPhase float64
	// SettlingSamples is the length of the impulse response until it stays
	// below 1e-3 of its peak. It is capped at 8192.
	SettlingSamples int
}

// Response evaluates the section at DC and at the cutoff and measures how
// long its impulse response rings.
func (f *Filter) Response() Response {
	ir := f.coeffs.ImpulseResponse(settleSpan)

	var top float64
	for _, v := range ir {
		top = max(top, math.Abs(v))
	}

	settle := 0
	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) > settleLevel*top {
			settle = i + 1
			break
		}
	}

	return Response{
		DCGain:          f.coeffs.DCGain(),
		CutoffGain:      f.coeffs.Magnitude(f.cutoffHz, f.sampleRate),
		CutoffGainDB:    f.coeffs.MagnitudeDB(f.cutoffHz, f.sampleRate),
		CutoffPhase:     f.coeffs.Phase(f.cutoffHz, f.sampleRate),
		SettlingSamples: settle,
	}
}

// Run filters in and returns a new slice of the same length. The first
// non-finite input or output sample aborts the run with a *NumericError.
func (f *Filter) Run(ctx context.Context, in []float64) ([]float64, error) {
	return f.RunTo(ctx, nil, in)
}

// RunTo is like Run but writes into dst, reusing its capacity. dst may
// alias in.
func (f *Filter) RunTo(ctx context.Context, dst, in []float64) ([]float64, error) {
	dst = core.EnsureLen(dst, len(in))
	if dst == nil {
		dst = []float64{}
	}

	s := biquad.NewSection(f.coeffs)
	for start := 0; start < len(in); start += cancelCheckInterval {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		block := in[start:min(start+cancelCheckInterval, len(in))]
		bad := core.FirstNonFinite(block)
		if bad >= 0 {
			block = block[:bad]
		}

		out := dst[start : start+len(block)]
		s.ProcessBlockTo(out, block)
		if i := core.FirstNonFinite(out); i >= 0 {
			return nil, &NumericError{Stage: StageFilter, Index: start + i, Value: out[i]}
		}

		if bad >= 0 {
			return nil, &NumericError{Stage: StageFilter, Index: start + bad, Value: in[start+bad]}
		}
	}

	return dst, nil
}
