package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-htr/dsp/filter/biquad"
)

// ButterworthQ is the quality factor of a second-order Butterworth section.
const ButterworthQ = 1 / math.Sqrt2

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("design: sample rate must be positive and finite")
	// ErrFrequencyOutOfRange is returned when a corner frequency is not
	// strictly between 0 and Nyquist.
	ErrFrequencyOutOfRange = errors.New("design: frequency must be in (0, nyquist)")
	// ErrInvalidQ is returned for non-positive or non-finite quality factors.
	ErrInvalidQ = errors.New("design: q must be positive and finite")
)

// Lowpass designs an RBJ cookbook low-pass biquad at freq (Hz) with quality
// factor q.
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: %v", ErrInvalidQ, q)
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

// ButterworthLowpass designs a second-order Butterworth low-pass section.
func ButterworthLowpass(freq, sampleRate float64) (biquad.Coefficients, error) {
	return Lowpass(freq, ButterworthQ, sampleRate)
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, fmt.Errorf("%w: %v Hz (nyquist %v Hz)", ErrFrequencyOutOfRange, freq, nyquist)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
