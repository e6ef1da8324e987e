package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-htr/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return c.Magnitude(freq, sr)
}

func TestButterworthLowpass_ResponseShape(t *testing.T) {
	tests := []struct {
		name   string
		cutoff float64
		sr     float64
	}{
		{"audio", 1000, 48000},
		{"reference", 5, 15},
		{"low rate", 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ButterworthLowpass(tt.cutoff, tt.sr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(c.DCGain(), 1, tol) {
				t.Errorf("DC gain = %v, want 1", c.DCGain())
			}
			if db := c.MagnitudeDB(tt.cutoff, tt.sr); !almostEqual(db, -10*math.Log10(2), 1e-6) {
				t.Errorf("gain at cutoff = %v dB, want -3.01 dB", db)
			}
			if m := mag(c, tt.sr/2*0.999, tt.sr); m > 0.01 {
				t.Errorf("near-nyquist magnitude = %v, want < 0.01", m)
			}
		})
	}
}

func TestButterworthLowpass_MonotonicAttenuation(t *testing.T) {
	sr := 200.0
	c, err := ButterworthLowpass(20, sr)
	if err != nil {
		t.Fatal(err)
	}
	prev := math.Inf(1)
	for f := 1.0; f < sr/2; f += 1 {
		m := mag(c, f, sr)
		if m > prev+1e-12 {
			t.Fatalf("magnitude rose at %v Hz: %v > %v", f, m, prev)
		}
		prev = m
	}
}

func TestLowpass_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		q    float64
		sr   float64
		want error
	}{
		{"at nyquist", 7.5, ButterworthQ, 15, ErrFrequencyOutOfRange},
		{"above nyquist", 1000, ButterworthQ, 15, ErrFrequencyOutOfRange},
		{"zero freq", 0, ButterworthQ, 15, ErrFrequencyOutOfRange},
		{"nan freq", math.NaN(), ButterworthQ, 15, ErrFrequencyOutOfRange},
		{"zero rate", 1, ButterworthQ, 0, ErrInvalidSampleRate},
		{"inf rate", 1, ButterworthQ, math.Inf(1), ErrInvalidSampleRate},
		{"zero q", 1, 0, 15, ErrInvalidQ},
		{"negative q", 1, -1, 15, ErrInvalidQ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Lowpass(tt.freq, tt.q, tt.sr)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if c != (biquad.Coefficients{}) {
				t.Fatalf("coefficients = %+v, want zero value", c)
			}
		})
	}
}

func TestLowpass_StablePoles(t *testing.T) {
	for _, q := range []float64{0.5, ButterworthQ, 2, 10} {
		c, err := Lowpass(3, q, 15)
		if err != nil {
			t.Fatal(err)
		}
		// Stability triangle for a second-order denominator.
		if !(math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2) {
			t.Errorf("q=%v: unstable coefficients %+v", q, c)
		}
	}
}
