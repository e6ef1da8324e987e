package frequency

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-htr/dsp/window"
)

var (
	// ErrEmptySignal is returned for zero-length input.
	ErrEmptySignal = errors.New("frequency: empty signal")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("frequency: invalid sample rate")
)

// Spectrum is a one-sided amplitude spectrum. Magnitude[i] is the peak
// amplitude of a bin-centred tone at Frequency(i), corrected for the
// window's coherent gain.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
}

// BinHz returns the bin spacing.
func (s Spectrum) BinHz() float64 {
	if s.FFTSize == 0 {
		return 0
	}
	return s.SampleRate / float64(s.FFTSize)
}

// Frequency returns the centre frequency of bin i.
func (s Spectrum) Frequency(i int) float64 {
	return float64(i) * s.BinHz()
}

// Option configures [Analyze].
type Option func(*config)

type config struct {
	window  window.Type
	fftSize int
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFFTSize fixes the transform length. Values smaller than the signal
// are rounded up to the next power of two that holds it.
func WithFFTSize(n int) Option {
	return func(c *config) {
		c.fftSize = n
	}
}

// Analyze windows x, zero-pads it to a power of two and returns its
// amplitude spectrum.
func Analyze(x []float64, sampleRate float64, opts ...Option) (Spectrum, error) {
	if len(x) == 0 {
		return Spectrum{}, ErrEmptySignal
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := nextPowerOf2(max(len(x), cfg.fftSize))

	coeffs := window.Generate(cfg.window, len(x), window.WithPeriodic())
	gain := window.CoherentGain(coeffs)
	if gain == 0 {
		return Spectrum{}, fmt.Errorf("frequency: window %v has zero coherent gain", cfg.window)
	}

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("frequency: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("frequency: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	// One-sided amplitude: double every bin except DC and Nyquist.
	scale := 1 / (float64(len(x)) * gain)
	vecmath.ScaleBlockInPlace(mag, 2*scale)
	mag[0] /= 2
	if bins > 1 {
		mag[bins-1] /= 2
	}

	return Spectrum{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Magnitude:  mag,
	}, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
