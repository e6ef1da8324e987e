package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Plateau returns a zero signal with value written to [start, start+width).
func Plateau(length, start, width int, value float64) []float64 {
	out := make([]float64, length)
	for i := start; i < start+width && i < length; i++ {
		if i >= 0 {
			out[i] = value
		}
	}
	return out
}

// HannPulses adds a Hann-shaped unipolar pulse of the given width and
// amplitude at every start position of base, in place, and returns base.
func HannPulses(base []float64, starts []int, width int, amplitude float64) []float64 {
	if width < 2 {
		return base
	}
	for _, s := range starts {
		for k := range width {
			i := s + k
			if i < 0 || i >= len(base) {
				continue
			}
			base[i] += amplitude * 0.5 * (1 - math.Cos(2*math.Pi*float64(k)/float64(width-1)))
		}
	}
	return base
}

// PeakAbs returns the largest absolute value in x.
func PeakAbs(x []float64) float64 {
	var m float64
	for _, v := range x {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
