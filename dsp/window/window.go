package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

var names = map[Type]string{
	TypeRectangular: "Rectangular",
	TypeHann:        "Hann",
	TypeHamming:     "Hamming",
	TypeBlackman:    "Blackman",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "Unknown"
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// yield a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	for i := range out {
		x := 2 * math.Pi * float64(i) / den
		switch t {
		case TypeHann:
			out[i] = 0.5 - 0.5*math.Cos(x)
		case TypeHamming:
			out[i] = 0.54 - 0.46*math.Cos(x)
		case TypeBlackman:
			out[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		default:
			out[i] = 1
		}
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// CoherentGain returns the mean of coeffs, the amplitude factor a window
// applies to a bin-centred tone. It returns 0 for empty input.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return vecmath.Sum(coeffs) / float64(len(coeffs))
}
