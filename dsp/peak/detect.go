package peak

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Peak is a retained local maximum of the input.
type Peak struct {
	Index     int
	Magnitude float64
	// Start is the first index of the above-boundary run containing Index.
	Start int
	// Width is the length of that run in samples.
	Width int
}

// Result is the output of one [Detect] run.
type Result struct {
	// Signals holds one classification per input sample.
	Signals []Signal
	// Boundary holds the upper boundary each sample was compared against;
	// NaN during warm-up.
	Boundary []float64
	// Candidates are the raw run maxima before width and distance rules.
	Candidates []Peak
	// Peaks are the retained peaks in strictly increasing index order.
	Peaks []Peak
}

// Detect runs the detector over x and applies the width and distance rules.
// An empty input yields an empty result.
func Detect(x []float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	if len(x) == 0 {
		return Result{}, nil
	}

	var signals []Signal
	var boundary []float64

	if cfg.Lag == 0 {
		signals, boundary = classifyGlobal(x, cfg)
	} else {
		d, err := NewDetector(cfg)
		if err != nil {
			return Result{}, err
		}

		signals = make([]Signal, len(x))
		boundary = make([]float64, len(x))
		for i, v := range x {
			signals[i], boundary[i] = d.Update(v)
		}
		d.Finish()
	}

	candidates := Candidates(x, signals)
	peaks := EnforceDistance(FilterWidth(candidates, cfg.MinWidth), cfg.MinDistance)

	return Result{
		Signals:    signals,
		Boundary:   boundary,
		Candidates: candidates,
		Peaks:      peaks,
	}, nil
}

func classifyGlobal(x []float64, cfg Config) ([]Signal, []float64) {
	signals := make([]Signal, len(x))
	boundary := make([]float64, len(x))

	mean, std := stat.MeanStdDev(x, nil)
	if len(x) < 2 {
		std = 0
	}

	dev := cfg.deviation(std)
	for i, v := range x {
		boundary[i] = mean + dev
		switch {
		case math.Abs(v-mean) <= dev:
		case v > mean:
			signals[i] = SignalAbove
		default:
			signals[i] = SignalBelow
		}
	}

	return signals, boundary
}

// Candidates returns one peak per maximal run of [SignalAbove] samples,
// located at the run maximum (earliest index on ties).
func Candidates(x []float64, signals []Signal) []Peak {
	var out []Peak

	for i := 0; i < len(signals); {
		if signals[i] != SignalAbove {
			i++
			continue
		}

		p := Peak{Index: i, Magnitude: x[i], Start: i}
		j := i + 1
		for ; j < len(signals) && signals[j] == SignalAbove; j++ {
			if x[j] > p.Magnitude {
				p.Index = j
				p.Magnitude = x[j]
			}
		}
		p.Width = j - i

		out = append(out, p)
		i = j
	}

	return out
}

// FilterWidth keeps peaks whose run is at least minWidth samples long.
func FilterWidth(peaks []Peak, minWidth int) []Peak {
	out := make([]Peak, 0, len(peaks))
	for _, p := range peaks {
		if p.Width >= minWidth {
			out = append(out, p)
		}
	}

	return out
}

// EnforceDistance makes a single left-to-right pass over index-ordered
// peaks. A peak closer than minDistance to the last retained peak replaces
// it only if its magnitude is strictly larger.
func EnforceDistance(peaks []Peak, minDistance int) []Peak {
	out := make([]Peak, 0, len(peaks))
	for _, p := range peaks {
		n := len(out)
		if n == 0 || p.Index-out[n-1].Index >= minDistance {
			out = append(out, p)
			continue
		}

		if p.Magnitude > out[n-1].Magnitude {
			out[n-1] = p
		}
	}

	return out
}
