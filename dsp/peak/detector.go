package peak

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidConfig is returned by [Config.Validate] for unusable parameters.
var ErrInvalidConfig = errors.New("peak: invalid config")

// Signal classifies one sample relative to the adaptive boundary.
type Signal int8

const (
	// SignalBelow marks a sample more than the boundary deviation below the window mean.
	SignalBelow Signal = -1
	// SignalNone marks a sample inside the boundary, or one seen during warm-up.
	SignalNone Signal = 0
	// SignalAbove marks a sample more than the boundary deviation above the window mean.
	SignalAbove Signal = 1
)

// String returns a short name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalBelow:
		return "below"
	case SignalNone:
		return "none"
	case SignalAbove:
		return "above"
	default:
		return fmt.Sprintf("Signal(%d)", int8(s))
	}
}

// Phase is the run state of a [Detector].
type Phase int

const (
	// PhaseScanning accepts samples.
	PhaseScanning Phase = iota
	// PhaseDone rejects further samples.
	PhaseDone
)

// Config holds detector parameters. Distances and widths are in samples.
type Config struct {
	// Lag is the sliding window length. Zero selects global statistics
	// over the whole input in [Detect]; otherwise it must be at least 2.
	Lag int
	// Threshold is the z-score multiplier applied to the window deviation.
	Threshold float64
	// Influence in [0, 1] scales flagged samples before they enter the window.
	Influence float64
	// Ceiling caps Threshold*stddev. Values <= 0 disable the cap.
	Ceiling float64
	// MinDistance is the minimum index gap between retained peaks.
	MinDistance int
	// MinWidth is the minimum above-boundary run length of a retained peak.
	MinWidth int
}

// DefaultConfig returns a 30-sample window with zero influence.
func DefaultConfig() Config {
	return Config{
		Lag:         30,
		Threshold:   3.5,
		Influence:   0,
		MinDistance: 1,
		MinWidth:    1,
	}
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Lag < 0 || c.Lag == 1:
		return fmt.Errorf("%w: lag must be 0 or >= 2: %d", ErrInvalidConfig, c.Lag)
	case !(c.Threshold > 0) || math.IsInf(c.Threshold, 0):
		return fmt.Errorf("%w: threshold must be positive and finite: %v", ErrInvalidConfig, c.Threshold)
	case !(c.Influence >= 0 && c.Influence <= 1):
		return fmt.Errorf("%w: influence must be in [0, 1]: %v", ErrInvalidConfig, c.Influence)
	case math.IsNaN(c.Ceiling):
		return fmt.Errorf("%w: ceiling is NaN", ErrInvalidConfig)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min distance must be >= 0: %d", ErrInvalidConfig, c.MinDistance)
	case c.MinWidth < 0:
		return fmt.Errorf("%w: min width must be >= 0: %d", ErrInvalidConfig, c.MinWidth)
	}

	return nil
}

// deviation returns the boundary half-width for a window deviation.
func (c Config) deviation(std float64) float64 {
	dev := c.Threshold * std
	if c.Ceiling > 0 && dev > c.Ceiling {
		return c.Ceiling
	}

	return dev
}

// Detector is the streaming form of the smoothed z-score algorithm. It is
// not safe for concurrent use.
type Detector struct {
	cfg    Config
	window []float64
	next   int
	filled int
	last   float64
	phase  Phase
}

// NewDetector returns a detector in [PhaseScanning]. cfg.Lag must be >= 2.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Lag == 0 {
		return nil, fmt.Errorf("%w: streaming detector needs lag >= 2", ErrInvalidConfig)
	}

	return &Detector{
		cfg:    cfg,
		window: make([]float64, cfg.Lag),
	}, nil
}

// Phase returns the current run state.
func (d *Detector) Phase() Phase {
	return d.phase
}

// Update classifies x and returns the signal together with the upper
// boundary (window mean plus deviation) x was compared against. During
// warm-up the boundary is NaN. Update panics after [Detector.Finish].
func (d *Detector) Update(x float64) (Signal, float64) {
	if d.phase == PhaseDone {
		panic("peak: Update called on finished detector")
	}

	if d.filled < len(d.window) {
		d.push(x)
		return SignalNone, math.NaN()
	}

	mean, std := stat.MeanStdDev(d.window, nil)
	dev := d.cfg.deviation(std)
	boundary := mean + dev

	if math.Abs(x-mean) <= dev {
		d.push(x)
		return SignalNone, boundary
	}

	d.push(d.cfg.Influence*x + (1-d.cfg.Influence)*d.last)

	if x > mean {
		return SignalAbove, boundary
	}

	return SignalBelow, boundary
}

// Finish moves the detector to [PhaseDone].
func (d *Detector) Finish() {
	d.phase = PhaseDone
}

func (d *Detector) push(v float64) {
	d.window[d.next] = v
	d.next = (d.next + 1) % len(d.window)
	if d.filled < len(d.window) {
		d.filled++
	}

	d.last = v
}
