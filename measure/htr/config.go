package htr

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-htr/dsp/core"
)

// Config holds the pipeline parameters. Distances and widths are in samples.
type Config struct {
	core.ProcessorConfig

	// CutoffHz is the low-pass corner frequency; it must be below Nyquist.
	CutoffHz float64
	// StdDevMultiplier (nSD) scales the signal dispersion into a threshold
	// and is the z-score multiplier of the peak detector.
	StdDevMultiplier float64
	// TopThreshold (Ttv) is the ceiling on the resolved threshold.
	TopThreshold float64
	// MinEventDistance (mpd) is the refractory window between retained
	// peaks and the fractionation window of the classifier.
	MinEventDistance int
	// MinEventWidth (Mpw) is the minimum sustained-exceedance run length.
	MinEventWidth int
	// FractionationWindow is the classifier gap limit. Zero uses
	// MinEventDistance.
	FractionationWindow int
	// DetectorLag is the z-score window length; 0 selects global statistics.
	DetectorLag int
	// Influence in [0, 1] weights flagged samples in the detector window.
	Influence float64
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig:  core.DefaultProcessorConfig(),
		CutoffHz:         5,
		StdDevMultiplier: 15,
		TopThreshold:     0.075,
		MinEventDistance: 200,
		MinEventWidth:    90,
		DetectorLag:      30,
		Influence:        0,
	}
}

// Nyquist returns half the sample rate.
func (c Config) Nyquist() float64 {
	return c.SampleRate / 2
}

// Validate checks every parameter and returns a *ConfigError for the first
// violation.
func (c Config) Validate() error {
	if !positiveFinite(c.SampleRate) {
		return &ConfigError{Field: "sample_rate_hz", Reason: fmt.Sprintf("must be positive and finite, got %v", c.SampleRate)}
	}

	if !positiveFinite(c.CutoffHz) {
		return &ConfigError{Field: "cutoff_hz", Reason: fmt.Sprintf("must be positive and finite, got %v", c.CutoffHz)}
	}

	if c.CutoffHz >= c.Nyquist() {
		return &ConfigError{Field: "cutoff_hz", Reason: fmt.Sprintf("%v Hz is not below nyquist %v Hz", c.CutoffHz, c.Nyquist())}
	}

	if !positiveFinite(c.StdDevMultiplier) {
		return &ConfigError{Field: "std_dev_multiplier", Reason: fmt.Sprintf("must be positive and finite, got %v", c.StdDevMultiplier)}
	}

	if !positiveFinite(c.TopThreshold) {
		return &ConfigError{Field: "top_threshold", Reason: fmt.Sprintf("must be positive and finite, got %v", c.TopThreshold)}
	}

	if c.MinEventDistance <= 0 {
		return &ConfigError{Field: "min_event_distance", Reason: fmt.Sprintf("must be positive, got %d", c.MinEventDistance)}
	}

	if c.MinEventWidth <= 0 {
		return &ConfigError{Field: "min_event_width", Reason: fmt.Sprintf("must be positive, got %d", c.MinEventWidth)}
	}

	if c.FractionationWindow < 0 {
		return &ConfigError{Field: "fractionation_window", Reason: fmt.Sprintf("must be >= 0, got %d", c.FractionationWindow)}
	}

	if c.DetectorLag < 0 || c.DetectorLag == 1 {
		return &ConfigError{Field: "detector_lag", Reason: fmt.Sprintf("must be 0 or >= 2, got %d", c.DetectorLag)}
	}

	if !(c.Influence >= 0 && c.Influence <= 1) {
		return &ConfigError{Field: "influence", Reason: fmt.Sprintf("must be in [0, 1], got %v", c.Influence)}
	}

	return nil
}

// ClassifierWindow returns the gap limit used by [Classify].
func (c Config) ClassifierWindow() int {
	if c.FractionationWindow > 0 {
		return c.FractionationWindow
	}
	return c.MinEventDistance
}

// SamplesFromSeconds converts a duration in seconds to the nearest sample
// count at sampleRate.
func SamplesFromSeconds(seconds, sampleRate float64) int {
	return int(math.Round(seconds * sampleRate))
}

func positiveFinite(x float64) bool {
	return x > 0 && core.IsFinite(x)
}
