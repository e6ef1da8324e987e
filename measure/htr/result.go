package htr

import (
	"github.com/cwbudde/algo-htr/dsp/core"
	"github.com/cwbudde/algo-htr/dsp/peak"
)

// Result is the output of one pipeline run. Callers must not modify it.
type Result struct {
	SampleRate float64

	Filtered  []float64
	Corrected []float64
	Rectified []float64
	// Signals is the per-sample detector classification of Rectified.
	Signals []peak.Signal

	Mean      float64
	Threshold Threshold

	Events            []Event
	TotalCount        int
	FractionatedCount int
}

// EventTimes returns the time of every event in seconds.
func (r *Result) EventTimes() []float64 {
	out := make([]float64, len(r.Events))
	for i, e := range r.Events {
		out[i] = r.Time(e.Index)
	}
	return out
}

// Time converts a sample index to seconds.
func (r *Result) Time(index int) float64 {
	return core.ProcessorConfig{SampleRate: r.SampleRate}.Seconds(index)
}

// Fractionated returns the fractionated events.
func (r *Result) Fractionated() []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Tag == TagFractionated {
			out = append(out, e)
		}
	}
	return out
}

// EventMask returns one flag per sample, set for samples that belong to
// the above-boundary run of a retained event.
func (r *Result) EventMask() []bool {
	mask := make([]bool, len(r.Rectified))
	for _, e := range r.Events {
		for i := e.Start; i < e.Start+e.Width && i < len(mask); i++ {
			mask[i] = true
		}
	}
	return mask
}
