package htr

import (
	"sync"

	"github.com/cwbudde/algo-htr/dsp/core"
)

// Series names an intermediate per-sample sequence.
type Series string

// Traced series.
const (
	SeriesFiltered  Series = "filtered"
	SeriesCorrected Series = "corrected"
	SeriesRectified Series = "rectified"
	SeriesBoundary  Series = "boundary"
)

// Tracer receives intermediate sequences as the pipeline produces them.
// Implementations must copy data if they keep it.
type Tracer interface {
	Trace(series Series, data []float64)
}

// TracerFunc adapts a function to [Tracer].
type TracerFunc func(series Series, data []float64)

// Trace calls f.
func (f TracerFunc) Trace(series Series, data []float64) { f(series, data) }

// Recorder is a [Tracer] that keeps a copy of every traced sequence. The
// zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	series map[Series][]float64
	order  []Series
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{series: make(map[Series][]float64)}
}

// Trace stores a copy of data, replacing an earlier sequence of the same name.
func (r *Recorder) Trace(series Series, data []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.series == nil {
		r.series = make(map[Series][]float64)
	}
	if _, ok := r.series[series]; !ok {
		r.order = append(r.order, series)
	}
	r.series[series] = core.Clone(data)
}

// Get returns the recorded sequence and whether it exists.
func (r *Recorder) Get(series Series) ([]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.series[series]
	return data, ok
}

// Series returns recorded names in first-seen order.
func (r *Recorder) Series() []Series {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Series(nil), r.order...)
}

type nopTracer struct{}

func (nopTracer) Trace(Series, []float64) {}
