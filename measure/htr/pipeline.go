package htr

import (
	"context"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-htr/dsp/peak"
)

// Pipeline runs the HTR stages with a fixed configuration. It holds no
// per-run state and is safe for concurrent use.
type Pipeline struct {
	cfg    Config
	filter *Filter
	logger *zap.Logger
	tracer Tracer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer installs a tracer for intermediate sequences.
func WithTracer(t Tracer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// New validates cfg and returns a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := NewFilter(cfg.CutoffHz, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		filter: f,
		logger: zap.NewNop(),
		tracer: nopTracer{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p, nil
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Filter returns the band-limiting stage.
func (p *Pipeline) Filter() *Filter {
	return p.filter
}

// Process runs every stage over samples. On error no partial result is
// returned.
func (p *Pipeline) Process(ctx context.Context, samples []float64) (*Result, error) {
	log := p.logger.With(zap.Int("samples", len(samples)))

	filtered, err := p.filter.Run(ctx, samples)
	if err != nil {
		return nil, err
	}
	p.tracer.Trace(SeriesFiltered, filtered)

	base, err := CorrectBaseline(filtered)
	if err != nil {
		return nil, err
	}
	p.tracer.Trace(SeriesCorrected, base.Corrected)
	p.tracer.Trace(SeriesRectified, base.Rectified)
	log.Debug("baseline corrected", zap.Float64("mean", base.Mean))

	th, err := EstimateThreshold(base.Corrected, p.cfg.StdDevMultiplier, p.cfg.TopThreshold)
	if err != nil {
		return nil, err
	}
	log.Debug("threshold resolved",
		zap.Float64("std_dev", th.StdDev),
		zap.Float64("candidate", th.Candidate),
		zap.Float64("threshold", th.Value),
		zap.Bool("capped", th.Capped),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	det, err := p.detect(base.Rectified, th)
	if err != nil {
		return nil, err
	}
	p.tracer.Trace(SeriesBoundary, det.Boundary)
	log.Debug("peaks detected",
		zap.Int("candidates", len(det.Candidates)),
		zap.Int("peaks", len(det.Peaks)),
	)

	cls := Classify(det.Peaks, p.cfg.ClassifierWindow())
	log.Debug("events classified",
		zap.Int("total", cls.TotalCount),
		zap.Int("fractionated", cls.FractionatedCount),
	)

	return &Result{
		SampleRate:        p.cfg.SampleRate,
		Filtered:          filtered,
		Corrected:         base.Corrected,
		Rectified:         base.Rectified,
		Signals:           det.Signals,
		Mean:              base.Mean,
		Threshold:         th,
		Events:            cls.Events,
		TotalCount:        cls.TotalCount,
		FractionatedCount: cls.FractionatedCount,
	}, nil
}

// detect runs the peak detector with the resolved threshold as ceiling. A
// zero threshold means the corrected signal has no dispersion at all, so no
// sample can stand out and detection is skipped.
func (p *Pipeline) detect(rectified []float64, th Threshold) (peak.Result, error) {
	if th.Value == 0 {
		return peak.Result{
			Signals:  make([]peak.Signal, len(rectified)),
			Boundary: make([]float64, len(rectified)),
		}, nil
	}

	res, err := peak.Detect(rectified, peak.Config{
		Lag:         p.cfg.DetectorLag,
		Threshold:   p.cfg.StdDevMultiplier,
		Influence:   p.cfg.Influence,
		Ceiling:     th.Value,
		MinDistance: p.cfg.MinEventDistance,
		MinWidth:    p.cfg.MinEventWidth,
	})
	if err != nil {
		return peak.Result{}, &ConfigError{Field: "detector", Reason: "rejected parameters", Err: err}
	}

	return res, nil
}

// Process runs a one-shot pipeline with cfg.
func Process(ctx context.Context, samples []float64, cfg Config) (*Result, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Process(ctx, samples)
}
