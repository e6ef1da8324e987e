package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-htr/dsp/core"
	"github.com/cwbudde/algo-htr/dsp/signal"
	"github.com/cwbudde/algo-htr/internal/config"
	"github.com/cwbudde/algo-htr/internal/logging"
	"github.com/cwbudde/algo-htr/internal/report"
	"github.com/cwbudde/algo-htr/internal/source"
	"github.com/cwbudde/algo-htr/measure/htr"
)

const (
	synthReference = "reference"
	synthTwitches  = "twitches"
)

type app struct {
	opts   *options
	file   config.File
	cfg    htr.Config
	logger *zap.Logger
	stdout io.Writer

	publisher report.Publisher
	close     func()
}

// outcome is the per-recording result shown in the summary table.
type outcome struct {
	name   string
	rate   float64
	report *report.Report
	err    error
}

func newApp(o *options, stdout io.Writer) (*app, error) {
	file, cfg, err := o.resolve()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(file.Log.Level, file.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{
		opts:   o,
		file:   file,
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
		close:  func() {},
	}

	for _, dir := range []string{file.Output.Report, file.Output.Trace} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	if file.NATS.URL != "" {
		nc, err := report.Connect(file.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("nats: %w", err)
		}
		a.publisher = nc
		a.close = func() {
			if err := nc.Drain(); err != nil {
				logger.Warn("nats drain failed", zap.Error(err))
			}
		}
		logger.Info("publishing reports", zap.String("url", file.NATS.URL), zap.String("subject", file.NATS.Subject))
	}

	return a, nil
}

func (a *app) runAll(ctx context.Context) error {
	names := a.opts.files
	if a.opts.synth != "" {
		names = []string{"synthetic-" + a.opts.synth}
	}

	outcomes := make([]outcome, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.jobs)
	for i, name := range names {
		g.Go(func() error {
			outcomes[i] = a.processOne(ctx, name)
			// Cancellation stops the remaining recordings; other failures
			// are reported per recording.
			if errors.Is(outcomes[i].err, context.Canceled) {
				return outcomes[i].err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := a.printSummary(outcomes); err != nil {
		return err
	}

	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.name, o.err))
		}
	}
	return errors.Join(errs...)
}

func (a *app) load(name string) (source.Recording, error) {
	if a.opts.synth != "" {
		samples, err := synthesize(a.opts.synth, a.cfg.SampleRate, a.opts.seed)
		return source.Recording{Name: name, Samples: samples}, err
	}

	return source.Open(name, source.Options{
		Column:  a.file.Input.Column,
		Channel: a.file.Input.Channel,
		Sheet:   a.opts.sheet,
	})
}

func (a *app) processOne(ctx context.Context, name string) outcome {
	out := outcome{name: name, rate: a.cfg.SampleRate}
	log := a.logger.With(zap.String("recording", name))

	rec, err := a.load(name)
	if err != nil {
		out.err = err
		log.Error("load failed", zap.Error(err))
		return out
	}

	cfg := a.cfg
	switch {
	case rec.SampleRate <= 0:
	case !a.opts.set["rate"]:
		cfg.SampleRate = rec.SampleRate
	case !core.NearlyEqual(rec.SampleRate, cfg.SampleRate, 1e-9):
		log.Warn("rate flag overrides file header",
			zap.Float64("header_hz", rec.SampleRate),
			zap.Float64("rate_hz", cfg.SampleRate),
		)
	}
	out.rate = cfg.SampleRate

	p, err := htr.New(cfg, htr.WithLogger(log))
	if err != nil {
		out.err = err
		log.Error("invalid configuration for recording", zap.Error(err))
		return out
	}

	res, err := p.Process(ctx, rec.Samples)
	if err != nil {
		out.err = err
		log.Error("processing failed", zap.Error(err))
		return out
	}

	r, err := report.Build(report.Meta{Source: rec.Name}, rec.Samples, res, cfg)
	if err != nil {
		out.err = err
		return out
	}
	out.report = r

	if err := a.emit(rec, res, r); err != nil {
		out.err = err
		log.Error("writing outputs failed", zap.Error(err))
		return out
	}

	log.Info("recording processed",
		zap.Int("samples", len(rec.Samples)),
		zap.Int("events", r.TotalCount),
		zap.Int("fractionated", r.FractionatedCount),
	)
	return out
}

func baseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (a *app) emit(rec source.Recording, res *htr.Result, r *report.Report) error {
	if dir := a.file.Output.Report; dir != "" {
		if err := writeFile(filepath.Join(dir, baseName(rec.Name)+".json"), r.WriteJSON); err != nil {
			return err
		}
	}

	if dir := a.file.Output.Trace; dir != "" {
		rows, err := report.TraceRows(rec.Samples, res)
		if err != nil {
			return err
		}
		err = writeFile(filepath.Join(dir, baseName(rec.Name)+".parquet"), func(w io.Writer) error {
			return report.WriteTrace(w, rows)
		})
		if err != nil {
			return err
		}
	}

	if a.publisher != nil {
		if err := report.Publish(a.publisher, a.file.NATS.Subject, r); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (a *app) printSummary(outcomes []outcome) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Recording\tSamples\tRate [Hz]\tThreshold\tCapped\tEvents\tFractionated\n")
	fmt.Fprintf(tw, "---------\t-------\t---------\t---------\t------\t------\t------------\n")

	for _, o := range outcomes {
		if o.report == nil {
			fmt.Fprintf(tw, "%s\t-\t%.2f\t-\t-\t-\t-\n", o.name, o.rate)
			continue
		}
		r := o.report
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.6f\t%v\t%d\t%d\n",
			o.name,
			r.Samples,
			r.Parameters.SampleRateHz,
			r.Threshold.Value,
			r.Threshold.Capped,
			r.TotalCount,
			r.FractionatedCount,
		)
	}
	return tw.Flush()
}

// synthesize renders a built-in recording at sampleRate. The reference
// recording is 1000 samples of a unit 1 Hz sine; the twitch recording
// adds bursts on a noisy drifting baseline.
func synthesize(kind string, sampleRate float64, seed int64) ([]float64, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(sampleRate)},
		signal.WithSeed(seed),
	)

	switch kind {
	case synthReference:
		return g.Sine(1, 1, 1000)
	case synthTwitches:
		return g.Recording(signal.Recording{
			Samples:        int(120 * sampleRate),
			DriftHz:        0.05,
			DriftAmplitude: 0.02,
			NoiseAmplitude: 0.01,
			Twitches: []signal.Twitch{
				{Start: 10, Duration: 12, Amplitude: 1},
				{Start: 40, Duration: 12, Amplitude: 0.8},
				{Start: 70, Duration: 12, Amplitude: 0.9},
				{Start: 100, Duration: 12, Amplitude: 1.2},
			},
		})
	default:
		return nil, fmt.Errorf("unknown synthetic recording %q", kind)
	}
}
