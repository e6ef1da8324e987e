package main

import (
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/cwbudde/algo-htr/internal/config"
	"github.com/cwbudde/algo-htr/measure/htr"
)

type options struct {
	configPath string
	synth      string
	seed       int64

	column  int
	channel int
	sheet   string

	outDir   string
	traceDir string

	natsURL string
	subject string

	jobs      int
	logLevel  string
	logFormat string

	// set records the detection flags given on the command line.
	set map[string]bool

	rate, cutoff, nsd, ceiling float64
	distance, width, window    int
	lag                        int
	influence                  float64

	files []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	def := htr.DefaultConfig()

	fs := flag.NewFlagSet("htrdetect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.synth, "synth", "", "process a synthetic recording instead of files: reference or twitches")
	fs.Int64Var(&o.seed, "seed", 1, "noise seed for -synth")

	fs.Float64Var(&o.rate, "rate", def.SampleRate, "sample rate in Hz (overrides WAV headers)")
	fs.Float64Var(&o.cutoff, "cutoff", def.CutoffHz, "low-pass cutoff in Hz")
	fs.Float64Var(&o.nsd, "nsd", def.StdDevMultiplier, "standard deviation multiplier")
	fs.Float64Var(&o.ceiling, "ceiling", def.TopThreshold, "threshold ceiling")
	fs.IntVar(&o.distance, "distance", def.MinEventDistance, "minimum event distance in samples")
	fs.IntVar(&o.width, "width", def.MinEventWidth, "minimum event width in samples")
	fs.IntVar(&o.window, "frac-window", 0, "fractionation window in samples (0 = -distance)")
	fs.IntVar(&o.lag, "lag", def.DetectorLag, "detector window in samples (0 = whole-signal statistics)")
	fs.Float64Var(&o.influence, "influence", def.Influence, "weight of flagged samples in the detector window")

	fs.IntVar(&o.column, "column", 0, "zero-based column of text and xlsx recordings")
	fs.IntVar(&o.channel, "channel", 0, "zero-based channel of wav recordings")
	fs.StringVar(&o.sheet, "sheet", "", "xlsx worksheet (default first)")

	fs.StringVar(&o.outDir, "out", "", "directory for JSON reports")
	fs.StringVar(&o.traceDir, "trace", "", "directory for parquet traces")
	fs.StringVar(&o.natsURL, "nats", "", "NATS server URL for publishing reports")
	fs.StringVar(&o.subject, "subject", "", "NATS subject (default "+config.DefaultSubject+")")

	fs.IntVar(&o.jobs, "jobs", runtime.GOMAXPROCS(0), "recordings processed in parallel")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "log format: json or console")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: htrdetect [flags] recording ...\n\n")
		fmt.Fprintf(stderr, "Counts HTR events in sensor recordings.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  htrdetect -rate 15 mouse01.csv\n")
		fmt.Fprintf(stderr, "  htrdetect -config htr.yaml -out reports data/*.wav\n")
		fmt.Fprintf(stderr, "  htrdetect -synth reference\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	o.files = fs.Args()

	switch {
	case o.synth != "" && len(o.files) > 0:
		return nil, fmt.Errorf("-synth does not take recordings")
	case o.synth == "" && len(o.files) == 0:
		fs.Usage()
		return nil, fmt.Errorf("no recordings given")
	case o.synth != "" && o.synth != synthReference && o.synth != synthTwitches:
		return nil, fmt.Errorf("unknown -synth %q", o.synth)
	}
	if o.jobs < 1 {
		o.jobs = 1
	}

	return o, nil
}

// resolve merges the configuration file with explicitly set flags.
func (o *options) resolve() (config.File, htr.Config, error) {
	f, err := config.Load(o.configPath)
	if err != nil {
		return config.File{}, htr.Config{}, err
	}

	cfg, err := f.Detection.HTR()
	if err != nil {
		return config.File{}, htr.Config{}, err
	}

	if o.set["rate"] {
		cfg.SampleRate = o.rate
	}
	if o.set["cutoff"] {
		cfg.CutoffHz = o.cutoff
	}
	if o.set["nsd"] {
		cfg.StdDevMultiplier = o.nsd
	}
	if o.set["ceiling"] {
		cfg.TopThreshold = o.ceiling
	}
	if o.set["distance"] {
		cfg.MinEventDistance = o.distance
	}
	if o.set["width"] {
		cfg.MinEventWidth = o.width
	}
	if o.set["frac-window"] {
		cfg.FractionationWindow = o.window
	}
	if o.set["lag"] {
		cfg.DetectorLag = o.lag
	}
	if o.set["influence"] {
		cfg.Influence = o.influence
	}

	if o.set["column"] {
		f.Input.Column = o.column
	}
	if o.set["channel"] {
		f.Input.Channel = o.channel
	}
	if o.outDir != "" {
		f.Output.Report = o.outDir
	}
	if o.traceDir != "" {
		f.Output.Trace = o.traceDir
	}
	if o.natsURL != "" {
		f.NATS.URL = o.natsURL
	}
	if o.subject != "" {
		f.NATS.Subject = o.subject
	}
	if o.logLevel != "" {
		f.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		f.Log.Format = o.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.File{}, htr.Config{}, err
	}
	return f, cfg, nil
}
