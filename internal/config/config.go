// Package config loads detection runs from YAML files and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-htr/measure/htr"
)

// Environment variables that override file values.
const (
	EnvLogLevel = "HTR_LOG_LEVEL"
	EnvNATSURL  = "HTR_NATS_URL"
)

// File is the on-disk configuration. Zero detection values keep the
// defaults; DetectorLag and Influence are pointers because zero is a
// meaningful setting for both.
type File struct {
	Detection Detection `yaml:"detection"`
	Input     Input     `yaml:"input"`
	Output    Output    `yaml:"output"`
	Log       Log       `yaml:"log"`
	NATS      NATS      `yaml:"nats"`
}

// Detection holds the pipeline parameters.
type Detection struct {
	SampleRateHz        float64  `yaml:"sample_rate_hz"`
	CutoffHz            float64  `yaml:"cutoff_hz"`
	StdDevMultiplier    float64  `yaml:"std_dev_multiplier"`
	TopThreshold        float64  `yaml:"top_threshold"`
	MinEventDistance    int      `yaml:"min_event_distance"`
	MinEventWidth       int      `yaml:"min_event_width"`
	FractionationWindow int      `yaml:"fractionation_window"`
	DetectorLag         *int     `yaml:"detector_lag"`
	Influence           *float64 `yaml:"influence"`
}

// Input selects how recordings are read.
type Input struct {
	Column  int `yaml:"column"`
	Channel int `yaml:"channel"`
}

// Output names the report destinations.
type Output struct {
	Report string `yaml:"report"`
	Trace  string `yaml:"trace"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NATS configures result publishing. An empty URL disables it.
type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// DefaultSubject is the NATS subject used when none is configured.
const DefaultSubject = "htr.results"

// Default returns the configuration used without a file.
func Default() File {
	return File{
		Log:  Log{Level: "info", Format: "json"},
		NATS: NATS{Subject: DefaultSubject},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("config: %w", err)
	}

	if f.NATS.Subject == "" {
		f.NATS.Subject = DefaultSubject
	}
	return f, nil
}

// Load reads path, applies environment overrides and returns the result.
// An empty path yields the defaults with overrides.
func Load(path string) (File, error) {
	f := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, fmt.Errorf("config: %w", err)
		}
		if f, err = Parse(data); err != nil {
			return File{}, err
		}
	}

	f.ApplyEnv(os.Getenv)
	return f, nil
}

// ApplyEnv overrides values from the environment lookup getenv.
func (f *File) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		f.Log.Level = v
	}
	if v := getenv(EnvNATSURL); v != "" {
		f.NATS.URL = v
	}
}

// HTR returns the pipeline configuration: defaults overlaid with every
// non-zero file value. The result is validated.
func (d Detection) HTR() (htr.Config, error) {
	cfg := htr.DefaultConfig()

	if d.SampleRateHz != 0 {
		cfg.SampleRate = d.SampleRateHz
	}
	if d.CutoffHz != 0 {
		cfg.CutoffHz = d.CutoffHz
	}
	if d.StdDevMultiplier != 0 {
		cfg.StdDevMultiplier = d.StdDevMultiplier
	}
	if d.TopThreshold != 0 {
		cfg.TopThreshold = d.TopThreshold
	}
	if d.MinEventDistance != 0 {
		cfg.MinEventDistance = d.MinEventDistance
	}
	if d.MinEventWidth != 0 {
		cfg.MinEventWidth = d.MinEventWidth
	}
	if d.FractionationWindow != 0 {
		cfg.FractionationWindow = d.FractionationWindow
	}
	if d.DetectorLag != nil {
		cfg.DetectorLag = *d.DetectorLag
	}
	if d.Influence != nil {
		cfg.Influence = *d.Influence
	}

	if err := cfg.Validate(); err != nil {
		return htr.Config{}, err
	}
	return cfg, nil
}
