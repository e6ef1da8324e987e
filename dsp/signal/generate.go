package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-htr/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Twitch is one synthetic head-twitch burst. Start and Duration are in
// seconds.
type Twitch struct {
	Start     float64
	Duration  float64
	Amplitude float64
}

// Twitches renders Hann-shaped unipolar bursts into a zero signal of the
// given length. Bursts that run past the end are truncated.
func (g *Generator) Twitches(twitches []Twitch, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("twitch samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("twitch sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	for n, tw := range twitches {
		if tw.Start < 0 || tw.Duration <= 0 {
			return nil, fmt.Errorf("twitch %d: start must be >= 0 and duration > 0: %v/%v", n, tw.Start, tw.Duration)
		}

		start := int(math.Round(tw.Start * g.cfg.SampleRate))
		width := int(math.Round(tw.Duration * g.cfg.SampleRate))
		if width < 2 {
			return nil, fmt.Errorf("twitch %d: duration %v s is shorter than two samples", n, tw.Duration)
		}

		for k := range width {
			i := start + k
			if i >= samples {
				break
			}
			out[i] += tw.Amplitude * 0.5 * (1 - math.Cos(2*math.Pi*float64(k)/float64(width-1)))
		}
	}
	return out, nil
}

// Recording describes a synthetic sensor trace: a slow drift, white noise
// and a set of twitches.
type Recording struct {
	Samples        int
	DriftHz        float64
	DriftAmplitude float64
	NoiseAmplitude float64
	Twitches       []Twitch
}

// Recording renders r.
func (g *Generator) Recording(r Recording) ([]float64, error) {
	out, err := g.Twitches(r.Twitches, r.Samples)
	if err != nil {
		return nil, err
	}

	if r.DriftAmplitude != 0 {
		drift, err := g.Sine(r.DriftHz, r.DriftAmplitude, r.Samples)
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(out, drift)
	}

	if r.NoiseAmplitude > 0 {
		noise, err := g.WhiteNoise(r.NoiseAmplitude, r.Samples)
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(out, noise)
	}

	return out, nil
}

// Mix sums equal-length signals into a new slice.
func Mix(parts ...[]float64) ([]float64, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("mix needs at least one signal")
	}
	out := core.Clone(parts[0])
	for i, p := range parts[1:] {
		if len(p) != len(out) {
			return nil, fmt.Errorf("mix length mismatch at %d: %d != %d", i+1, len(p), len(out))
		}
		vecmath.AddBlockInPlace(out, p)
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	maxAbs := vecmath.MaxAbs(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}
