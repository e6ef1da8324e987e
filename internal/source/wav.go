package source

import (
	"fmt"
	"io"

	"github.com/mjibson/go-dsp/wav"
)

// WAV is a decoded channel of a WAV stream.
type WAV struct {
	SampleRate float64
	Channels   int
	Samples    []float64
}

// ReadWAV decodes the zero-based channel of a PCM or float WAV stream.
func ReadWAV(r io.Reader, channel int) (WAV, error) {
	w, err := wav.New(r)
	if err != nil {
		return WAV{}, fmt.Errorf("source: %w", err)
	}

	channels := int(w.NumChannels)
	if channels == 0 {
		return WAV{}, fmt.Errorf("source: wav header has no channels")
	}
	if channel < 0 || channel >= channels {
		return WAV{}, fmt.Errorf("%w: channel %d of %d", ErrColumn, channel, channels)
	}
	if w.Samples == 0 {
		return WAV{}, ErrNoSamples
	}

	data, err := w.ReadFloats(w.Samples)
	if err != nil {
		return WAV{}, fmt.Errorf("source: %w", err)
	}

	out := make([]float64, 0, len(data)/channels)
	for i := channel; i < len(data); i += channels {
		out = append(out, float64(data[i]))
	}

	return WAV{
		SampleRate: float64(w.SampleRate),
		Channels:   channels,
		Samples:    out,
	}, nil
}
