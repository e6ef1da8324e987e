// Package source reads single-channel sensor recordings from text, WAV and
// spreadsheet files.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoSamples is returned when a recording holds no data.
	ErrNoSamples = errors.New("source: no samples")
	// ErrColumn is returned when the selected column or channel does not exist.
	ErrColumn = errors.New("source: column out of range")
)

// Format is a recording file format.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatWAV  Format = "wav"
	FormatXLSX Format = "xlsx"
)

// Recording is a loaded signal. SampleRate is zero when the file does not
// carry one.
type Recording struct {
	Name       string
	SampleRate float64
	Samples    []float64
}

// Options selects the data inside a file. Column and Channel are zero-based.
type Options struct {
	Column  int
	Channel int
	Sheet   string
}

// DetectFormat picks a format from the file extension. Anything unknown is
// read as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return FormatWAV
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatText
	}
}

// Open reads the recording at path. The path "-" reads text from stdin.
func Open(path string, opts Options) (Recording, error) {
	if path == "-" {
		samples, err := ReadText(os.Stdin, opts.Column)
		return Recording{Name: "stdin", Samples: samples}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	rec := Recording{Name: filepath.Base(path)}
	switch DetectFormat(path) {
	case FormatWAV:
		w, err := ReadWAV(f, opts.Channel)
		if err != nil {
			return Recording{}, fmt.Errorf("%s: %w", path, err)
		}
		rec.SampleRate = w.SampleRate
		rec.Samples = w.Samples
	case FormatXLSX:
		rec.Samples, err = ReadXLSX(f, opts.Sheet, opts.Column)
	default:
		rec.Samples, err = ReadText(f, opts.Column)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}
