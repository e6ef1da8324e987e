// Package report turns pipeline results into JSON reports, per-sample
// parquet traces and NATS messages.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-htr/measure/htr"
	"github.com/cwbudde/algo-htr/stats/frequency"
	timestats "github.com/cwbudde/algo-htr/stats/time"
)

// Event is one classified event.
type Event struct {
	Index     int     `json:"index"`
	TimeS     float64 `json:"time_s"`
	Magnitude float64 `json:"magnitude"`
	Width     int     `json:"width"`
	Tag       htr.Tag `json:"tag"`
}

// Parameters echoes the configuration a report was produced with.
type Parameters struct {
	SampleRateHz        float64 `json:"sample_rate_hz"`
	CutoffHz            float64 `json:"cutoff_hz"`
	StdDevMultiplier    float64 `json:"std_dev_multiplier"`
	TopThreshold        float64 `json:"top_threshold"`
	MinEventDistance    int     `json:"min_event_distance"`
	MinEventWidth       int     `json:"min_event_width"`
	FractionationWindow int     `json:"fractionation_window"`
	DetectorLag         int     `json:"detector_lag"`
	Influence           float64 `json:"influence"`
}

// Threshold is the resolved detection threshold.
type Threshold struct {
	StdDev    float64 `json:"std_dev"`
	Candidate float64 `json:"candidate"`
	Value     float64 `json:"value"`
	Capped    bool    `json:"capped"`
}

// Signal summarizes the raw recording.
type Signal struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	RMS        float64 `json:"rms"`
	Peak       float64 `json:"peak"`
	DominantHz float64 `json:"dominant_hz"`
	// AboveCutoff is the share of spectral energy above the low-pass cutoff.
	AboveCutoff float64 `json:"above_cutoff"`
}

// FilterResponse describes the designed low-pass section.
type FilterResponse struct {
	DCGain       float64 `json:"dc_gain"`
	CutoffGainDB float64 `json:"cutoff_gain_db"`
	CutoffPhase  float64 `json:"cutoff_phase_rad"`
	// SettlingS is how long the impulse response rings, in seconds.
	SettlingS float64 `json:"settling_s"`
}

// Report is the serializable outcome of one recording.
type Report struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Samples     int       `json:"samples"`
	DurationS   float64   `json:"duration_s"`

	Parameters Parameters     `json:"parameters"`
	Filter     FilterResponse `json:"filter"`
	Signal     Signal         `json:"signal"`
	Baseline   float64        `json:"baseline"`
	Threshold  Threshold      `json:"threshold"`

	TotalCount        int     `json:"total_count"`
	FractionatedCount int     `json:"fractionated_count"`
	Events            []Event `json:"events"`
}

// Meta identifies a report. Zero fields are filled by [Build].
type Meta struct {
	ID          string
	Source      string
	GeneratedAt time.Time
}

// Build assembles a report for raw and its pipeline result.
func Build(meta Meta, raw []float64, res *htr.Result, cfg htr.Config) (*Report, error) {
	if res == nil {
		return nil, fmt.Errorf("report: nil result")
	}

	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}

	f, err := htr.NewFilter(cfg.CutoffHz, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	resp := f.Response()

	sum := timestats.Summarize(raw)
	spectrum, err := frequency.Analyze(raw, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	r := &Report{
		ID:          meta.ID,
		Source:      meta.Source,
		GeneratedAt: meta.GeneratedAt,
		Samples:     len(raw),
		DurationS:   cfg.Seconds(len(raw)),
		Parameters: Parameters{
			SampleRateHz:        cfg.SampleRate,
			CutoffHz:            cfg.CutoffHz,
			StdDevMultiplier:    cfg.StdDevMultiplier,
			TopThreshold:        cfg.TopThreshold,
			MinEventDistance:    cfg.MinEventDistance,
			MinEventWidth:       cfg.MinEventWidth,
			FractionationWindow: cfg.ClassifierWindow(),
			DetectorLag:         cfg.DetectorLag,
			Influence:           cfg.Influence,
		},
		Filter: FilterResponse{
			DCGain:       resp.DCGain,
			CutoffGainDB: resp.CutoffGainDB,
			CutoffPhase:  resp.CutoffPhase,
			SettlingS:    cfg.Seconds(resp.SettlingSamples),
		},
		Signal: Signal{
			Mean:        sum.Mean,
			StdDev:      sum.StdDev,
			RMS:         sum.RMS,
			Peak:        sum.Peak,
			DominantHz:  frequency.Calculate(spectrum).DominantHz,
			AboveCutoff: spectrum.EnergyFraction(cfg.CutoffHz, cfg.Nyquist()),
		},
		Baseline: res.Mean,
		Threshold: Threshold{
			StdDev:    res.Threshold.StdDev,
			Candidate: res.Threshold.Candidate,
			Value:     res.Threshold.Value,
			Capped:    res.Threshold.Capped,
		},
		TotalCount:        res.TotalCount,
		FractionatedCount: res.FractionatedCount,
		Events:            make([]Event, len(res.Events)),
	}

	for i, e := range res.Events {
		r.Events[i] = Event{
			Index:     e.Index,
			TimeS:     res.Time(e.Index),
			Magnitude: e.Magnitude,
			Width:     e.Width,
			Tag:       e.Tag,
		}
	}

	return r, nil
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
