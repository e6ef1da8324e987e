// Package htr detects transient high-frequency (HTR) events in a sampled
// signal and classifies densely packed events as fractionated.
//
// A [Pipeline] runs five stages over a complete, in-memory sequence:
//
//   - Filter: causal second-order Butterworth low-pass ([Filter]).
//   - Baseline: mean removal and rectification ([CorrectBaseline]).
//   - Threshold: N-1 standard deviation times a multiplier, capped by a
//     ceiling ([EstimateThreshold]).
//   - Detect: smoothed z-score peaks with minimum width and distance
//     (package dsp/peak).
//   - Classify: isolated versus fractionated events ([Classify]).
//
// All distances and widths are sample counts. Use [SamplesFromSeconds] to
// convert durations at the boundary.
//
// # Usage
//
//	p, err := htr.New(htr.DefaultConfig())
//	res, err := p.Process(ctx, samples)
//	fmt.Println(res.TotalCount, res.FractionatedCount)
package htr
