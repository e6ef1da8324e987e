// Package peak implements a smoothed z-score peak detector.
//
// Each sample is compared with the mean and standard deviation of a sliding
// window of the previous Lag samples. A sample whose distance from the
// window mean exceeds Threshold standard deviations (capped by Ceiling) is
// flagged [SignalAbove] or [SignalBelow]. Flagged samples enter the window
// scaled by Influence, so a burst does not immediately raise the boundary it
// is measured against.
//
// Contiguous runs of [SignalAbove] samples become candidate peaks. [Detect]
// then drops candidates narrower than MinWidth and resolves candidates
// closer than MinDistance in favor of the larger one.
package peak
