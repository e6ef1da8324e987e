// Package biquad provides the second-order IIR section used by the HTR
// filter stage.
//
// The delay registers live in an explicit [State] value and are advanced by
// the pure transition [Step]. A [Section] wraps one State for callers that
// prefer a stateful object; it owns its state exclusively and is not safe
// for concurrent use.
//
// Coefficient design (Butterworth low-pass) lives in dsp/filter/design.
package biquad
