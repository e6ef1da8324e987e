// Package frequency computes amplitude spectra and spectral summaries of
// sensor recordings. It is used to check how much of a recording's energy
// lies above the detection low-pass cutoff.
package frequency
