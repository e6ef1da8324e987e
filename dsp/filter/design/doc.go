// Package design provides coefficient designers for the band-limiting stage.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad. Only the RBJ cookbook low-pass section is provided; with
// [ButterworthQ] it realizes a second-order Butterworth response.
package design
