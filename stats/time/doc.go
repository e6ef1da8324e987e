// Package time provides time-domain summaries of recordings and of the
// intermediate sequences produced by the detection pipeline.
package time
