// Package response measures the magnitude response of cantrip filters and
// effects offline.
//
// An [Analyzer] captures an impulse response, zero-pads it to the FFT size,
// optionally fades out its tail, and returns the magnitude of the
// non-negative frequency bins as a [Spectrum]. [CompareAnalytic] checks a
// measured spectrum against the closed-form response of a biquad.
//
// Nothing here is real-time safe; the package is meant for tests, tools and
// the command line.
package response
