// Package effects contains the stereo block drivers built on the engines in
// dsp/filter/biquad, dsp/dynamics and dsp/delay: a multi-mode filter, a
// compressor, a feedback delay and a gain/pan stage.
//
// Every driver implements [Processor]. Parameters are plain structs with
// defaults, ranges, Validate and Clamped; parameter changes take effect at
// the next block. A [Chain] runs processors in series and a [Registry] maps
// effect names to constructors.
//
// Drivers accept a nil right channel and then process left as mono.
package effects
