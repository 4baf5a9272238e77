// Package dynamics provides the stereo-linked feed-forward compressor and
// the one-pole envelope follower that drives it.
//
// The compressor is a pure gain computer: [Compressor.ProcessStereo]
// returns the linear gain to apply to both channels and leaves mixing and
// makeup gain to the caller. Threshold, ratio and knee are passed per call
// so hosts can modulate them at any rate; attack and release are set with
// [Compressor.SetTimes].
//
// Building with the fastmath tag swaps the dB conversions for the
// approximations in github.com/meko-christian/algo-approx.
package dynamics
