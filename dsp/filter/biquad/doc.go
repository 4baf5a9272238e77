// Package biquad provides the multi-mode biquad filter: a closed-form
// coefficient engine and the Direct Form I runtime that applies it.
//
// [Derive] maps a [FilterType] plus frequency, Q, gain and sample rate to a
// normalized [Coefficients] set. Every derivation divides by a0 exactly once
// through [FromRaw]. A [Section] holds one coefficient set and one channel of
// history; a [Bank] shares one coefficient set across several channels, each
// with its own [State].
//
// Coefficients are refreshed by the caller ([Section.Update],
// [Bank.Update]), not by processing, so the refresh cadence (per sample or
// per block) is the caller's choice. Processing never allocates.
package biquad
