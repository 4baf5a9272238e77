package biquad

import "math"

// MinFrequency is the lower clamp applied to every design frequency.
const MinFrequency = 1.0

// NyquistFraction is the upper clamp on design frequency as a fraction of
// the sample rate. Keeping the frequency below Nyquist keeps a0 non-zero.
const NyquistFraction = 0.499

// FilterContext holds the intermediate terms shared by all derivations.
// It is computed once per [Derive] call.
type FilterContext struct {
	W0    float64 // angular frequency, radians/sample
	CosW0 float64
	SinW0 float64
	Alpha float64 // sin(w0)/(2q) for the caller's q
	A     float64 // 10^(gainDB/40), shelf and peaking amplitude
}

// NewFilterContext clamps freqHz into [MinFrequency, NyquistFraction*sampleRate]
// and evaluates the trigonometric terms.
func NewFilterContext(freqHz, q, gainDB, sampleRate float64) FilterContext {
	freq := clampFrequency(freqHz, sampleRate)
	w0 := 2 * math.Pi * freq / sampleRate
	sinW0, cosW0 := math.Sincos(w0)

	return FilterContext{
		W0:    w0,
		CosW0: cosW0,
		SinW0: sinW0,
		Alpha: sinW0 / (2 * q),
		A:     math.Pow(10, gainDB/40),
	}
}

// AlphaWithQ returns alpha recomputed for a fixed q.
func (c FilterContext) AlphaWithQ(q float64) float64 {
	return c.SinW0 / (2 * q)
}

func clampFrequency(freqHz, sampleRate float64) float64 {
	hi := NyquistFraction * sampleRate
	if math.IsNaN(freqHz) {
		return MinFrequency
	}
	if freqHz > hi {
		freqHz = hi
	}
	if freqHz < MinFrequency {
		freqHz = MinFrequency
	}
	return freqHz
}
