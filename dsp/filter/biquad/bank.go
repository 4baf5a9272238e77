package biquad

import "github.com/cwbudde/cantrip/dsp/core"

// Bank applies one shared coefficient set to several channels, each with
// its own history. It is the stereo-linked form of [Section]: updating the
// coefficients once affects every channel identically.
type Bank struct {
	coeffs Coefficients
	states []State
}

// NewBank returns a Bank with the given number of channels (at least 1),
// unity coefficients and zero history.
func NewBank(channels int) *Bank {
	if channels < 1 {
		channels = 1
	}

	return &Bank{
		coeffs: UnityCoefficients(),
		states: make([]State, channels),
	}
}

// Channels returns the number of channels.
func (b *Bank) Channels() int {
	return len(b.states)
}

// Coefficients returns the shared coefficient set.
func (b *Bank) Coefficients() Coefficients {
	return b.coeffs
}

// Update derives new shared coefficients. Histories are kept.
func (b *Bank) Update(t FilterType, freqHz, q, gainDB, sampleRate float32) {
	b.coeffs = Derive(t, freqHz, q, gainDB, sampleRate)
}

// SetCoefficients installs c for every channel.
func (b *Bank) SetCoefficients(c Coefficients) {
	b.coeffs = c
}

// ProcessSample filters one sample of channel ch.
// ch must be in [0, Channels()).
func (b *Bank) ProcessSample(ch int, x float32) float32 {
	c := &b.coeffs
	st := &b.states[ch]

	y := c.B0*x + c.B1*st.X1 + c.B2*st.X2 - c.A1*st.Y1 - c.A2*st.Y2
	y = core.FlushBelow(y, core.BiquadFlushThreshold)

	st.X2, st.X1 = st.X1, x
	st.Y2, st.Y1 = st.Y1, y

	return y
}

// ProcessBlock filters buf in-place for channel ch.
func (b *Bank) ProcessBlock(ch int, buf []float32) {
	b.states[ch] = processBlock(b.coeffs, b.states[ch], buf)
}

// State returns the history of channel ch.
func (b *Bank) State(ch int) State {
	return b.states[ch]
}

// Reset clears the history of every channel.
func (b *Bank) Reset() {
	for i := range b.states {
		b.states[i] = State{}
	}
}
