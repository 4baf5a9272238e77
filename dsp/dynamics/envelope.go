package dynamics

import "github.com/cwbudde/cantrip/dsp/core"

// EnvelopeFollower is a peak detector with separate attack and release
// one-pole smoothing. The zero value has zero coefficients and tracks its
// input instantly until SetTimes is called.
type EnvelopeFollower struct {
	envelope     float32
	attackCoeff  float32
	releaseCoeff float32
}

// TimeCoefficient returns the one-pole coefficient exp(-1/(ms*0.001*sr))
// for a time constant of ms milliseconds. The envelope covers about 63% of
// a step within that time.
func TimeCoefficient(ms, sampleRate float32) float32 {
	return float32(mathExp(-1 / (float64(ms) * 0.001 * float64(sampleRate))))
}

// SetTimes recomputes the attack and release coefficients. It must be
// called whenever the times or the sample rate change. The envelope level
// is kept.
func (e *EnvelopeFollower) SetTimes(attackMs, releaseMs, sampleRate float32) {
	e.attackCoeff = TimeCoefficient(attackMs, sampleRate)
	e.releaseCoeff = TimeCoefficient(releaseMs, sampleRate)
}

// ProcessSample rectifies x, advances the envelope and returns the new
// level. The attack coefficient is used while |x| exceeds the envelope.
func (e *EnvelopeFollower) ProcessSample(x float32) float32 {
	if x < 0 {
		x = -x
	}

	coeff := e.releaseCoeff
	if x > e.envelope {
		coeff = e.attackCoeff
	}

	env := x + coeff*(e.envelope-x)
	if env < core.EnvelopeFlushThreshold {
		env = 0
	}
	e.envelope = env

	return env
}

// Level returns the current envelope level.
func (e *EnvelopeFollower) Level() float32 {
	return e.envelope
}

// Coefficients returns the attack and release coefficients.
func (e *EnvelopeFollower) Coefficients() (attack, release float32) {
	return e.attackCoeff, e.releaseCoeff
}

// Reset zeroes the envelope. Coefficients are kept.
func (e *EnvelopeFollower) Reset() {
	e.envelope = 0
}
