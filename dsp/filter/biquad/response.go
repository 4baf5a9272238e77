package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of the section
// at the given frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	b0, b1, b2, a1, a2 := c.float64s()
	num := complex(b0, 0) + complex(b1, 0)*ejw + complex(b2, 0)*ej2w
	den := complex(1, 0) + complex(a1, 0)*ejw + complex(a2, 0)*ej2w

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2, a1, a2 := c.float64s()

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns the phase response in radians, in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// DCGain returns H(1), the response at 0 Hz.
func (c Coefficients) DCGain() float64 {
	b0, b1, b2, a1, a2 := c.float64s()
	return (b0 + b1 + b2) / (1 + a1 + a2)
}

// NyquistGain returns H(-1), the response at half the sample rate.
func (c Coefficients) NyquistGain() float64 {
	b0, b1, b2, a1, a2 := c.float64s()
	return (b0 - b1 + b2) / (1 - a1 + a2)
}

func (c Coefficients) float64s() (b0, b1, b2, a1, a2 float64) {
	return float64(c.B0), float64(c.B1), float64(c.B2), float64(c.A1), float64(c.A2)
}

// ImpulseResponse computes n samples of the impulse response h[n]
// by feeding an impulse through the section. The history is saved and
// restored so this method does not modify the section.
func (s *Section) ImpulseResponse(n int) []float32 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	s.Reset()

	ir := make([]float32, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}

	s.SetState(saved)
	return ir
}
