package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float32 // feedforward (numerator)
	A1, A2     float32 // feedback (denominator)
}

// UnityCoefficients returns pass-through coefficients (B0=1, all else 0).
func UnityCoefficients() Coefficients {
	return Coefficients{B0: 1}
}

// FromRaw normalizes raw coefficients by a0. It is the single
// normalization point for every designer in this package.
func FromRaw(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	inv := 1 / a0
	return Coefficients{
		B0: float32(b0 * inv),
		B1: float32(b1 * inv),
		B2: float32(b2 * inv),
		A1: float32(a1 * inv),
		A2: float32(a2 * inv),
	}
}
