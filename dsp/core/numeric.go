package core

import "math"

const defaultEpsilon = 1e-12

// Per-stage denormal flush thresholds. The biquad recurrence and the
// envelope follower were tuned independently and are kept distinct.
const (
	// BiquadFlushThreshold is the magnitude below which biquad output is
	// forced to exact zero.
	BiquadFlushThreshold float32 = 1e-11

	// EnvelopeFlushThreshold is the magnitude below which an envelope
	// follower level is forced to exact zero.
	EnvelopeFlushThreshold float32 = 1e-15

	// OutputFlushThreshold is applied to mixed effect output.
	OutputFlushThreshold float32 = 1e-15
)

// Silence floor used when converting detector levels to dB.
const (
	SilenceFloorLinear = 1e-10
	SilenceFloorDB     = -100.0
)

// Float is the set of sample types the helpers operate on.
type Float interface {
	~float32 | ~float64
}

// Clamp limits value to the inclusive range [lo, hi].
func Clamp[T Float](value, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushBelow returns exact zero when |x| < threshold and x otherwise.
// This avoids subnormal slow paths in recursive per-sample loops.
func FlushBelow(x, threshold float32) float32 {
	if x > -threshold && x < threshold {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float32) float32 {
	if linear < 0 {
		return float32(math.NaN())
	}

	if linear == 0 {
		return float32(math.Inf(-1))
	}

	return float32(20 * math.Log10(float64(linear)))
}

// LevelToDB converts a non-negative detector level to dB, returning
// SilenceFloorDB at or below SilenceFloorLinear instead of -Inf.
func LevelToDB(level float32) float32 {
	if level > SilenceFloorLinear {
		return float32(20 * math.Log10(float64(level)))
	}

	return SilenceFloorDB
}
