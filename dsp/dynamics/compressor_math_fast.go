//go:build fastmath

package dynamics

import (
	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/meko-christian/algo-approx"
)

const (
	// ln10 is the natural logarithm of 10.
	ln10 = 2.30258509299404568401799145468

	// ln10Div20 converts dB to the natural-log domain: 10^(x/20) = e^(x*ln10/20).
	ln10Div20 = ln10 / 20
)

// levelToDB converts a detector level to dB using fast approximation.
// Uses the identity: 20*log10(x) = 20*ln(x)/ln(10)
func levelToDB(level float32) float32 {
	if level <= core.SilenceFloorLinear {
		return core.SilenceFloorDB
	}
	return float32(20 * approx.FastLog(float64(level)) / ln10)
}

// dbToGain converts dB to linear gain using fast approximation.
func dbToGain(db float32) float32 {
	return float32(approx.FastExp(float64(db) * ln10Div20))
}

// mathExp computes e^x using fast approximation.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
