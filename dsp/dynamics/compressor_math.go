//go:build !fastmath

package dynamics

import (
	"math"

	"github.com/cwbudde/cantrip/dsp/core"
)

// levelToDB converts a detector level to dB with the silence floor.
func levelToDB(level float32) float32 {
	return core.LevelToDB(level)
}

// dbToGain converts dB to linear gain using standard library math.
func dbToGain(db float32) float32 {
	return core.DBToLinear(db)
}

// mathExp computes e^x using standard library math.
func mathExp(x float64) float64 {
	return math.Exp(x)
}
