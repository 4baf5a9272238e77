package effects

import (
	"fmt"
	"math"
)

// Processor is a stereo effect processed in blocks.
type Processor interface {
	// ProcessBlock processes left and right in place. right may be nil.
	ProcessBlock(left, right []float32)
	// Reset clears all signal history. Parameters are kept.
	Reset()
	// SetSampleRate reconfigures the processor and clears its history.
	SetSampleRate(sampleRate float64) error
}

// Parameterized is implemented by processors whose numeric parameters can
// be set by name.
type Parameterized interface {
	ParamSpecs() []ParamSpec
	SetParam(name string, value float64) error
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("effects sample rate must be positive and finite: %f", sampleRate)
	}
	return nil
}

// blockLen returns the number of frames to process: len(left), or the
// shorter of both channels when right is present.
func blockLen(left, right []float32) int {
	n := len(left)
	if right != nil && len(right) < n {
		n = len(right)
	}
	return n
}

var (
	_ Processor     = (*Filter)(nil)
	_ Processor     = (*Compressor)(nil)
	_ Processor     = (*Delay)(nil)
	_ Processor     = (*Gain)(nil)
	_ Processor     = (*Chain)(nil)
	_ Parameterized = (*Filter)(nil)
	_ Parameterized = (*Compressor)(nil)
	_ Parameterized = (*Delay)(nil)
	_ Parameterized = (*Gain)(nil)
)
