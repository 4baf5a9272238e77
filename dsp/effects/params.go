package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/filter/biquad"
)

var (
	// ErrOutOfRange is wrapped by every parameter validation failure.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrUnknownParam is returned by SetParam for names a processor does
	// not define.
	ErrUnknownParam = errors.New("unknown parameter")
)

// ParamSpec describes one numeric parameter: its range, default and unit.
type ParamSpec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Check returns an error wrapping ErrOutOfRange if v is NaN or outside
// [Min, Max]. owner prefixes the message.
func (p ParamSpec) Check(owner string, v float64) error {
	if math.IsNaN(v) || v < p.Min || v > p.Max {
		return fmt.Errorf("%w: %s %s must be in [%g, %g]: %g", ErrOutOfRange, owner, p.Name, p.Min, p.Max, v)
	}
	return nil
}

// Clamp limits v to [Min, Max]. NaN maps to Default.
func (p ParamSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return p.Default
	}
	return core.Clamp(v, p.Min, p.Max)
}

func (p ParamSpec) check32(owner string, v float32) error {
	return p.Check(owner, float64(v))
}

func (p ParamSpec) clamp32(v float32) float32 {
	return float32(p.Clamp(float64(v)))
}

func unknownParam(owner, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, owner, name)
}

func unknownFilterType(t biquad.FilterType) error {
	return fmt.Errorf("%w: filter type %v", ErrOutOfRange, t)
}
