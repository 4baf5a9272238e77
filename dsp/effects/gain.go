package effects

import (
	"math"

	"github.com/cwbudde/cantrip/dsp/core"
)

var gainSpecs = []ParamSpec{
	{Name: "gain", Unit: "dB", Min: -30, Max: 30, Default: 0},
	{Name: "pan", Min: -1, Max: 1, Default: 0},
}

// GainParams configures a Gain stage.
type GainParams struct {
	GainDB float32
	Pan    float32 // -1 hard left, 0 center, +1 hard right
}

// DefaultGainParams returns unity gain, centered.
func DefaultGainParams() GainParams {
	return GainParams{}
}

// Validate reports the first out-of-range field.
func (p GainParams) Validate() error {
	if err := gainSpecs[0].check32("gain", p.GainDB); err != nil {
		return err
	}
	return gainSpecs[1].check32("gain", p.Pan)
}

// Clamped returns p with every field limited to its range.
func (p GainParams) Clamped() GainParams {
	p.GainDB = gainSpecs[0].clamp32(p.GainDB)
	p.Pan = gainSpecs[1].clamp32(p.Pan)
	return p
}

// PanLaw returns the equal-power channel weights for pan in [-1, 1]:
// angle = (pan+1)*pi/4, left = cos(angle), right = sin(angle).
// The center position weights both channels by sqrt(1/2).
func PanLaw(pan float32) (left, right float32) {
	angle := (float64(pan) + 1) * math.Pi / 4
	s, c := math.Sincos(angle)
	return float32(c), float32(s)
}

// Gain scales and pans a stereo signal. With a nil right channel only
// the gain is applied.
type Gain struct {
	params     GainParams
	gain       float32
	panL, panR float32
}

// NewGain returns a Gain stage configured with params.
func NewGain(params GainParams, opts ...core.ProcessorOption) (*Gain, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := validateSampleRate(cfg.SampleRate); err != nil {
		return nil, err
	}

	g := &Gain{}
	if err := g.SetParams(params); err != nil {
		return nil, err
	}
	return g, nil
}

// Params returns the current parameters.
func (g *Gain) Params() GainParams {
	return g.params
}

// SetParams validates and installs p.
func (g *Gain) SetParams(p GainParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.params = p
	g.gain = core.DBToLinear(p.GainDB)
	g.panL, g.panR = PanLaw(p.Pan)
	return nil
}

// ParamSpecs lists the numeric parameters.
func (g *Gain) ParamSpecs() []ParamSpec {
	return append([]ParamSpec(nil), gainSpecs...)
}

// SetParam sets one numeric parameter by name.
func (g *Gain) SetParam(name string, value float64) error {
	p := g.params
	switch name {
	case "gain":
		p.GainDB = float32(value)
	case "pan":
		p.Pan = float32(value)
	default:
		return unknownParam("gain", name)
	}
	return g.SetParams(p)
}

// ProcessBlock applies gain and pan in place.
func (g *Gain) ProcessBlock(left, right []float32) {
	n := blockLen(left, right)
	if right == nil {
		applyGain(left[:n], g.gain)
		return
	}

	gl, gr := g.gain*g.panL, g.gain*g.panR
	for i := range n {
		left[i] *= gl
		right[i] *= gr
	}
}

// Reset is a no-op; Gain has no signal history.
func (g *Gain) Reset() {}

// SetSampleRate only validates sampleRate; Gain is rate independent.
func (g *Gain) SetSampleRate(sampleRate float64) error {
	return validateSampleRate(sampleRate)
}
