package effects

import (
	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/dynamics"
)

var compressorSpecs = []ParamSpec{
	{Name: "threshold", Unit: "dB", Min: -60, Max: 0, Default: -20},
	{Name: "ratio", Min: 1, Max: 20, Default: 4},
	{Name: "attack", Unit: "ms", Min: 0.1, Max: 100, Default: 10},
	{Name: "release", Unit: "ms", Min: 10, Max: 1000, Default: 100},
	{Name: "knee", Unit: "dB", Min: 0, Max: 24, Default: 6},
	{Name: "makeup", Unit: "dB", Min: 0, Max: 30, Default: 0},
	{Name: "mix", Unit: "%", Min: 0, Max: 100, Default: 100},
}

// CompressorParams configures a Compressor.
type CompressorParams struct {
	ThresholdDB float32
	Ratio       float32
	AttackMs    float32
	ReleaseMs   float32
	KneeDB      float32
	MakeupDB    float32
	MixPercent  float32
}

// DefaultCompressorParams returns -20 dB, 4:1, 10/100 ms, 6 dB knee, no
// makeup, fully wet.
func DefaultCompressorParams() CompressorParams {
	var p CompressorParams
	for i, f := range p.fields() {
		*f = float32(compressorSpecs[i].Default)
	}
	return p
}

func (p *CompressorParams) fields() []*float32 {
	return []*float32{&p.ThresholdDB, &p.Ratio, &p.AttackMs, &p.ReleaseMs, &p.KneeDB, &p.MakeupDB, &p.MixPercent}
}

// Validate reports the first out-of-range field.
func (p CompressorParams) Validate() error {
	for i, f := range p.fields() {
		if err := compressorSpecs[i].check32("compressor", *f); err != nil {
			return err
		}
	}
	return nil
}

// Clamped returns p with every field limited to its range.
func (p CompressorParams) Clamped() CompressorParams {
	for i, f := range p.fields() {
		*f = compressorSpecs[i].clamp32(*f)
	}
	return p
}

// Compressor applies stereo-linked compression with makeup gain and a
// dry/wet mix:
//
//	out = dry*(1-mix) + dry*gain*makeup*mix
type Compressor struct {
	params     CompressorParams
	sampleRate float64
	comp       dynamics.Compressor
	makeup     float32
	mix        float32
	lastGain   float32
}

// NewCompressor returns a Compressor configured with params.
func NewCompressor(params CompressorParams, opts ...core.ProcessorOption) (*Compressor, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := validateSampleRate(cfg.SampleRate); err != nil {
		return nil, err
	}

	c := &Compressor{sampleRate: cfg.SampleRate, lastGain: 1}
	if err := c.SetParams(params); err != nil {
		return nil, err
	}
	return c, nil
}

// Params returns the current parameters.
func (c *Compressor) Params() CompressorParams {
	return c.params
}

// SetParams validates and installs p.
func (c *Compressor) SetParams(p CompressorParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.params = p
	c.makeup = core.DBToLinear(p.MakeupDB)
	c.mix = p.MixPercent / 100
	c.comp.SetTimes(p.AttackMs, p.ReleaseMs, float32(c.sampleRate))
	return nil
}

// ParamSpecs lists the numeric parameters.
func (c *Compressor) ParamSpecs() []ParamSpec {
	return append([]ParamSpec(nil), compressorSpecs...)
}

// SetParam sets one numeric parameter by name.
func (c *Compressor) SetParam(name string, value float64) error {
	p := c.params
	for i, f := range p.fields() {
		if compressorSpecs[i].Name == name {
			*f = float32(value)
			return c.SetParams(p)
		}
	}
	return unknownParam("compressor", name)
}

// GainReduction returns the last computed gain (linear, before makeup).
func (c *Compressor) GainReduction() float32 {
	return c.lastGain
}

// ProcessBlock compresses left and right in place.
func (c *Compressor) ProcessBlock(left, right []float32) {
	n := blockLen(left, right)
	p := &c.params
	dryAmt := 1 - c.mix
	wetAmt := c.makeup * c.mix
	gain := c.lastGain

	if right == nil {
		for i := range left[:n] {
			dry := left[i]
			gain = c.comp.ProcessSample(dry, p.ThresholdDB, p.Ratio, p.KneeDB)
			left[i] = dry*dryAmt + dry*gain*wetAmt
		}
		c.lastGain = gain
		return
	}

	for i := range n {
		l, r := left[i], right[i]
		gain = c.comp.ProcessStereo(l, r, p.ThresholdDB, p.Ratio, p.KneeDB)
		left[i] = l*dryAmt + l*gain*wetAmt
		right[i] = r*dryAmt + r*gain*wetAmt
	}
	c.lastGain = gain
}

// Reset clears the detector.
func (c *Compressor) Reset() {
	c.comp.Reset()
	c.lastGain = 1
}

// SetSampleRate recomputes the detector times and clears the detector.
func (c *Compressor) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	c.sampleRate = sampleRate
	c.comp.SetTimes(c.params.AttackMs, c.params.ReleaseMs, float32(sampleRate))
	c.Reset()
	return nil
}
