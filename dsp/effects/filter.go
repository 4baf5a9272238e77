package effects

import (
	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/filter/biquad"
)

var filterSpecs = []ParamSpec{
	{Name: "frequency", Unit: "Hz", Min: 20, Max: 20000, Default: 1000},
	{Name: "q", Min: 0.1, Max: 10, Default: 0.707},
	{Name: "gain", Unit: "dB", Min: -24, Max: 24, Default: 0},
	{Name: "output", Unit: "dB", Min: -30, Max: 30, Default: 0},
}

// FilterParams configures a Filter.
type FilterParams struct {
	Type         biquad.FilterType
	FrequencyHz  float32
	Q            float32
	GainDB       float32 // shape gain for shelves, peaks, tilt and character types
	OutputGainDB float32
}

// DefaultFilterParams returns a 1 kHz low-pass at Q 0.707 with unity output.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		Type:         biquad.LowPass,
		FrequencyHz:  float32(filterSpecs[0].Default),
		Q:            float32(filterSpecs[1].Default),
		GainDB:       float32(filterSpecs[2].Default),
		OutputGainDB: float32(filterSpecs[3].Default),
	}
}

// Validate reports the first out-of-range field.
func (p FilterParams) Validate() error {
	if !p.Type.Valid() {
		return unknownFilterType(p.Type)
	}
	for i, v := range []float32{p.FrequencyHz, p.Q, p.GainDB, p.OutputGainDB} {
		if err := filterSpecs[i].check32("filter", v); err != nil {
			return err
		}
	}
	return nil
}

// Clamped returns p with every field limited to its range. An invalid
// type becomes LowPass.
func (p FilterParams) Clamped() FilterParams {
	if !p.Type.Valid() {
		p.Type = biquad.LowPass
	}
	p.FrequencyHz = filterSpecs[0].clamp32(p.FrequencyHz)
	p.Q = filterSpecs[1].clamp32(p.Q)
	p.GainDB = filterSpecs[2].clamp32(p.GainDB)
	p.OutputGainDB = filterSpecs[3].clamp32(p.OutputGainDB)
	return p
}

// Filter is a stereo-linked biquad: one coefficient set shared by both
// channels, refreshed at most once per block, followed by an output gain.
type Filter struct {
	params     FilterParams
	sampleRate float64
	bank       *biquad.Bank
	outGain    float32
	dirty      bool
}

// NewFilter returns a Filter configured with params.
func NewFilter(params FilterParams, opts ...core.ProcessorOption) (*Filter, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := validateSampleRate(cfg.SampleRate); err != nil {
		return nil, err
	}

	f := &Filter{
		sampleRate: cfg.SampleRate,
		bank:       biquad.NewBank(2),
	}
	if err := f.SetParams(params); err != nil {
		return nil, err
	}
	return f, nil
}

// Params returns the current parameters.
func (f *Filter) Params() FilterParams {
	return f.params
}

// SetParams validates and installs p. Coefficients are refreshed at the
// start of the next block.
func (f *Filter) SetParams(p FilterParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.params = p
	f.outGain = core.DBToLinear(p.OutputGainDB)
	f.dirty = true
	return nil
}

// SetType changes the filter type.
func (f *Filter) SetType(t biquad.FilterType) error {
	p := f.params
	p.Type = t
	return f.SetParams(p)
}

// ParamSpecs lists the numeric parameters.
func (f *Filter) ParamSpecs() []ParamSpec {
	return append([]ParamSpec(nil), filterSpecs...)
}

// SetParam sets one numeric parameter by name.
func (f *Filter) SetParam(name string, value float64) error {
	p := f.params
	switch name {
	case "frequency":
		p.FrequencyHz = float32(value)
	case "q":
		p.Q = float32(value)
	case "gain":
		p.GainDB = float32(value)
	case "output":
		p.OutputGainDB = float32(value)
	default:
		return unknownParam("filter", name)
	}
	return f.SetParams(p)
}

// Coefficients returns the coefficients the next block will use.
func (f *Filter) Coefficients() biquad.Coefficients {
	f.refresh()
	return f.bank.Coefficients()
}

func (f *Filter) refresh() {
	if !f.dirty {
		return
	}
	p := f.params
	f.bank.Update(p.Type, p.FrequencyHz, p.Q, p.GainDB, float32(f.sampleRate))
	f.dirty = false
}

// ProcessBlock filters left and right in place.
func (f *Filter) ProcessBlock(left, right []float32) {
	n := blockLen(left, right)
	f.refresh()

	left = left[:n]
	f.bank.ProcessBlock(0, left)
	applyGain(left, f.outGain)

	if right != nil {
		right = right[:n]
		f.bank.ProcessBlock(1, right)
		applyGain(right, f.outGain)
	}
}

// Reset clears the filter history.
func (f *Filter) Reset() {
	f.bank.Reset()
}

// SetSampleRate changes the design sample rate and clears history.
func (f *Filter) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	f.sampleRate = sampleRate
	f.dirty = true
	f.bank.Reset()
	return nil
}

func applyGain(buf []float32, gain float32) {
	if gain == 1 {
		return
	}
	for i := range buf {
		buf[i] *= gain
	}
}
