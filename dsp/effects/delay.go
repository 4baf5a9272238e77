package effects

import (
	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/delay"
)

var delaySpecs = []ParamSpec{
	{Name: "time", Unit: "ms", Min: 1, Max: 2000, Default: 250},
	{Name: "feedback", Unit: "%", Min: 0, Max: 100, Default: 30},
	{Name: "mix", Unit: "%", Min: 0, Max: 100, Default: 50},
}

// DelayParams configures a Delay.
type DelayParams struct {
	TimeMs          float32
	FeedbackPercent float32
	MixPercent      float32
}

// DefaultDelayParams returns 250 ms, 30% feedback, 50% mix.
func DefaultDelayParams() DelayParams {
	return DelayParams{
		TimeMs:          float32(delaySpecs[0].Default),
		FeedbackPercent: float32(delaySpecs[1].Default),
		MixPercent:      float32(delaySpecs[2].Default),
	}
}

// Validate reports the first out-of-range field.
func (p DelayParams) Validate() error {
	for i, v := range []float32{p.TimeMs, p.FeedbackPercent, p.MixPercent} {
		if err := delaySpecs[i].check32("delay", v); err != nil {
			return err
		}
	}
	return nil
}

// Clamped returns p with every field limited to its range.
func (p DelayParams) Clamped() DelayParams {
	p.TimeMs = delaySpecs[0].clamp32(p.TimeMs)
	p.FeedbackPercent = delaySpecs[1].clamp32(p.FeedbackPercent)
	p.MixPercent = delaySpecs[2].clamp32(p.MixPercent)
	return p
}

// Delay is a stereo feedback echo with one delay line per channel and a
// per-sample dry/wet mix. Output below core.OutputFlushThreshold is
// flushed to zero.
type Delay struct {
	params     DelayParams
	maxDelayMs float64
	lines      [2]*delay.Line
}

// NewDelay returns a Delay sized for the configured maximum delay
// (core.WithMaxDelayMs, 2000 ms by default).
func NewDelay(params DelayParams, opts ...core.ProcessorOption) (*Delay, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if err := validateSampleRate(cfg.SampleRate); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	d := &Delay{params: params, maxDelayMs: cfg.MaxDelayMs}
	for ch := range d.lines {
		line, err := delay.New(cfg.MaxDelayMs, cfg.SampleRate)
		if err != nil {
			return nil, err
		}
		d.lines[ch] = line
	}
	return d, nil
}

// Params returns the current parameters.
func (d *Delay) Params() DelayParams {
	return d.params
}

// SetParams validates and installs p.
func (d *Delay) SetParams(p DelayParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.params = p
	return nil
}

// ParamSpecs lists the numeric parameters.
func (d *Delay) ParamSpecs() []ParamSpec {
	return append([]ParamSpec(nil), delaySpecs...)
}

// SetParam sets one numeric parameter by name.
func (d *Delay) SetParam(name string, value float64) error {
	p := d.params
	switch name {
	case "time":
		p.TimeMs = float32(value)
	case "feedback":
		p.FeedbackPercent = float32(value)
	case "mix":
		p.MixPercent = float32(value)
	default:
		return unknownParam("delay", name)
	}
	return d.SetParams(p)
}

// ProcessBlock applies the echo to left and right in place.
func (d *Delay) ProcessBlock(left, right []float32) {
	n := blockLen(left, right)
	d.processChannel(d.lines[0], left[:n])
	if right != nil {
		d.processChannel(d.lines[1], right[:n])
	}
}

func (d *Delay) processChannel(line *delay.Line, buf []float32) {
	timeMs := d.params.TimeMs
	feedback := d.params.FeedbackPercent / 100
	mix := d.params.MixPercent / 100
	dryAmt := 1 - mix

	for i, dry := range buf {
		wet := line.Process(dry, timeMs, feedback)
		buf[i] = core.FlushBelow(dry*dryAmt+wet*mix, core.OutputFlushThreshold)
	}
}

// Reset clears both delay lines.
func (d *Delay) Reset() {
	for _, l := range d.lines {
		l.Reset()
	}
}

// SetSampleRate resizes both delay lines. Content is discarded.
func (d *Delay) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}
	for _, l := range d.lines {
		if err := l.SetSampleRate(sampleRate, d.maxDelayMs); err != nil {
			return err
		}
	}
	return nil
}
