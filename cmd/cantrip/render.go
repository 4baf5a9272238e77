package main

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/effects"
	"github.com/cwbudde/cantrip/dsp/filter/biquad"
	"github.com/cwbudde/cantrip/internal/cli"
)

// RenderCmd runs a stereo sine through one effect.
type RenderCmd struct {
	Effect     string             `arg:"" help:"Effect name: filter, compressor, delay or gain."`
	Rate       float64            `default:"48000" help:"Sample rate in Hz."`
	Seconds    float64            `default:"1" help:"Length of the test tone in seconds."`
	Tone       float64            `default:"440" help:"Test tone frequency in Hz."`
	Level      float64            `default:"-6" help:"Test tone level in dBFS."`
	Block      int                `default:"512" help:"Block size in frames."`
	FilterType string             `name:"filter-type" default:"lowpass" help:"Filter type when rendering the filter effect."`
	Set        map[string]float64 `short:"s" help:"Effect parameter as name=value (repeatable)."`
}

// Levels summarizes one channel.
type Levels struct {
	PeakDB float32
	RMSDB  float32
}

// Run renders the tone and prints input and output levels.
func (c *RenderCmd) Run(g *Globals) error {
	if c.Seconds <= 0 || math.IsNaN(c.Seconds) {
		return fmt.Errorf("seconds must be positive: %g", c.Seconds)
	}
	if c.Block < 1 {
		return errors.New("block size must be at least 1")
	}
	if c.Rate <= 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return fmt.Errorf("sample rate must be positive and finite: %g", c.Rate)
	}

	p, err := effects.DefaultRegistry().New(c.Effect, core.WithSampleRate(c.Rate))
	if err != nil {
		return err
	}
	if err := c.configure(p); err != nil {
		return err
	}

	n := int(c.Seconds * c.Rate)
	left := renderTone(c.Tone, c.Rate, core.DBToLinear(float32(c.Level)), n)
	right := make([]float32, n)
	core.CopyInto(right, left)
	in := measureLevels(left)

	for start := 0; start < n; start += c.Block {
		end := min(start+c.Block, n)
		p.ProcessBlock(left[start:end], right[start:end])
	}

	cli.PrintTitle(g.Out, fmt.Sprintf("%s: %g Hz tone at %g dBFS, %d frames", c.Effect, c.Tone, c.Level, n))
	printLevels(g, "Input", in)
	printLevels(g, "Output L", measureLevels(left))
	printLevels(g, "Output R", measureLevels(right))
	return nil
}

func (c *RenderCmd) configure(p effects.Processor) error {
	if f, ok := p.(*effects.Filter); ok {
		t, err := biquad.ParseFilterType(c.FilterType)
		if err != nil {
			return err
		}
		if err := f.SetType(t); err != nil {
			return err
		}
	}

	if len(c.Set) == 0 {
		return nil
	}
	pp, ok := p.(effects.Parameterized)
	if !ok {
		return fmt.Errorf("%s has no settable parameters", c.Effect)
	}

	names := make([]string, 0, len(c.Set))
	for name := range c.Set {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := pp.SetParam(name, c.Set[name]); err != nil {
			return err
		}
	}
	return nil
}

func renderTone(freqHz, sampleRate float64, amplitude float32, n int) []float32 {
	out := make([]float32, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * float32(math.Sin(step*float64(i)))
	}
	return out
}

func measureLevels(buf []float32) Levels {
	var peak float32
	var sum float64
	for _, v := range buf {
		peak = max(peak, float32(math.Abs(float64(v))))
		sum += float64(v) * float64(v)
	}

	var rms float64
	if len(buf) > 0 {
		rms = math.Sqrt(sum / float64(len(buf)))
	}
	return Levels{PeakDB: core.LevelToDB(peak), RMSDB: core.LevelToDB(float32(rms))}
}

func printLevels(g *Globals, label string, l Levels) {
	cli.PrintKeyValue(g.Out, label, fmt.Sprintf("peak %.2f dB, rms %.2f dB", l.PeakDB, l.RMSDB))
}
