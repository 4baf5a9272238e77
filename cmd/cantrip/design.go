package main

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/cantrip/dsp/filter/biquad"
	"github.com/cwbudde/cantrip/internal/cli"
	"github.com/cwbudde/cantrip/measure/response"
)

// DesignFlags selects one biquad design.
type DesignFlags struct {
	Type string  `arg:"" help:"Filter type (see 'cantrip types')."`
	Freq float64 `short:"f" default:"1000" help:"Corner or center frequency in Hz."`
	Q    float64 `short:"q" default:"0.707" help:"Quality factor."`
	Gain float64 `short:"g" default:"0" help:"Shape gain in dB for shelves, peaks, tilt and character types."`
	Rate float64 `short:"r" default:"48000" help:"Sample rate in Hz."`
}

func (d DesignFlags) derive() (biquad.FilterType, biquad.Coefficients, error) {
	t, err := biquad.ParseFilterType(d.Type)
	if err != nil {
		return 0, biquad.Coefficients{}, err
	}
	if d.Rate <= 0 || math.IsNaN(d.Rate) || math.IsInf(d.Rate, 0) {
		return 0, biquad.Coefficients{}, fmt.Errorf("sample rate must be positive and finite: %g", d.Rate)
	}
	if d.Q <= 0 || math.IsNaN(d.Q) {
		return 0, biquad.Coefficients{}, fmt.Errorf("q must be positive: %g", d.Q)
	}

	c := biquad.Derive(t, float32(d.Freq), float32(d.Q), float32(d.Gain), float32(d.Rate))
	return t, c, nil
}

// TypesCmd lists the filter types.
type TypesCmd struct{}

// Run prints every filter type and whether it uses the gain parameter.
func (TypesCmd) Run(g *Globals) error {
	cli.PrintTitle(g.Out, "Filter types")

	tw := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, cli.HeaderStyle.Render("NAME")+"\t"+cli.HeaderStyle.Render("GAIN"))
	for _, t := range biquad.FilterTypes() {
		gain := "-"
		if t.UsesGain() {
			gain = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\n", t, gain)
	}
	return tw.Flush()
}

// CoeffsCmd prints the coefficients of one design.
type CoeffsCmd struct {
	Design DesignFlags `embed:""`
}

// Run prints the normalized coefficients, stability and edge gains.
func (c *CoeffsCmd) Run(g *Globals) error {
	t, coeffs, err := c.Design.derive()
	if err != nil {
		return err
	}

	cli.PrintTitle(g.Out, fmt.Sprintf("%s @ %g Hz, Q %g, %g dB (fs %g)", t, c.Design.Freq, c.Design.Q, c.Design.Gain, c.Design.Rate))
	cli.PrintKeyValue(g.Out, "b0", fmt.Sprintf("%.9g", coeffs.B0))
	cli.PrintKeyValue(g.Out, "b1", fmt.Sprintf("%.9g", coeffs.B1))
	cli.PrintKeyValue(g.Out, "b2", fmt.Sprintf("%.9g", coeffs.B2))
	cli.PrintKeyValue(g.Out, "a1", fmt.Sprintf("%.9g", coeffs.A1))
	cli.PrintKeyValue(g.Out, "a2", fmt.Sprintf("%.9g", coeffs.A2))
	cli.PrintKeyValue(g.Out, "Stable", coeffs.IsStable())
	cli.PrintKeyValue(g.Out, "Pole radius", fmt.Sprintf("%.6f", coeffs.PoleRadius()))
	cli.PrintKeyValue(g.Out, "DC gain", formatDB(coeffs.DCGain()))
	cli.PrintKeyValue(g.Out, "Nyquist gain", formatDB(coeffs.NyquistGain()))
	return nil
}

// ResponseCmd compares analytic and measured magnitude.
type ResponseCmd struct {
	Design DesignFlags `embed:""`
	Points int         `default:"10" help:"Number of log-spaced frequencies to print."`
	FFT    int         `name:"fft" default:"8192" help:"FFT size for the measured response (power of two)."`
	Floor  float64     `default:"-60" help:"Ignore bins below this analytic level (dB) when comparing."`
}

// Run prints a table of analytic and measured levels and the worst
// deviation across all bins above the floor.
func (c *ResponseCmd) Run(g *Globals) error {
	t, coeffs, err := c.Design.derive()
	if err != nil {
		return err
	}
	if c.Points < 1 {
		return errors.New("points must be at least 1")
	}

	a, err := response.NewAnalyzer(c.Design.Rate, c.FFT)
	if err != nil {
		return err
	}
	s, err := a.MeasureCoefficients(coeffs)
	if err != nil {
		return err
	}

	cli.PrintTitle(g.Out, fmt.Sprintf("%s response (fs %g, %d-point FFT)", t, c.Design.Rate, c.FFT))

	tw := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Hz\tanalytic dB\tmeasured dB\t")
	for _, f := range response.LogFrequencies(20, math.Min(20000, 0.49*c.Design.Rate), c.Points) {
		bin := s.Bin(f)
		binHz := s.Frequency(bin)
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t\n", binHz, formatLevel(coeffs.MagnitudeDB(binHz, c.Design.Rate)), formatLevel(s.MagnitudeDB(bin)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	d := response.CompareAnalytic(s, coeffs, c.Floor)
	fmt.Fprintln(g.Out)
	cli.PrintKeyValue(g.Out, "Bins compared", d.Bins)
	cli.PrintKeyValue(g.Out, "Max deviation", fmt.Sprintf("%.5f dB at %.1f Hz", d.MaxDB, d.AtHz))
	return nil
}

func formatDB(gain float64) string {
	linear := math.Abs(gain)
	if linear == 0 {
		return "-inf dB"
	}
	return fmt.Sprintf("%.2f dB", 20*math.Log10(linear))
}

func formatLevel(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", db)
}
