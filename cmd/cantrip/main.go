// Command cantrip inspects the cantrip filter designs and runs test tones
// through the stereo effects.
//
// Usage:
//
//	cantrip types
//	cantrip coeffs <type> [-f hz] [-q q] [-g db] [-r rate]
//	cantrip response <type> [-f hz] [-q q] [-g db] [-r rate] [--points n] [--fft n]
//	cantrip render <effect> [--rate hz] [--seconds s] [--tone hz] [-s name=value ...]
//
// Examples:
//
//	cantrip coeffs peaking -f 2500 -q 1.4 -g 6
//	cantrip response lowshelf -f 200 -g -9 --points 16
//	cantrip render compressor -s threshold=-30 -s ratio=8 --level 0
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/cantrip/internal/cli"
)

var version = "0.1.0"

// Globals is bound into every command's Run method.
type Globals struct {
	Out io.Writer
}

// CLI defines the command-line interface.
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information."`

	Types    TypesCmd    `cmd:"" help:"List the filter types."`
	Coeffs   CoeffsCmd   `cmd:"" help:"Print normalized biquad coefficients for a design."`
	Response ResponseCmd `cmd:"" help:"Compare the analytic and FFT-measured magnitude response."`
	Render   RenderCmd   `cmd:"" help:"Render a test tone through an effect and report levels."`
}

// versionFlag prints the styled version banner and exits.
type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong) error {
	cli.PrintVersion(app.Stdout, version)
	app.Exit(0)
	return nil
}

func newParser(c *CLI, opts ...kong.Option) (*kong.Kong, error) {
	base := []kong.Option{
		kong.Name("cantrip"),
		kong.Description("Real-time stereo DSP engines: filters, dynamics and delay"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	}
	return kong.New(c, append(base, opts...)...)
}

func main() {
	var c CLI
	parser, err := newParser(&c)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(&Globals{Out: os.Stdout}); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
