//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/filter/biquad/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "sse2",
		SIMDLevel:    cpu.SIMDSSE2,
		Priority:     10,
		ProcessBlock: processBlock,
	})
}

// processBlock is a 2x-unrolled scalar kernel. Coefficients and history are
// held in locals so the loop body stays in registers.
func processBlock(c registry.Coefficients, s registry.State, buf []float32) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		in0 := buf[i]
		out0 := core.FlushBelow(b0*in0+b1*x1+b2*x2-a1*y1-a2*y2, core.BiquadFlushThreshold)

		in1 := buf[i+1]
		out1 := core.FlushBelow(b0*in1+b1*in0+b2*x1-a1*out0-a2*y1, core.BiquadFlushThreshold)

		buf[i] = out0
		buf[i+1] = out1

		x2, x1 = in0, in1
		y2, y1 = out0, out1
	}

	if i < n {
		x := buf[i]
		y := core.FlushBelow(b0*x+b1*x1+b2*x2-a1*y1-a2*y2, core.BiquadFlushThreshold)
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
