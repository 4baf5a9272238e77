//nolint:funcorder
package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/cantrip/dsp/core"
	archregistry "github.com/cwbudde/cantrip/dsp/filter/biquad/internal/arch/registry"
)

// State is the Direct Form I history of one channel: the two previous
// inputs and the two previous outputs.
type State struct {
	X1, X2 float32
	Y1, Y2 float32
}

// Section is a single biquad filter with coefficients and one channel of
// history. It implements Direct Form I processing:
//
//	y = B0*x + B1*x1 + B2*x2 - A1*y1 - A2*y2
//
// The zero value is silent (all coefficients zero); use [NewSection] or
// [Section.Update] before processing.
type Section struct {
	Coefficients

	state State
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output. Outputs
// with magnitude below [core.BiquadFlushThreshold] are flushed to zero.
func (s *Section) ProcessSample(x float32) float32 {
	st := &s.state
	y := s.B0*x + s.B1*st.X1 + s.B2*st.X2 - s.A1*st.Y1 - s.A2*st.Y2
	y = core.FlushBelow(y, core.BiquadFlushThreshold)

	st.X2, st.X1 = st.X1, x
	st.Y2, st.Y1 = st.Y1, y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
// The result is identical to calling ProcessSample for every element.
func (s *Section) ProcessBlock(buf []float32) {
	s.state = processBlock(s.Coefficients, s.state, buf)
}

func processBlock(c Coefficients, st State, buf []float32) State {
	processBlockInitOnce.Do(initProcessBlockKernel)

	out := processBlockImpl(
		archregistry.Coefficients{B0: c.B0, B1: c.B1, B2: c.B2, A1: c.A1, A2: c.A2},
		archregistry.State{X1: st.X1, X2: st.X2, Y1: st.Y1, Y2: st.Y2},
		buf,
	)

	return State{X1: out.X1, X2: out.X2, Y1: out.Y1, Y2: out.Y2}
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// Update derives new coefficients and installs them. History is kept so
// parameter changes do not click.
func (s *Section) Update(t FilterType, freqHz, q, gainDB, sampleRate float32) {
	s.Coefficients = Derive(t, freqHz, q, gainDB, sampleRate)
}

// SetCoefficients installs c without touching the history.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// Reset clears the history to zero. Coefficients are kept.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns the current filter history.
func (s *Section) State() State {
	return s.state
}

// SetState restores a previously saved filter history.
func (s *Section) SetState(state State) {
	s.state = state
}
