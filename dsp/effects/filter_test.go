package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/filter/biquad"
	"github.com/cwbudde/cantrip/internal/testutil"
)

func newTestFilter(t *testing.T, p FilterParams, opts ...core.ProcessorOption) *Filter {
	t.Helper()
	f, err := NewFilter(p, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFilter_UnityPassesThrough(t *testing.T) {
	p := DefaultFilterParams()
	p.Type = biquad.Unity
	f := newTestFilter(t, p)

	in := testutil.DeterministicSine(440, 44100, 0.5, 1024)
	left, right := testutil.Stereo(in)
	f.ProcessBlock(left, right)

	testutil.RequireSliceNearlyEqual(t, left, in, 1e-7)
	testutil.RequireSliceNearlyEqual(t, right, in, 1e-7)
}

func TestFilter_OutputGain(t *testing.T) {
	p := DefaultFilterParams()
	p.Type = biquad.Unity
	p.OutputGainDB = -6
	f := newTestFilter(t, p)

	left := testutil.DC(1, 16)
	f.ProcessBlock(left, nil)

	want := core.DBToLinear(-6)
	for i, v := range left {
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("sample %d: got %v want %v", i, v, want)
		}
	}
}

func TestFilter_LowPassSettlesToDC(t *testing.T) {
	f := newTestFilter(t, DefaultFilterParams())

	left, right := testutil.Stereo(testutil.DC(1, 4096))
	f.ProcessBlock(left, right)

	if got := left[len(left)-1]; math.Abs(float64(got-1)) > 1e-4 {
		t.Fatalf("lowpass DC: got %v want 1", got)
	}
	testutil.RequireExactlyEqual(t, right, left)
}

func TestFilter_MonoMatchesStereoLeft(t *testing.T) {
	p := DefaultFilterParams()
	p.Type = biquad.Peaking
	p.GainDB = 9
	in := testutil.DeterministicNoise(7, 0.5, 2048)

	stereo := newTestFilter(t, p)
	left, right := testutil.Stereo(in)
	for i := range right {
		right[i] = 0
	}
	stereo.ProcessBlock(left, right)

	mono := newTestFilter(t, p)
	monoBuf := append([]float32(nil), in...)
	mono.ProcessBlock(monoBuf, nil)

	testutil.RequireExactlyEqual(t, monoBuf, left)
}

func TestFilter_CoefficientsFollowParams(t *testing.T) {
	p := DefaultFilterParams()
	f := newTestFilter(t, p, core.WithSampleRate(48000))

	want := biquad.Derive(biquad.LowPass, 1000, 0.707, 0, 48000)
	if got := f.Coefficients(); got != want {
		t.Fatalf("coefficients: got %+v want %+v", got, want)
	}

	if err := f.SetType(biquad.HighShelf); err != nil {
		t.Fatal(err)
	}
	if err := f.SetParam("gain", 6); err != nil {
		t.Fatal(err)
	}
	want = biquad.Derive(biquad.HighShelf, 1000, 0.707, 6, 48000)
	if got := f.Coefficients(); got != want {
		t.Fatalf("after update: got %+v want %+v", got, want)
	}

	if err := f.SetSampleRate(96000); err != nil {
		t.Fatal(err)
	}
	want = biquad.Derive(biquad.HighShelf, 1000, 0.707, 6, 96000)
	if got := f.Coefficients(); got != want {
		t.Fatalf("after rate change: got %+v want %+v", got, want)
	}
}

func TestFilter_ResetMatchesFresh(t *testing.T) {
	p := DefaultFilterParams()
	p.Type = biquad.BandPass
	in := testutil.DeterministicNoise(3, 0.8, 512)

	used := newTestFilter(t, p)
	warm := append([]float32(nil), in...)
	used.ProcessBlock(warm, nil)
	used.Reset()

	got := append([]float32(nil), in...)
	used.ProcessBlock(got, nil)

	fresh := newTestFilter(t, p)
	want := append([]float32(nil), in...)
	fresh.ProcessBlock(want, nil)

	testutil.RequireExactlyEqual(t, got, want)
}

func TestFilter_RejectsInvalid(t *testing.T) {
	p := DefaultFilterParams()
	p.Q = 0
	if _, err := NewFilter(p); err == nil {
		t.Fatal("expected error for q=0")
	}

	f := newTestFilter(t, DefaultFilterParams())
	if err := f.SetSampleRate(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if err := f.SetType(biquad.FilterType(-1)); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestFilter_UnequalChannelLengths(t *testing.T) {
	f := newTestFilter(t, DefaultFilterParams())
	left := testutil.Ones(8)
	right := testutil.Ones(4)
	f.ProcessBlock(left, right)

	for i := 4; i < 8; i++ {
		if left[i] != 1 {
			t.Fatalf("left[%d] processed beyond the shorter channel: %v", i, left[i])
		}
	}
}

func BenchmarkFilterProcessBlock(b *testing.B) {
	f, err := NewFilter(DefaultFilterParams())
	if err != nil {
		b.Fatal(err)
	}
	left, right := testutil.Stereo(testutil.DeterministicNoise(1, 0.5, 512))

	b.ReportAllocs()
	b.SetBytes(int64(len(left) * 2 * 4))
	b.ResetTimer()
	for range b.N {
		f.ProcessBlock(left, right)
	}
}
