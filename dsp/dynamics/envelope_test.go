package dynamics

import (
	"math"
	"testing"
)

func TestTimeCoefficient(t *testing.T) {
	tests := []struct {
		ms, sr float32
	}{
		{ms: 10, sr: 48000},
		{ms: 0.1, sr: 44100},
		{ms: 1000, sr: 96000},
	}

	for _, tt := range tests {
		want := math.Exp(-1 / (float64(tt.ms) * 0.001 * float64(tt.sr)))
		got := TimeCoefficient(tt.ms, tt.sr)
		if math.Abs(float64(got)-want) > 1e-6 {
			t.Errorf("TimeCoefficient(%v, %v) = %v, want %v", tt.ms, tt.sr, got, want)
		}
		if got <= 0 || got >= 1 {
			t.Errorf("coefficient %v outside (0, 1)", got)
		}
	}
}

func TestEnvelopeFollower_AttackThenRelease(t *testing.T) {
	var e EnvelopeFollower
	e.SetTimes(1, 100, 48000)
	a, r := e.Coefficients()

	got := e.ProcessSample(-1)
	if want := 1 + a*(0-1); got != want {
		t.Fatalf("attack step = %v, want %v", got, want)
	}

	prev := got
	got = e.ProcessSample(0)
	if want := 0 + r*(prev-0); got != want {
		t.Fatalf("release step = %v, want %v", got, want)
	}
	if e.Level() != got {
		t.Fatalf("Level() = %v, want %v", e.Level(), got)
	}
}

func TestEnvelopeFollower_ConvergesToStep(t *testing.T) {
	var e EnvelopeFollower
	e.SetTimes(0.5, 50, 48000)

	var level float32
	for range 4800 {
		level = e.ProcessSample(0.5)
	}
	if math.Abs(float64(level)-0.5) > 1e-6 {
		t.Fatalf("level = %v, want 0.5", level)
	}
}

func TestEnvelopeFollower_FlushesToExactZero(t *testing.T) {
	var e EnvelopeFollower
	e.SetTimes(0.1, 0.1, 48000)

	for range 100 {
		e.ProcessSample(1)
	}
	for range 500 {
		e.ProcessSample(0)
	}
	if e.Level() != 0 {
		t.Fatalf("level = %g, want exact 0", e.Level())
	}
}

func TestEnvelopeFollower_ZeroValueTracksInstantly(t *testing.T) {
	var e EnvelopeFollower
	for _, x := range []float32{0.3, -0.8, 0.1} {
		want := x
		if want < 0 {
			want = -want
		}
		if got := e.ProcessSample(x); got != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEnvelopeFollower_ResetKeepsCoefficients(t *testing.T) {
	var e EnvelopeFollower
	e.SetTimes(5, 80, 44100)
	a0, r0 := e.Coefficients()

	e.ProcessSample(0.9)
	e.Reset()

	if e.Level() != 0 {
		t.Fatalf("level after reset = %v", e.Level())
	}
	if a, r := e.Coefficients(); a != a0 || r != r0 {
		t.Fatalf("coefficients changed by reset: (%v, %v) -> (%v, %v)", a0, r0, a, r)
	}
}

func TestEnvelopeFollower_ResetTwiceMatchesFresh(t *testing.T) {
	input := []float32{0.9, -0.4, 0.7, 0.1, -1, 0.3, 0, 0.05}

	var used EnvelopeFollower
	used.SetTimes(2, 30, 48000)
	for _, x := range input {
		used.ProcessSample(x)
	}
	used.Reset()
	used.Reset()

	var fresh EnvelopeFollower
	fresh.SetTimes(2, 30, 48000)
	for i, x := range input {
		a, b := used.ProcessSample(x), fresh.ProcessSample(x)
		if a != b {
			t.Fatalf("sample %d: reset=%v fresh=%v", i, a, b)
		}
	}
}
