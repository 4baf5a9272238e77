package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/cantrip/internal/testutil"
)

// --- construction and validation ---

func TestCapacity(t *testing.T) {
	tests := []struct {
		name      string
		maxMs, sr float64
		want      int
		wantErr   bool
	}{
		{name: "100ms-at-1k", maxMs: 100, sr: 1000, want: 101},
		{name: "2s-at-44k1", maxMs: 2000, sr: 44100, want: 88201},
		{name: "fractional-rounds-up", maxMs: 1.5, sr: 1000, want: 3},
		{name: "zero-delay", maxMs: 0, sr: 48000, want: 1},
		{name: "zero-rate", maxMs: 100, sr: 0, wantErr: true},
		{name: "negative-rate", maxMs: 100, sr: -48000, wantErr: true},
		{name: "nan-rate", maxMs: 100, sr: math.NaN(), wantErr: true},
		{name: "negative-time", maxMs: -1, sr: 48000, wantErr: true},
		{name: "inf-time", maxMs: math.Inf(1), sr: 48000, wantErr: true},
		{name: "too-large", maxMs: 1e12, sr: 48000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Capacity(tt.maxMs, tt.sr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				if _, err := New(tt.maxMs, tt.sr); err == nil {
					t.Fatal("New accepted invalid configuration")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("Capacity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 101 {
		t.Fatalf("Len: got %d want 101", l.Len())
	}
	if l.SampleRate() != 1000 {
		t.Fatalf("SampleRate: got %v want 1000", l.SampleRate())
	}
}

// --- processing ---

func TestProcess_Impulse(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}

	if out := l.Process(1, 10, 0); out != 0 {
		t.Fatalf("first output = %v, want 0", out)
	}
	for i := range 9 {
		if out := l.Process(0, 10, 0); out != 0 {
			t.Fatalf("sample %d: got %v, want exact 0", i+1, out)
		}
	}
	if out := l.Process(0, 10, 0); out != 1 {
		t.Fatalf("sample 10: got %v, want 1", out)
	}
}

func TestProcess_Feedback(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}

	l.Process(1, 10, 0.5)
	for range 9 {
		l.Process(0, 10, 0.5)
	}
	if out := l.Process(0, 10, 0.5); out != 1 {
		t.Fatalf("first echo = %v, want 1", out)
	}

	for range 9 {
		l.Process(0, 10, 0.5)
	}
	if out := l.Process(0, 10, 0.5); math.Abs(float64(out)-0.5) > 1e-3 {
		t.Fatalf("second echo = %v, want 0.5", out)
	}
}

func TestProcess_ReturnsPreFeedbackValue(t *testing.T) {
	l, err := New(10, 1000)
	if err != nil {
		t.Fatal(err)
	}

	l.Process(0.8, 2, 0.9)
	l.Process(0, 2, 0.9)
	// The echo is returned unscaled; feedback only affects what is written.
	if out := l.Process(0.1, 2, 0.9); out != 0.8 {
		t.Fatalf("echo = %v, want 0.8", out)
	}
}

func TestReset(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}

	l.Process(1, 10, 0.5)
	l.Reset()

	for i := range 20 {
		if out := l.Process(0, 10, 0.5); out != 0 {
			t.Fatalf("sample %d after reset: got %v, want exact 0", i, out)
		}
	}
}

func TestReset_MatchesFresh(t *testing.T) {
	input := testutil.DeterministicNoise(7, 1, 300)

	used, _ := New(50, 1000)
	for _, x := range input {
		used.Process(x, 17, 0.6)
	}
	used.Reset()
	used.Reset()

	fresh, _ := New(50, 1000)
	for i, x := range input {
		a := used.Process(x, 17, 0.6)
		b := fresh.Process(x, 17, 0.6)
		if a != b {
			t.Fatalf("sample %d: reset=%v fresh=%v", i, a, b)
		}
	}
}

func TestDelaySamples_Clamp(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ms   float32
		want int
	}{
		{ms: 10, want: 10},
		{ms: 10.9, want: 10},
		{ms: 0, want: 0},
		{ms: -5, want: 0},
		{ms: float32(math.NaN()), want: 0},
		{ms: 5000, want: 100},
		{ms: float32(math.Inf(1)), want: 100},
	}
	for _, tt := range tests {
		if got := l.DelaySamples(tt.ms); got != tt.want {
			t.Errorf("DelaySamples(%v) = %d, want %d", tt.ms, got, tt.want)
		}
	}
}

func TestDelaySamples_FractionalMilliseconds(t *testing.T) {
	tests := []struct {
		ms, sr float32
		want   int
	}{
		{ms: 0.7, sr: 10000, want: 7},
		{ms: 0.9, sr: 40000, want: 36},
		{ms: 0.3, sr: 10000, want: 3},
	}
	for _, tt := range tests {
		l, err := New(10, float64(tt.sr))
		if err != nil {
			t.Fatal(err)
		}
		if got := l.DelaySamples(tt.ms); got != tt.want {
			t.Errorf("DelaySamples(%v) at %v Hz = %d, want %d", tt.ms, tt.sr, got, tt.want)
		}
	}
}

func TestProcess_FractionalDelayImpulse(t *testing.T) {
	l, err := New(10, 10000)
	if err != nil {
		t.Fatal(err)
	}

	l.Process(1, 0.7, 0)
	for i := range 6 {
		if out := l.Process(0, 0.7, 0); out != 0 {
			t.Fatalf("sample %d: got %v, want 0", i+1, out)
		}
	}
	if out := l.Process(0, 0.7, 0); out != 1 {
		t.Fatalf("sample 7: got %v, want 1", out)
	}
}

func TestProcess_OverlongDelayUsesFullBuffer(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}

	l.Process(1, 5000, 0)
	for i := range 99 {
		if out := l.Process(0, 5000, 0); out != 0 {
			t.Fatalf("sample %d: got %v, want 0", i+1, out)
		}
	}
	if out := l.Process(0, 5000, 0); out != 1 {
		t.Fatalf("sample 100: got %v, want 1", out)
	}
}

func TestProcess_ZeroDelayReadsOldestSlot(t *testing.T) {
	l, err := New(4, 1000) // 5 slots
	if err != nil {
		t.Fatal(err)
	}

	l.Process(1, 0, 0)
	for range 4 {
		if out := l.Process(0, 0, 0); out != 0 {
			t.Fatalf("got %v before wrap, want 0", out)
		}
	}
	if out := l.Process(0, 0, 0); out != 1 {
		t.Fatalf("got %v after wrap, want 1", out)
	}
}

func TestSetSampleRate(t *testing.T) {
	l, err := New(100, 1000)
	if err != nil {
		t.Fatal(err)
	}
	l.Process(1, 10, 0)
	l.Process(0.5, 10, 0)

	if err := l.SetSampleRate(2000, 50); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 101 || l.SampleRate() != 2000 {
		t.Fatalf("Len=%d SampleRate=%v, want 101 and 2000", l.Len(), l.SampleRate())
	}
	for i := range 101 {
		if out := l.Process(0, 50, 0); out != 0 {
			t.Fatalf("sample %d: stale content %v after SetSampleRate", i, out)
		}
	}

	if err := l.SetSampleRate(8000, 100); err != nil {
		t.Fatal(err)
	}
	if l.Len() != 801 {
		t.Fatalf("Len after growth = %d, want 801", l.Len())
	}

	if err := l.SetSampleRate(0, 100); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if l.Len() != 801 || l.SampleRate() != 8000 {
		t.Fatal("failed SetSampleRate modified the line")
	}
}

func BenchmarkProcess(b *testing.B) {
	l, err := New(2000, 48000)
	if err != nil {
		b.Fatal(err)
	}
	in := testutil.DeterministicNoise(3, 0.5, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	var y float32
	for i := 0; i < b.N; i++ {
		y = l.Process(in[i&1023], 250, 0.3)
	}
	_ = y
}
