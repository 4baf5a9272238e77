package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/cantrip/dsp/core"
	"github.com/cwbudde/cantrip/dsp/effects"
	"github.com/cwbudde/cantrip/dsp/filter/biquad"
)

// Errors returned by the analyzer.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two >= 2")
)

// Spectrum holds the linear magnitude of bins 0..FFTSize/2.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
}

// Frequency returns the center frequency of bin k in Hz.
func (s Spectrum) Frequency(k int) float64 {
	return float64(k) * s.SampleRate / float64(s.FFTSize)
}

// Bin returns the bin nearest to freqHz, clamped to the valid range.
func (s Spectrum) Bin(freqHz float64) int {
	k := int(math.Round(freqHz * float64(s.FFTSize) / s.SampleRate))
	return max(0, min(k, len(s.Magnitude)-1))
}

// MagnitudeDB returns bin k in dB. Empty bins are -Inf.
func (s Spectrum) MagnitudeDB(k int) float64 {
	m := s.Magnitude[k]
	if m <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(m)
}

// At returns the level in dB of the bin nearest to freqHz.
func (s Spectrum) At(freqHz float64) float64 {
	return s.MagnitudeDB(s.Bin(freqHz))
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTailTaper fades the last fraction of the analysis frame out with a
// half-Hann ramp. fraction is clamped to [0, 1]; 0 disables the taper.
func WithTailTaper(fraction float64) Option {
	return func(a *Analyzer) {
		if math.IsNaN(fraction) {
			return
		}
		a.tailTaper = max(0, min(fraction, 1))
	}
}

// Analyzer turns impulse responses into magnitude spectra. It reuses its
// plan and scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	sampleRate float64
	fftSize    int
	tailTaper  float64

	plan   *algofft.Plan[complex128]
	frame  []float64
	taper  []float64
	in     []complex128
	out    []complex128
	re, im []float64
	ir     []float32
}

// NewAnalyzer creates an analyzer for fftSize-point frames at sampleRate.
func NewAnalyzer(sampleRate float64, fftSize int, opts ...Option) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	a := &Analyzer{sampleRate: sampleRate, fftSize: fftSize}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	bins := fftSize/2 + 1
	a.plan = plan
	a.frame = make([]float64, fftSize)
	a.in = make([]complex128, fftSize)
	a.out = make([]complex128, fftSize)
	a.re = make([]float64, bins)
	a.im = make([]float64, bins)
	a.taper = tailTaper(fftSize, a.tailTaper)
	return a, nil
}

// SampleRate returns the analysis sample rate.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// FFTSize returns the frame length.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// Measure returns the magnitude spectrum of ir. Longer responses are
// truncated to the FFT size, shorter ones are zero-padded.
func (a *Analyzer) Measure(ir []float32) (Spectrum, error) {
	if len(ir) == 0 {
		return Spectrum{}, ErrEmptyIR
	}

	clear(a.frame)
	for i, v := range ir[:min(len(ir), a.fftSize)] {
		a.frame[i] = float64(v)
	}
	if a.taper != nil {
		vecmath.MulBlockInPlace(a.frame, a.taper)
	}

	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Spectrum{}, fmt.Errorf("response: forward fft: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	mag := make([]float64, len(a.re))
	vecmath.Magnitude(mag, a.re, a.im)

	return Spectrum{SampleRate: a.sampleRate, FFTSize: a.fftSize, Magnitude: mag}, nil
}

// MeasureCoefficients measures a fresh section running c.
func (a *Analyzer) MeasureCoefficients(c biquad.Coefficients) (Spectrum, error) {
	return a.Measure(biquad.NewSection(c).ImpulseResponse(a.fftSize))
}

// MeasureProcessor resets p, feeds it a mono impulse through its left
// channel and measures the result. p is reset again afterwards.
func (a *Analyzer) MeasureProcessor(p effects.Processor) (Spectrum, error) {
	p.Reset()
	defer p.Reset()

	a.ir = core.EnsureLen(a.ir, a.fftSize)
	core.Zero(a.ir)
	a.ir[0] = 1
	p.ProcessBlock(a.ir, nil)
	return a.Measure(a.ir)
}

// CaptureImpulse returns n samples of p's response to a unit impulse on
// the left channel, processed as mono.
func CaptureImpulse(p effects.Processor, n int) []float32 {
	if n <= 0 {
		return nil
	}
	buf := make([]float32, n)
	buf[0] = 1
	p.ProcessBlock(buf, nil)
	return buf
}

func tailTaper(size int, fraction float64) []float64 {
	m := int(math.Round(fraction * float64(size)))
	if m <= 0 {
		return nil
	}

	w := make([]float64, size)
	start := size - m
	for i := range w[:start] {
		w[i] = 1
	}
	for j := range m {
		w[start+j] = 0.5 * (1 + math.Cos(math.Pi*float64(j+1)/float64(m)))
	}
	return w
}
