// Package delay provides the circular feedback delay line.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/cantrip/dsp/core"
)

// maxCapacity bounds the buffer length a Line may allocate (about 46 minutes
// at 96 kHz).
const maxCapacity = 1 << 28

// Line is a circular feedback delay line. It is not safe for concurrent
// use; Process never allocates.
type Line struct {
	buffer     []float32
	writePos   int
	sampleRate float64
}

// Capacity returns the buffer length needed for maxDelayMs at sampleRate:
// ceil(maxDelayMs*sampleRate/1000) + 1.
func Capacity(maxDelayMs, sampleRate float64) (int, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("delay sample rate must be positive and finite: %f", sampleRate)
	}
	if maxDelayMs < 0 || math.IsNaN(maxDelayMs) || math.IsInf(maxDelayMs, 0) {
		return 0, fmt.Errorf("delay max time must be non-negative and finite: %f", maxDelayMs)
	}

	n := math.Ceil(maxDelayMs*sampleRate/1000) + 1
	if n > maxCapacity {
		return 0, fmt.Errorf("delay buffer too large: %.0f samples", n)
	}

	return int(n), nil
}

// New returns a zeroed delay line long enough for maxDelayMs at sampleRate.
func New(maxDelayMs, sampleRate float64) (*Line, error) {
	n, err := Capacity(maxDelayMs, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Line{
		buffer:     make([]float32, n),
		sampleRate: sampleRate,
	}, nil
}

// SetSampleRate resizes the line for a new sample rate and maximum delay.
// The content is discarded and the write cursor returns to zero. On error
// the line is left unchanged.
func (l *Line) SetSampleRate(sampleRate, maxDelayMs float64) error {
	n, err := Capacity(maxDelayMs, sampleRate)
	if err != nil {
		return err
	}

	if cap(l.buffer) >= n {
		l.buffer = l.buffer[:n]
	} else {
		l.buffer = make([]float32, n)
	}
	l.sampleRate = sampleRate
	l.Reset()

	return nil
}

// Len returns the buffer length in samples.
func (l *Line) Len() int {
	return len(l.buffer)
}

// SampleRate returns the sample rate the line was sized for.
func (l *Line) SampleRate() float64 {
	return l.sampleRate
}

// DelaySamples converts delayMs to a whole-sample delay,
// floor(delayMs*sampleRate/1000) in float32 arithmetic, clamped to
// [0, Len()-1]. NaN maps to 0.
func (l *Line) DelaySamples(delayMs float32) int {
	d := delayMs * float32(l.sampleRate) / 1000
	limit := len(l.buffer) - 1

	switch {
	case !(d > 0):
		return 0
	case d >= float32(limit):
		return limit
	default:
		return int(d)
	}
}

// Process reads the sample delayMs behind the write cursor, writes
// input + delayed*feedback at the cursor, advances, and returns the delayed
// sample (before feedback is applied).
//
// A delay of zero reads the slot about to be overwritten, which holds the
// sample written Len() calls ago.
func (l *Line) Process(input, delayMs, feedback float32) float32 {
	size := len(l.buffer)
	delay := l.DelaySamples(delayMs)

	readPos := l.writePos - delay
	if readPos < 0 {
		readPos += size
	}

	delayed := l.buffer[readPos]
	l.buffer[l.writePos] = input + delayed*feedback

	l.writePos++
	if l.writePos >= size {
		l.writePos = 0
	}

	return delayed
}

// Reset zeroes the buffer and the write cursor.
func (l *Line) Reset() {
	core.Zero(l.buffer)
	l.writePos = 0
}
