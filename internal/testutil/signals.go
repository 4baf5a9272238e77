package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic float32 sine wave. Phase is
// accumulated in float64.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float32 {
	return DC(1.0, n)
}

// Stereo returns two independent copies of mono, one per channel.
func Stereo(mono []float32) (left, right []float32) {
	left = append([]float32(nil), mono...)
	right = append([]float32(nil), mono...)
	return left, right
}

// Peak returns the largest absolute sample value.
func Peak(data []float32) float32 {
	var peak float32
	for _, v := range data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// RMS returns the root mean square of data, or 0 for an empty slice.
func RMS(data []float32) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for _, v := range data {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(data)))
}
