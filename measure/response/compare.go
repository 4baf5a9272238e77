package response

import (
	"math"

	"github.com/cwbudde/cantrip/dsp/filter/biquad"
)

// Deviation summarizes the largest gap between a measured spectrum and
// an analytic response.
type Deviation struct {
	MaxDB float64 // largest absolute difference in dB
	AtHz  float64 // frequency of the largest difference
	Bins  int     // number of bins compared
}

// CompareAnalytic compares every bin of s whose analytic level is at
// least floorDB against c.MagnitudeDB.
func CompareAnalytic(s Spectrum, c biquad.Coefficients, floorDB float64) Deviation {
	var d Deviation
	for k := range s.Magnitude {
		f := s.Frequency(k)
		want := c.MagnitudeDB(f, s.SampleRate)
		if want < floorDB {
			continue
		}

		d.Bins++
		diff := math.Abs(s.MagnitudeDB(k) - want)
		if diff > d.MaxDB || math.IsNaN(diff) {
			d.MaxDB = diff
			d.AtHz = f
		}
	}
	return d
}

// LogFrequencies returns n frequencies spaced logarithmically from lo to
// hi inclusive. n == 1 yields just lo.
func LogFrequencies(lo, hi float64, n int) []float64 {
	if n < 1 || lo <= 0 || hi <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi
	return out
}
