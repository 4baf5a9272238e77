package biquad

import "math"

// Fixed quality factors used by the variants that ignore the caller's q.
const (
	LinkwitzRileyQ = 0.5
	ButterworthQ   = math.Sqrt2 / 2

	DCBlockFrequency = 20.0
	DCBlockQ         = 0.707

	// CharacterMinGainDB is the gain floor of the character variants.
	CharacterMinGainDB = 3.0
)

// Derive computes normalized coefficients for filter type t.
//
// freqHz is clamped into [MinFrequency, NyquistFraction*sampleRate]. q is
// ignored by the fixed-Q variants and gainDB only affects the types for
// which [FilterType.UsesGain] reports true. sampleRate must be positive and
// q must be positive for the variants that use it. Unknown types return
// [UnityCoefficients]. Derive never fails.
func Derive(t FilterType, freqHz, q, gainDB, sampleRate float32) Coefficients {
	return derive(t, float64(freqHz), float64(q), float64(gainDB), float64(sampleRate))
}

func derive(t FilterType, freq, q, gainDB, sr float64) Coefficients {
	switch t {
	case LowPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return lowPass(ctx, ctx.Alpha)
	case HighPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return highPass(ctx, ctx.Alpha)
	case BandPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return FromRaw(ctx.Alpha, 0, -ctx.Alpha, 1+ctx.Alpha, -2*ctx.CosW0, 1-ctx.Alpha)
	case BandPassZeroDB:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return FromRaw(q*ctx.Alpha, 0, -q*ctx.Alpha, 1+ctx.Alpha, -2*ctx.CosW0, 1-ctx.Alpha)
	case Notch:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return FromRaw(1, -2*ctx.CosW0, 1, 1+ctx.Alpha, -2*ctx.CosW0, 1-ctx.Alpha)
	case AllPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return FromRaw(1-ctx.Alpha, -2*ctx.CosW0, 1+ctx.Alpha, 1+ctx.Alpha, -2*ctx.CosW0, 1-ctx.Alpha)
	case LowPass1Pole:
		k := onePoleK(freq, sr)
		return FromRaw(k, k, 0, 1+k, k-1, 0)
	case HighPass1Pole:
		k := onePoleK(freq, sr)
		return FromRaw(1, -1, 0, 1+k, k-1, 0)
	case Peaking:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return peaking(ctx, ctx.Alpha, ctx.A)
	case LowShelf:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return lowShelf(ctx, ctx.Alpha, ctx.A)
	case HighShelf:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return highShelf(ctx, ctx.Alpha, ctx.A)
	case Tilt:
		return tilt(NewFilterContext(freq, q, gainDB, sr), gainDB)
	case LinkwitzRileyLowPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return lowPass(ctx, ctx.AlphaWithQ(LinkwitzRileyQ))
	case LinkwitzRileyHighPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return highPass(ctx, ctx.AlphaWithQ(LinkwitzRileyQ))
	case ButterworthLowPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return lowPass(ctx, ctx.AlphaWithQ(ButterworthQ))
	case ButterworthHighPass:
		ctx := NewFilterContext(freq, q, gainDB, sr)
		return highPass(ctx, ctx.AlphaWithQ(ButterworthQ))
	case Warmth:
		return character(freq, gainDB, sr, 0.6, lowShelf)
	case Brightness:
		return character(freq, gainDB, sr, 0.7, highShelf)
	case Presence:
		return character(freq, gainDB, sr, 1.5, peaking)
	case Air:
		return character(freq, gainDB, sr, 0.5, highShelf)
	case SubBass:
		return character(freq, gainDB, sr, 0.8, lowShelf)
	case Vocal:
		return character(freq, gainDB, sr, 2.0, peaking)
	case DCBlock:
		ctx := NewFilterContext(DCBlockFrequency, DCBlockQ, 0, sr)
		return highPass(ctx, ctx.Alpha)
	default:
		return UnityCoefficients()
	}
}

type shapeFn func(ctx FilterContext, alpha, a float64) Coefficients

func character(freq, gainDB, sr, q float64, shape shapeFn) Coefficients {
	gainDB = math.Max(gainDB, CharacterMinGainDB)
	ctx := NewFilterContext(freq, q, gainDB, sr)
	return shape(ctx, ctx.Alpha, ctx.A)
}

func lowPass(ctx FilterContext, alpha float64) Coefficients {
	c := ctx.CosW0
	return FromRaw((1-c)/2, 1-c, (1-c)/2, 1+alpha, -2*c, 1-alpha)
}

func highPass(ctx FilterContext, alpha float64) Coefficients {
	c := ctx.CosW0
	return FromRaw((1+c)/2, -(1 + c), (1+c)/2, 1+alpha, -2*c, 1-alpha)
}

func peaking(ctx FilterContext, alpha, a float64) Coefficients {
	c := ctx.CosW0
	return FromRaw(1+alpha*a, -2*c, 1-alpha*a, 1+alpha/a, -2*c, 1-alpha/a)
}

func lowShelf(ctx FilterContext, alpha, a float64) Coefficients {
	b0, b1, b2, a0, a1, a2 := lowShelfRaw(ctx.CosW0, alpha, a)
	return FromRaw(b0, b1, b2, a0, a1, a2)
}

func highShelf(ctx FilterContext, alpha, a float64) Coefficients {
	b0, b1, b2, a0, a1, a2 := highShelfRaw(ctx.CosW0, alpha, a)
	return FromRaw(b0, b1, b2, a0, a1, a2)
}

func lowShelfRaw(c, alpha, a float64) (b0, b1, b2, a0, a1, a2 float64) {
	sq := 2 * math.Sqrt(a) * alpha
	b0 = a * ((a + 1) - (a-1)*c + sq)
	b1 = 2 * a * ((a - 1) - (a+1)*c)
	b2 = a * ((a + 1) - (a-1)*c - sq)
	a0 = (a + 1) + (a-1)*c + sq
	a1 = -2 * ((a - 1) + (a+1)*c)
	a2 = (a + 1) + (a-1)*c - sq
	return
}

func highShelfRaw(c, alpha, a float64) (b0, b1, b2, a0, a1, a2 float64) {
	sq := 2 * math.Sqrt(a) * alpha
	b0 = a * ((a + 1) + (a-1)*c + sq)
	b1 = -2 * a * ((a - 1) + (a+1)*c)
	b2 = a * ((a + 1) + (a-1)*c - sq)
	a0 = (a + 1) - (a-1)*c + sq
	a1 = 2 * ((a - 1) - (a+1)*c)
	a2 = (a + 1) - (a-1)*c - sq
	return
}

// tilt is a high shelf with shelf amplitude g = sqrt(10^(gainDB/20)) whose
// numerator is scaled by 1/g, pivoting the response around the corner:
// DC sits at -gainDB/2 and Nyquist at +gainDB/2.
func tilt(ctx FilterContext, gainDB float64) Coefficients {
	g := math.Sqrt(math.Pow(10, gainDB/20))
	b0, b1, b2, a0, a1, a2 := highShelfRaw(ctx.CosW0, ctx.Alpha, g)
	inv := 1 / g
	return FromRaw(b0*inv, b1*inv, b2*inv, a0, a1, a2)
}

// onePoleK is the bilinear prewarped gain tan(w0/2) of a one-pole design.
func onePoleK(freq, sr float64) float64 {
	f := clampFrequency(freq, sr)
	return math.Tan(math.Pi * f / sr)
}
