package dynamics

// Compressor is a stereo-linked feed-forward gain computer. Its only
// mutable state is the envelope follower.
//
// Callers must keep ratio >= 1 and call SetTimes with a positive sample
// rate before processing; neither is checked on the per-sample path.
type Compressor struct {
	env EnvelopeFollower
}

// NewCompressor returns a compressor with attack and release already set.
func NewCompressor(attackMs, releaseMs, sampleRate float32) *Compressor {
	c := &Compressor{}
	c.SetTimes(attackMs, releaseMs, sampleRate)
	return c
}

// SetTimes sets the detector attack and release times.
func (c *Compressor) SetTimes(attackMs, releaseMs, sampleRate float32) {
	c.env.SetTimes(attackMs, releaseMs, sampleRate)
}

// Reset clears the detector envelope.
func (c *Compressor) Reset() {
	c.env.Reset()
}

// Envelope returns the current detector level (linear).
func (c *Compressor) Envelope() float32 {
	return c.env.Level()
}

// ProcessStereo advances the detector with max(|left|, |right|) and returns
// the linear gain in (0, 1] to apply to both channels.
func (c *Compressor) ProcessStereo(left, right, thresholdDB, ratio, kneeDB float32) float32 {
	if left < 0 {
		left = -left
	}
	if right < 0 {
		right = -right
	}

	detect := left
	if right > detect {
		detect = right
	}

	return c.gainFor(detect, thresholdDB, ratio, kneeDB)
}

// ProcessSample is the mono form of ProcessStereo.
func (c *Compressor) ProcessSample(x, thresholdDB, ratio, kneeDB float32) float32 {
	if x < 0 {
		x = -x
	}

	return c.gainFor(x, thresholdDB, ratio, kneeDB)
}

func (c *Compressor) gainFor(detect, thresholdDB, ratio, kneeDB float32) float32 {
	level := c.env.ProcessSample(detect)
	inputDB := levelToDB(level)

	return dbToGain(GainReduction(inputDB, thresholdDB, ratio, kneeDB))
}

// GainReduction returns the gain change in dB (always <= 0) for a detector
// level of inputDB.
//
// With halfKnee = kneeDB/2 and kneeDB > 0, levels strictly inside
// (threshold-halfKnee, threshold+halfKnee) follow the quadratic
//
//	(1/ratio - 1) * x^2 / (2*kneeDB),  x = inputDB - threshold + halfKnee
//
// Levels at or above threshold+halfKnee are reduced by
// excess/ratio - excess with excess = inputDB - threshold. Everything else
// passes unchanged. The two regions meet continuously at the upper knee edge.
func GainReduction(inputDB, thresholdDB, ratio, kneeDB float32) float32 {
	halfKnee := kneeDB / 2

	switch {
	case kneeDB > 0 && inputDB > thresholdDB-halfKnee && inputDB < thresholdDB+halfKnee:
		x := inputDB - thresholdDB + halfKnee
		return (1/ratio - 1) * x * x / (2 * kneeDB)
	case inputDB >= thresholdDB+halfKnee:
		excess := inputDB - thresholdDB
		return excess/ratio - excess
	default:
		return 0
	}
}

// StaticCurve returns the steady-state output level in dB for a constant
// input of inputDB, i.e. inputDB + GainReduction(inputDB, ...).
func StaticCurve(inputDB, thresholdDB, ratio, kneeDB float32) float32 {
	return inputDB + GainReduction(inputDB, thresholdDB, ratio, kneeDB)
}
