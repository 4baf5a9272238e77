package biquad

import (
	"fmt"
	"strings"
)

// FilterType identifies one closed-form coefficient derivation.
type FilterType int

const (
	// Basic two-pole responses.
	LowPass FilterType = iota
	HighPass
	BandPass
	BandPassZeroDB
	Notch
	AllPass

	// One-pole approximations, 6 dB/oct.
	LowPass1Pole
	HighPass1Pole

	// EQ shapes.
	Peaking
	LowShelf
	HighShelf
	Tilt

	// Fixed-Q crossover and maximally flat variants.
	LinkwitzRileyLowPass
	LinkwitzRileyHighPass
	ButterworthLowPass
	ButterworthHighPass

	// Character shelves and peaks with a 3 dB gain floor.
	Warmth
	Brightness
	Presence
	Air
	SubBass
	Vocal

	// DCBlock is a fixed 20 Hz high-pass.
	DCBlock
	// Unity passes the signal through unchanged.
	Unity

	numFilterTypes
)

var filterTypeNames = [numFilterTypes]string{
	LowPass:               "lowpass",
	HighPass:              "highpass",
	BandPass:              "bandpass",
	BandPassZeroDB:        "bandpass-0db",
	Notch:                 "notch",
	AllPass:               "allpass",
	LowPass1Pole:          "lowpass-1p",
	HighPass1Pole:         "highpass-1p",
	Peaking:               "peaking",
	LowShelf:              "lowshelf",
	HighShelf:             "highshelf",
	Tilt:                  "tilt",
	LinkwitzRileyLowPass:  "lr-lowpass",
	LinkwitzRileyHighPass: "lr-highpass",
	ButterworthLowPass:    "bw-lowpass",
	ButterworthHighPass:   "bw-highpass",
	Warmth:                "warmth",
	Brightness:            "brightness",
	Presence:              "presence",
	Air:                   "air",
	SubBass:               "subbass",
	Vocal:                 "vocal",
	DCBlock:               "dcblock",
	Unity:                 "unity",
}

// String returns the short name of the filter type.
func (t FilterType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
	return filterTypeNames[t]
}

// Valid reports whether t is one of the defined filter types.
func (t FilterType) Valid() bool {
	return t >= 0 && t < numFilterTypes
}

// UsesGain reports whether gainDB affects the derived coefficients.
func (t FilterType) UsesGain() bool {
	switch t {
	case Peaking, LowShelf, HighShelf, Tilt,
		Warmth, Brightness, Presence, Air, SubBass, Vocal:
		return true
	default:
		return false
	}
}

// FilterTypes returns all filter types in declaration order.
func FilterTypes() []FilterType {
	out := make([]FilterType, numFilterTypes)
	for i := range out {
		out[i] = FilterType(i)
	}
	return out
}

// ParseFilterType resolves a short name (case-insensitive) to a FilterType.
func ParseFilterType(name string) (FilterType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range filterTypeNames {
		if n == name {
			return FilterType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown filter type: %q", name)
}
