package biquad

import "testing"

func TestFilterType_StringParse(t *testing.T) {
	types := FilterTypes()
	if len(types) != 24 {
		t.Fatalf("FilterTypes() has %d entries, want 24", len(types))
	}

	seen := make(map[string]FilterType)
	for _, ft := range types {
		name := ft.String()
		if prev, dup := seen[name]; dup {
			t.Fatalf("%v and %v share name %q", prev, ft, name)
		}
		seen[name] = ft

		got, err := ParseFilterType(name)
		if err != nil {
			t.Fatalf("ParseFilterType(%q): %v", name, err)
		}
		if got != ft {
			t.Fatalf("ParseFilterType(%q) = %v, want %v", name, got, ft)
		}
	}
}

func TestParseFilterType(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterType
		wantErr bool
	}{
		{in: "lowpass", want: LowPass},
		{in: "  HighShelf ", want: HighShelf},
		{in: "BW-LOWPASS", want: ButterworthLowPass},
		{in: "dcblock", want: DCBlock},
		{in: "", wantErr: true},
		{in: "lowpass2", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFilterType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFilterType(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFilterType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestFilterType_Invalid(t *testing.T) {
	if FilterType(-1).Valid() || numFilterTypes.Valid() {
		t.Fatal("out-of-range types reported valid")
	}
	if got := FilterType(42).String(); got != "FilterType(42)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestFilterType_UsesGain(t *testing.T) {
	for _, ft := range FilterTypes() {
		a := Derive(ft, 2000, 0.9, 4, 48000)
		b := Derive(ft, 2000, 0.9, 9, 48000)
		if changed := a != b; changed != ft.UsesGain() {
			t.Errorf("%v: UsesGain()=%v but gain change altered coefficients=%v", ft, ft.UsesGain(), changed)
		}
	}
}
