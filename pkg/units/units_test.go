package units

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestResolvePreset(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{`1/8" = 1'`, 8},
		{`1/4" = 1'-0"`, 4},
		{`1" = 20'`, 20},
		{`1:100`, 100.0 / 12.0},
		{` 1 : 50 `, 50.0 / 12.0},
	}
	for _, tt := range tests {
		got, err := Resolve(PresetScale(tt.name))
		if err != nil {
			t.Errorf("Resolve(%q) unexpected error: %v", tt.name, err)
			continue
		}
		if math.Abs(got-tt.want) > epsilon {
			t.Errorf("Resolve(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveInvalidFallsBack(t *testing.T) {
	for _, s := range []DrawingScale{
		CustomScale(0),
		CustomScale(-3),
		CustomScale(math.NaN()),
		PresetScale("no such preset"),
	} {
		got, err := Resolve(s)
		if !errors.Is(err, ErrInvalidScale) {
			t.Errorf("Resolve(%+v) error = %v, want ErrInvalidScale", s, err)
		}
		if got != FallbackFeetPerInch {
			t.Errorf("Resolve(%+v) = %v, want fallback %v", s, got, FallbackFeetPerInch)
		}
		if FeetPerInch(s) != FallbackFeetPerInch {
			t.Errorf("FeetPerInch(%+v) did not fall back", s)
		}
	}
}

func TestPixelsToFeet(t *testing.T) {
	s := CustomScale(12)
	if got := PixelsToFeet(DrawingDPI, s); math.Abs(got-12) > epsilon {
		t.Errorf("one drawing inch at 12 ft/in = %v, want 12", got)
	}
	if got := PixelsToFeet(100, s); math.Abs(got-100.0/9.0) > epsilon {
		t.Errorf("PixelsToFeet(100) = %v, want %v", got, 100.0/9.0)
	}
}

func TestPixelsToFeetIsLinear(t *testing.T) {
	for _, s := range []DrawingScale{PresetScale(DefaultPreset), CustomScale(3.7), PresetScale("1:200")} {
		for _, d := range []float64{0.5, 1, 37, 1080, 12345.6} {
			single := PixelsToFeet(d, s)
			double := PixelsToFeet(2*d, s)
			if math.Abs(double-2*single) > 1e-9*math.Max(1, double) {
				t.Errorf("%v: PixelsToFeet(2*%v) = %v, want %v", s, d, double, 2*single)
			}
			if PixelsToFeet(d+1, s) <= single {
				t.Errorf("%v: PixelsToFeet not strictly increasing at %v", s, d)
			}
		}
	}
}

func TestFeetToPixelsRoundTrip(t *testing.T) {
	s := PresetScale(`1/4" = 1'`)
	px := 432.0
	if got := FeetToPixels(PixelsToFeet(px, s), s); math.Abs(got-px) > epsilon {
		t.Errorf("round trip = %v, want %v", got, px)
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		feet float64
		unit Unit
		want string
	}{
		{10, Feet, "10.00 ft"},
		{10, Inches, "120.0 in"},
		{10, Meters, "3.05 m"},
		{10, Centimeters, "304.8 cm"},
		{0.9259, Feet, "0.93 ft"},
		{math.Inf(1), Feet, "0.00 ft"},
	}
	for _, tt := range tests {
		if got := FormatLength(tt.feet, tt.unit); got != tt.want {
			t.Errorf("FormatLength(%v, %s) = %q, want %q", tt.feet, tt.unit, got, tt.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	for in, want := range map[string]Unit{"ft": Feet, "Inches": Inches, "m": Meters, "CM": Centimeters} {
		got, err := ParseUnit(in)
		if err != nil || got != want {
			t.Errorf("ParseUnit(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseUnit("furlong"); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestParseNumberCoercesGarbage(t *testing.T) {
	if got := ParseNumber(" 2.5 "); got != 2.5 {
		t.Errorf("ParseNumber(2.5) = %v", got)
	}
	for _, in := range []string{"", "abc", "NaN", "1e999"} {
		if got := ParseNumber(in); got != 0 {
			t.Errorf("ParseNumber(%q) = %v, want 0", in, got)
		}
	}
}
