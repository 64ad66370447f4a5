package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/philipparndt/throwplan/pkg/geometry"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

const epsilon = 1e-9

func testUnits() []projector.Unit {
	a := projector.NewUnit(1, projector.DefaultDefaults())
	a.Positions.Plan = projector.Placement{Projector: geometry.NewPoint(0, 0), Screen: geometry.NewPoint(108, 0)}
	a.Positions.Section = projector.Placement{Projector: geometry.NewPoint(100, 100), Screen: geometry.NewPoint(316, 100)}
	a.Lumens = 12000
	a.ShiftV = 25

	b := projector.NewUnit(2, projector.DefaultDefaults())
	b.Positions.Plan = projector.Placement{Projector: geometry.NewPoint(50, 50), Screen: geometry.NewPoint(50, 50)}
	return []projector.Unit{a, b}
}

func TestSummarize(t *testing.T) {
	floor := geometry.NewPoint(100, 316)
	in := Input{
		Units:   testUnits(),
		Mode:    projector.Plan,
		Scale:   units.CustomScale(12),
		Floor:   &floor,
		Drawing: geometry.NewSize(400, 400),
	}
	got := Summarize(in)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}

	s := got[0]
	if s.ID != 1 || s.Lumens != 12000 || s.ShiftV != 25 {
		t.Errorf("summary = %+v", s)
	}
	// 108 px at 12 ft per inch is 12 ft
	if math.Abs(s.ThrowFeet-12) > epsilon {
		t.Errorf("ThrowFeet = %v, want 12", s.ThrowFeet)
	}
	if math.Abs(s.ImageWidthFeet-8) > epsilon {
		t.Errorf("ImageWidthFeet = %v, want 8", s.ImageWidthFeet)
	}
	// floor is 216 px below the section projector position: 24 ft
	if !s.HasHangingHeight || math.Abs(s.HangingHeightFeet-24) > epsilon {
		t.Errorf("hanging height = %v (%v), want 24", s.HangingHeightFeet, s.HasHangingHeight)
	}

	if got[1].BrightnessOK || got[1].HasImage() {
		t.Errorf("coincident unit should have no image: %+v", got[1])
	}
}

func TestSummarize_NoFloor(t *testing.T) {
	got := Summarize(Input{Units: testUnits(), Mode: projector.Plan, Scale: units.CustomScale(12), Drawing: geometry.NewSize(400, 400)})
	for _, s := range got {
		if s.HasHangingHeight {
			t.Errorf("unit %d has hanging height without a floor marker", s.ID)
		}
	}
}

func TestSummarize_NoDrawing(t *testing.T) {
	floor := geometry.NewPoint(100, 316)
	got := Summarize(Input{Units: testUnits(), Mode: projector.Plan, Scale: units.CustomScale(12), Floor: &floor})
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	for _, s := range got {
		if s.ThrowFeet != 0 || s.BrightnessOK || s.HasHangingHeight {
			t.Errorf("unit %d measured without a drawing: %+v", s.ID, s)
		}
	}
	if got[0].Lumens != 12000 {
		t.Errorf("lumens = %v, want 12000", got[0].Lumens)
	}
}

func TestSummaryLine(t *testing.T) {
	floor := geometry.NewPoint(100, 316)
	got := Summarize(Input{Units: testUnits(), Mode: projector.Plan, Scale: units.CustomScale(12), Floor: &floor, Drawing: geometry.NewSize(400, 400)})

	line := got[0].Line(units.Feet)
	for _, want := range []string{"#1", "throw 12.00", "ratio 1.50:1", "fL", "12000 lm", "v-shift +25%", "hanging height 24.00"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q does not contain %q", line, want)
		}
	}
	if line := got[1].Line(units.Feet); !strings.Contains(line, "N/A fL") {
		t.Errorf("line %q should report N/A brightness", line)
	}
	if n := len(Lines(got, units.Meters)); n != 2 {
		t.Errorf("Lines returned %d entries", n)
	}
}

func TestFitInside(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH float64
		wantW, wantH     float64
	}{
		{200, 100, 100, 100, 100, 50},
		{100, 200, 100, 100, 50, 100},
		{10, 10, 100, 50, 50, 50},
		{0, 10, 100, 100, 0, 0},
		{10, 10, 100, -5, 0, 0},
	}
	for _, tt := range tests {
		w, h := fitInside(tt.w, tt.h, tt.maxW, tt.maxH)
		if math.Abs(w-tt.wantW) > epsilon || math.Abs(h-tt.wantH) > epsilon {
			t.Errorf("fitInside(%v, %v, %v, %v) = %v, %v, want %v, %v", tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	if err := WritePNG(&buf, nil); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	doc := Document{
		Title: "Projector plan",
		Info:  []string{`Scale 1/8" = 1'`},
		Image: image.NewRGBA(image.Rect(0, 0, 40, 30)),
		Lines: []string{"#1 Projector 1"},
	}
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}
