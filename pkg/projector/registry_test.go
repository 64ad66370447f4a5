package projector

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/philipparndt/throwplan/pkg/geometry"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	if r.SelectedID() != 1 {
		t.Errorf("SelectedID = %d, want 1", r.SelectedID())
	}
	u := r.Selected()
	want := Placement{Projector: DefaultProjector, Screen: DefaultScreen}
	if u.Positions.Plan != want || u.Positions.Section != want {
		t.Errorf("default positions = %+v", u.Positions)
	}
}

func TestAddOffsetsAndSelects(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	id := r.Add()
	if id != 2 {
		t.Fatalf("Add = %d, want 2", id)
	}
	if r.SelectedID() != 2 {
		t.Errorf("new unit not selected")
	}
	u, _ := r.Get(2)
	wantProjector := DefaultProjector.Add(geometry.NewPoint(50, 0))
	if u.Positions.Plan.Projector != wantProjector || u.Positions.Section.Projector != wantProjector {
		t.Errorf("projector positions = %+v, want %v", u.Positions, wantProjector)
	}
	if u.Positions.Plan.Screen != DefaultScreen.Add(geometry.NewPoint(50, 0)) {
		t.Errorf("screen position = %v", u.Positions.Plan.Screen)
	}
}

func TestAddUsesMaxIDPlusOne(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	r.Add() // 2
	r.Add() // 3
	r.Remove(2)
	if id := r.Add(); id != 4 {
		t.Errorf("Add after removing 2 = %d, want 4", id)
	}
}

func TestRemoveKeepsFloor(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	if r.Remove(1) {
		t.Error("removing the only unit should be rejected")
	}
	if r.Len() != 1 || r.SelectedID() != 1 {
		t.Errorf("registry changed: len=%d selected=%d", r.Len(), r.SelectedID())
	}
}

func TestRemoveSelectedFallsBackToFirst(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	r.Add()
	r.Add()
	r.Select(1)
	r.Remove(1)
	if r.SelectedID() != 2 {
		t.Errorf("SelectedID = %d, want first remaining 2", r.SelectedID())
	}

	r.Select(3)
	r.Remove(2)
	if r.SelectedID() != 3 {
		t.Errorf("removing an unselected unit changed selection to %d", r.SelectedID())
	}
}

func TestFloorInvariantRandomSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewRegistry(DefaultDefaults())
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			r.Add()
		case 1:
			units := r.Units()
			r.Remove(units[rng.Intn(len(units))].ID)
		case 2:
			r.Remove(rng.Intn(10))
		}
		if r.Len() < 1 {
			t.Fatalf("step %d: registry empty", i)
		}
		if _, ok := r.Get(r.SelectedID()); !ok {
			t.Fatalf("step %d: selection %d does not exist", i, r.SelectedID())
		}
	}
}

func TestSelectUnknownIgnored(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	if r.Select(42) {
		t.Error("Select(42) should fail")
	}
	if r.SelectedID() != 1 {
		t.Errorf("SelectedID = %d", r.SelectedID())
	}
}

func TestUpdateSelectedOnlyTouchesSelected(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	r.Add()
	before, _ := r.Get(1)

	r.UpdateSelected(UnitPatch{Lumens: Float(12000), ShiftV: Float(250)})

	after, _ := r.Get(1)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("unselected unit changed (-before +after):\n%s", diff)
	}
	sel := r.Selected()
	if sel.Lumens != 12000 {
		t.Errorf("Lumens = %v", sel.Lumens)
	}
	if sel.ShiftV != MaxLensShift {
		t.Errorf("ShiftV = %v, want clamped to %v", sel.ShiftV, MaxLensShift)
	}
}

func TestLensInvariants(t *testing.T) {
	u := NewUnit(1, DefaultDefaults())
	UnitPatch{ThrowRatio: Float(2.1)}.Apply(&u)
	if u.ThrowRatioMin != 2.1 || u.ThrowRatioMax != 2.1 {
		t.Errorf("fixed lens range = [%v,%v], want [2.1,2.1]", u.ThrowRatioMin, u.ThrowRatioMax)
	}

	zoom := LensZoom
	UnitPatch{Lens: &zoom, ThrowRatioMin: Float(2.5), ThrowRatioMax: Float(1.5)}.Apply(&u)
	if u.ThrowRatioMin != 1.5 || u.ThrowRatioMax != 2.5 {
		t.Errorf("zoom range = [%v,%v], want swapped to [1.5,2.5]", u.ThrowRatioMin, u.ThrowRatioMax)
	}
	UnitPatch{ThrowRatio: Float(9)}.Apply(&u)
	if u.ThrowRatio != 2.5 {
		t.Errorf("ThrowRatio = %v, want clamped to 2.5", u.ThrowRatio)
	}

	UnitPatch{YawDegrees: Float(-80)}.Apply(&u)
	if u.YawDegrees != -MaxYaw {
		t.Errorf("YawDegrees = %v", u.YawDegrees)
	}
}

func TestSwitchToZoomGetsRange(t *testing.T) {
	u := NewUnit(1, DefaultDefaults())
	zoom := LensZoom
	UnitPatch{Lens: &zoom}.Apply(&u)
	if !(u.ThrowRatioMin < u.ThrowRatio && u.ThrowRatio < u.ThrowRatioMax) {
		t.Errorf("zoom range [%v,%v] does not bracket %v", u.ThrowRatioMin, u.ThrowRatioMax, u.ThrowRatio)
	}
}

func TestColorsFollowPosition(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	for i := 0; i < 9; i++ {
		r.Add()
	}
	units := r.Units()
	if r.Color(units[0].ID) != r.Color(units[PaletteSize].ID) {
		t.Error("palette should wrap after PaletteSize units")
	}
	if r.Color(units[0].ID) == r.Color(units[1].ID) {
		t.Error("neighbours share a color")
	}

	second := r.Color(units[1].ID)
	r.Remove(units[0].ID)
	if r.Color(units[1].ID) != ColorAt(0) || second == ColorAt(0) {
		t.Error("color did not follow the new list position")
	}
}

func TestReplaceValidatesBeforeMutating(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	r.Add()
	before := r.Units()

	bad := []Unit{NewUnit(1, DefaultDefaults()), NewUnit(1, DefaultDefaults())}
	if err := r.Replace(bad, 1); err == nil {
		t.Fatal("duplicate ids accepted")
	}
	if err := r.Replace(nil, 1); err != ErrEmptyRegistry {
		t.Errorf("Replace(nil) = %v", err)
	}
	if diff := cmp.Diff(before, r.Units()); diff != "" {
		t.Errorf("registry mutated by failed Replace:\n%s", diff)
	}

	if err := r.Replace([]Unit{NewUnit(5, DefaultDefaults())}, 9); err != nil {
		t.Fatal(err)
	}
	if r.SelectedID() != 5 {
		t.Errorf("selection = %d, want fallback 5", r.SelectedID())
	}
}

func TestViewsAreIndependent(t *testing.T) {
	r := NewRegistry(DefaultDefaults())
	r.SetPoint(1, Plan, HandleProjector, geometry.NewPoint(300, 300))
	u := r.Selected()
	if u.Positions.Section.Projector != DefaultProjector {
		t.Errorf("section projector moved to %v", u.Positions.Section.Projector)
	}
	if u.Point(Plan, HandleProjector) != geometry.NewPoint(300, 300) {
		t.Errorf("plan projector = %v", u.Point(Plan, HandleProjector))
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewMode
		wantErr bool
	}{
		{"plan", Plan, false},
		{" Top ", Plan, false},
		{"section", Section, false},
		{"elevation", Section, false},
		{"isometric", Plan, true},
		{"", Plan, true},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseViewMode(%q) = %s, %v", tt.in, got, err)
		}
	}
}
