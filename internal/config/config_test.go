package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/philipparndt/throwplan/pkg/projector"
	"github.com/philipparndt/throwplan/pkg/units"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults differ (-want +got):\n%s", diff)
	}
	if cfg.Input.PickRadiusMouse != 25 || cfg.Input.PickRadiusTouch != 35 || cfg.Input.HandlePickRadius != 70 {
		t.Errorf("pick radii = %+v", cfg.Input)
	}
	if cfg.View.MaxZoom != 4 || cfg.Input.DragMargin != 30 {
		t.Errorf("view=%+v input=%+v", cfg.View, cfg.Input)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "throwplan.yaml", `
view:
  max_zoom: 6
input:
  pick_radius_touch: 50
defaults:
  throw_ratio: 2.0
  lumens: 12000
  aspect: "16:10"
display:
  unit: meters
  scale: "1:100"
debug_level: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.View.MaxZoom != 6 || cfg.Input.PickRadiusTouch != 50 {
		t.Errorf("overrides not applied: %+v %+v", cfg.View, cfg.Input)
	}
	if cfg.Defaults.ThrowRatioMin != 2 || cfg.Defaults.Aspect != projector.Aspect16x10 {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.DisplayUnit() != units.Meters {
		t.Errorf("DisplayUnit = %v", cfg.DisplayUnit())
	}
	if cfg.Scale() != units.PresetScale("1:100") {
		t.Errorf("Scale = %+v", cfg.Scale())
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "throwplan.toml", `
debug_level = 3

[server]
addr = ":9000"

[defaults]
lens_type = "zoom"
throw_ratio = 1.6
throw_ratio_min = 1.3
throw_ratio_max = 2.1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.DebugLevel != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Defaults.Lens != projector.LensZoom || cfg.Defaults.ThrowRatioMax != 2.1 {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"dpi mismatch", "drawing:\n  dpi: 72\n"},
		{"bad unit", "display:\n  unit: furlongs\n"},
		{"bad scale", "display:\n  scale: \"0:0\"\n"},
		{"bad aspect", "defaults:\n  aspect: \"21:9\"\n"},
		{"bad lens", "defaults:\n  lens_type: anamorphic\n"},
		{"debug level", "debug_level: 9\n"},
		{"negative zoom", "view:\n  max_zoom: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "c.yaml", tt.content)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestParse_UnknownExtension(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
