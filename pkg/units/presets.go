package units

import "strings"

// PresetKind groups presets the way the scale selector shows them
type PresetKind string

const (
	KindArchitect   PresetKind = "architect"
	KindEngineering PresetKind = "engineering"
	KindMetric      PresetKind = "metric"
)

// Preset is a named drawing scale
type Preset struct {
	Name        string
	Kind        PresetKind
	FeetPerInch float64
}

// Presets holds every named scale. Metric ratios are stored pre-converted to
// feet per inch (1:N means N drawing inches per inch, N/12 feet per inch).
var Presets = []Preset{
	{`1/16" = 1'`, KindArchitect, 16},
	{`3/32" = 1'`, KindArchitect, 32.0 / 3.0},
	{`1/8" = 1'`, KindArchitect, 8},
	{`3/16" = 1'`, KindArchitect, 16.0 / 3.0},
	{`1/4" = 1'`, KindArchitect, 4},
	{`3/8" = 1'`, KindArchitect, 8.0 / 3.0},
	{`1/2" = 1'`, KindArchitect, 2},
	{`3/4" = 1'`, KindArchitect, 4.0 / 3.0},
	{`1" = 1'`, KindArchitect, 1},
	{`1-1/2" = 1'`, KindArchitect, 2.0 / 3.0},
	{`3" = 1'`, KindArchitect, 1.0 / 3.0},

	{`1" = 10'`, KindEngineering, 10},
	{`1" = 20'`, KindEngineering, 20},
	{`1" = 30'`, KindEngineering, 30},
	{`1" = 40'`, KindEngineering, 40},
	{`1" = 50'`, KindEngineering, 50},
	{`1" = 60'`, KindEngineering, 60},
	{`1" = 100'`, KindEngineering, 100},

	{`1:20`, KindMetric, 20.0 / 12.0},
	{`1:25`, KindMetric, 25.0 / 12.0},
	{`1:50`, KindMetric, 50.0 / 12.0},
	{`1:100`, KindMetric, 100.0 / 12.0},
	{`1:200`, KindMetric, 200.0 / 12.0},
	{`1:500`, KindMetric, 500.0 / 12.0},
}

// DefaultPreset is the scale used by new projects
const DefaultPreset = `1/8" = 1'`

var presetIndex = func() map[string]Preset {
	idx := make(map[string]Preset, len(Presets))
	for _, p := range Presets {
		idx[presetKey(p.Name)] = p
	}
	return idx
}()

// presetKey normalizes a preset name so lookups ignore spacing and the
// optional -0" suffix of architect scales.
func presetKey(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), ""))
	key = strings.TrimSuffix(key, `-0"`)
	return key
}

// LookupPreset finds a preset by name
func LookupPreset(name string) (Preset, bool) {
	p, ok := presetIndex[presetKey(name)]
	return p, ok
}

// PresetsOfKind returns the presets of one kind in table order
func PresetsOfKind(kind PresetKind) []Preset {
	var out []Preset
	for _, p := range Presets {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
