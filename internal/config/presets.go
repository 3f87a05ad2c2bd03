package config

import (
	"math"
	"sort"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// The panel scenarios send a plane pulse down a narrow strip from y = 14
// towards a slab centred at y = 10 and measure what crosses y = 8.05.
var (
	slabGrid  = GridConfig{XMin: 0, XMax: 1, Nx: 11, YMin: 0, YMax: 20, Ny: 201}
	slabPulse = PulseConfig{Shape: "band-y", CenterY: 14, Width: math.Sqrt(0.05), Amplitude: 1}
	slabProbe = ProbeConfig{X: 0.5, Y: 8, FluxAxis: "y", FluxAt: 8.05}
)

func square(lo, hi float64, n int) GridConfig {
	return GridConfig{XMin: lo, XMax: hi, Nx: n, YMin: lo, YMax: hi, Ny: n}
}

var Presets = map[string]*Config{
	"band-x": {
		Name:     "band-x",
		Grid:     square(-5, 5, 101),
		Pulse:    PulseConfig{Shape: "band-x", Width: 0.25, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		Courant:  1,
		Duration: 2,
		Workers:  1,
		Probe:    ProbeConfig{X: 2, Y: 0},
	},
	"band-y": {
		Name:     "band-y",
		Grid:     square(-5, 5, 101),
		Pulse:    PulseConfig{Shape: "band-y", Width: 0.25, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		Courant:  1,
		Duration: 2,
		Workers:  1,
		Probe:    ProbeConfig{X: 0, Y: 2},
	},
	"gaussian": {
		Name:     "gaussian",
		Grid:     square(-5, 5, 101),
		Pulse:    PulseConfig{Shape: "gaussian", Width: 0.5, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		Courant:  0.9,
		Duration: 3,
		Workers:  1,
		Probe:    ProbeConfig{X: 2, Y: 2},
	},
	"pml": {
		Name:     "pml",
		Grid:     square(-50.5, 50.5, 101),
		Pulse:    PulseConfig{Shape: "gaussian", Width: 3, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		PML:      &fdtd.PML{Thickness: 10, Order: 2.82, Reflection: 1.5e-6, CellSize: 1.01},
		Courant:  1,
		Duration: 101,
		Workers:  1,
		Probe:    ProbeConfig{X: 30, Y: 0, FluxAxis: "x", FluxAt: 30.5},
	},
	"reflecting": {
		Name:     "reflecting",
		Grid:     square(-50.5, 50.5, 101),
		Pulse:    PulseConfig{Shape: "gaussian", Width: 3, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		Courant:  1,
		Duration: 101,
		Workers:  1,
		Probe:    ProbeConfig{X: 30, Y: 0, FluxAxis: "x", FluxAt: 30.5},
	},
	"conductive-panel": {
		Name:     "conductive-panel",
		Grid:     slabGrid,
		Pulse:    slabPulse,
		Medium:   MediumConfig{EpsR: 1},
		Panel:    &fdtd.Panel{CenterX: 0.5, CenterY: 10, WidthX: 2, WidthY: 0.3, EpsR: 1, Sigma: 6},
		Courant:  0.9,
		Duration: 10,
		Workers:  1,
		Probe:    slabProbe,
	},
	"chiral-panel": {
		Name:     "chiral-panel",
		Grid:     slabGrid,
		Pulse:    slabPulse,
		Medium:   MediumConfig{EpsR: 1},
		Panel:    &fdtd.Panel{CenterX: 0.5, CenterY: 10, WidthX: 2, WidthY: 0.3, EpsR: 2, Sigma: 2, Kappa: 1.5},
		Courant:  0.9,
		Duration: 10,
		Workers:  1,
		Probe:    slabProbe,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
