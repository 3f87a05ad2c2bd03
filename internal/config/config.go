package config

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

const (
	DefaultCourant  = 0.5
	DefaultDuration = 2.0
	DefaultNodes    = 101
	DefaultWidth    = 0.25
)

// courantSlack allows a step computed as 0.5·√(dx²+dy²) to sit on the limit.
const courantSlack = 1e-9

// Config is one simulation scenario.
type Config struct {
	Name     string       `yaml:"name" json:"name"`
	Grid     GridConfig   `yaml:"grid" json:"grid"`
	Pulse    PulseConfig  `yaml:"pulse" json:"pulse"`
	Medium   MediumConfig `yaml:"medium" json:"medium"`
	Panel    *fdtd.Panel  `yaml:"panel,omitempty" json:"panel,omitempty"`
	PML      *fdtd.PML    `yaml:"pml,omitempty" json:"pml,omitempty"`
	Courant  float64      `yaml:"courant" json:"courant"`
	Dt       float64      `yaml:"dt" json:"dt"`
	Duration float64      `yaml:"duration" json:"duration"`
	Workers  int          `yaml:"workers" json:"workers"`
	Probe    ProbeConfig  `yaml:"probe" json:"probe"`
}

// GridConfig describes evenly spaced node axes.
type GridConfig struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	Nx   int     `yaml:"nx" json:"nx"`
	YMin float64 `yaml:"y_min" json:"y_min"`
	YMax float64 `yaml:"y_max" json:"y_max"`
	Ny   int     `yaml:"ny" json:"ny"`
}

// PulseConfig selects the initial Hz distribution.
type PulseConfig struct {
	Shape     string  `yaml:"shape" json:"shape"`
	CenterX   float64 `yaml:"center_x" json:"center_x"`
	CenterY   float64 `yaml:"center_y" json:"center_y"`
	Width     float64 `yaml:"width" json:"width"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
}

// MediumConfig is the uniform background.
type MediumConfig struct {
	EpsR  float64 `yaml:"eps_r" json:"eps_r"`
	Sigma float64 `yaml:"sigma" json:"sigma"`
}

// ProbeConfig places the point recorder and the optional flux line.
// FluxAxis "y" measures flow through an Ex row near y = FluxAt, "x"
// through an Ey column near x = FluxAt.
type ProbeConfig struct {
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	FluxAxis string  `yaml:"flux_axis,omitempty" json:"flux_axis,omitempty"`
	FluxAt   float64 `yaml:"flux_at,omitempty" json:"flux_at,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "gaussian",
		Grid: GridConfig{
			XMin: -5, XMax: 5, Nx: DefaultNodes,
			YMin: -5, YMax: 5, Ny: DefaultNodes,
		},
		Pulse:    PulseConfig{Shape: "gaussian", Width: DefaultWidth, Amplitude: 1},
		Medium:   MediumConfig{EpsR: 1},
		Courant:  DefaultCourant,
		Duration: DefaultDuration,
		Workers:  1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone deep-copies the optional sections.
func (c *Config) Clone() *Config {
	out := *c
	if c.Panel != nil {
		p := *c.Panel
		out.Panel = &p
	}
	if c.PML != nil {
		p := *c.PML
		out.PML = &p
	}
	return &out
}

// Axes returns the node coordinates.
func (c *Config) Axes() (x, y []float64) {
	x = linspace(c.Grid.XMin, c.Grid.XMax, c.Grid.Nx)
	y = linspace(c.Grid.YMin, c.Grid.YMax, c.Grid.Ny)
	return x, y
}

// BuildGrid validates the axes as a solver grid.
func (c *Config) BuildGrid() (*fdtd.Grid, error) {
	x, y := c.Axes()
	return fdtd.NewGrid(x, y)
}

// TimeStep is Dt when set, otherwise Courant times the stability limit.
func (c *Config) TimeStep(g *fdtd.Grid) float64 {
	if c.Dt > 0 {
		return c.Dt
	}
	return c.Courant * fdtd.CourantLimit(g)
}

// Validate checks everything that can be checked without running.
func (c *Config) Validate() error {
	if c.Grid.Nx < 2 || c.Grid.Ny < 2 {
		return fmt.Errorf("config: grid needs at least 2x2 nodes, got %dx%d", c.Grid.Nx, c.Grid.Ny)
	}
	if !(c.Grid.XMax > c.Grid.XMin) || !(c.Grid.YMax > c.Grid.YMin) {
		return fmt.Errorf("config: empty grid extent")
	}
	g, err := c.BuildGrid()
	if err != nil {
		return err
	}
	if c.Duration < 0 || math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("config: duration must be non-negative, got %g", c.Duration)
	}
	if c.Dt < 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Dt == 0 && !(c.Courant > 0) {
		return fmt.Errorf("config: either dt or courant must be positive")
	}
	dt := c.TimeStep(g)
	if limit := fdtd.CourantLimit(g); dt > limit*(1+courantSlack) {
		return fmt.Errorf("config: dt %g exceeds the Courant limit %g", dt, limit)
	}
	if c.Panel != nil {
		if limit := fdtd.CoupledLimit(g, c.Panel.Kappa); dt > limit*(1+courantSlack) {
			return fmt.Errorf("config: dt %g exceeds the limit %g for panel kappa %g", dt, limit, c.Panel.Kappa)
		}
	}
	if !(c.Pulse.Width > 0) {
		return fmt.Errorf("config: pulse width must be positive, got %g", c.Pulse.Width)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Workers)
	}
	if c.PML != nil {
		if err := c.PML.Validate(g); err != nil {
			return err
		}
	}
	switch c.Probe.FluxAxis {
	case "", "x", "y":
	default:
		return fmt.Errorf("config: flux axis must be x or y, got %q", c.Probe.FluxAxis)
	}
	return nil
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
