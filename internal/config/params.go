package config

import (
	"fmt"
	"sort"
)

type paramSetter func(c *Config, v float64) error

func panelParam(set func(c *Config, v float64)) paramSetter {
	return func(c *Config, v float64) error {
		if c.Panel == nil {
			return fmt.Errorf("config: scenario %q has no panel", c.Name)
		}
		set(c, v)
		return nil
	}
}

func pmlParam(set func(c *Config, v float64)) paramSetter {
	return func(c *Config, v float64) error {
		if c.PML == nil {
			return fmt.Errorf("config: scenario %q has no absorbing layer", c.Name)
		}
		set(c, v)
		return nil
	}
}

var params = map[string]paramSetter{
	"kappa":          panelParam(func(c *Config, v float64) { c.Panel.Kappa = v }),
	"sigma":          panelParam(func(c *Config, v float64) { c.Panel.Sigma = v }),
	"eps":            panelParam(func(c *Config, v float64) { c.Panel.EpsR = v }),
	"panel_width_x":  panelParam(func(c *Config, v float64) { c.Panel.WidthX = v }),
	"panel_width_y":  panelParam(func(c *Config, v float64) { c.Panel.WidthY = v }),
	"pml_order":      pmlParam(func(c *Config, v float64) { c.PML.Order = v }),
	"pml_reflection": pmlParam(func(c *Config, v float64) { c.PML.Reflection = v }),
	"medium_eps":     func(c *Config, v float64) error { c.Medium.EpsR = v; return nil },
	"medium_sigma":   func(c *Config, v float64) error { c.Medium.Sigma = v; return nil },
	"pulse_width":    func(c *Config, v float64) error { c.Pulse.Width = v; return nil },
	"amplitude":      func(c *Config, v float64) error { c.Pulse.Amplitude = v; return nil },
	"courant":        func(c *Config, v float64) error { c.Courant = v; c.Dt = 0; return nil },
	"dt":             func(c *Config, v float64) error { c.Dt = v; return nil },
	"duration":       func(c *Config, v float64) error { c.Duration = v; return nil },
}

// SetParam assigns a named scalar of the scenario. Panel and absorbing
// layer parameters fail when the section is absent.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("config: unknown parameter %q (available: %v)", name, ParamNames())
	}
	return set(c, v)
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
