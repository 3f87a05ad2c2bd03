package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/fdtd1d"
	"github.com/san-kum/fdtd2d/internal/metrics"
)

// PulseFunc evaluates the initial Hz at node (x, y).
type PulseFunc func(x, y float64, p config.PulseConfig) float64

type Registry struct {
	pulses map[string]PulseFunc
}

func NewRegistry() *Registry {
	r := &Registry{
		pulses: make(map[string]PulseFunc),
	}

	r.pulses["gaussian"] = func(x, y float64, p config.PulseConfig) float64 {
		return p.Amplitude * fdtd1d.Gaussian(x, p.CenterX, p.Width) * fdtd1d.Gaussian(y, p.CenterY, p.Width)
	}
	r.pulses["band-x"] = func(x, y float64, p config.PulseConfig) float64 {
		return p.Amplitude * fdtd1d.Gaussian(x, p.CenterX, p.Width)
	}
	r.pulses["band-y"] = func(x, y float64, p config.PulseConfig) float64 {
		return p.Amplitude * fdtd1d.Gaussian(y, p.CenterY, p.Width)
	}
	r.pulses["zero"] = func(x, y float64, p config.PulseConfig) float64 {
		return 0
	}

	return r
}

// Register adds or replaces a pulse shape.
func (r *Registry) Register(name string, fn PulseFunc) {
	r.pulses[name] = fn
}

func (r *Registry) GetPulse(name string) (PulseFunc, error) {
	fn, ok := r.pulses[name]
	if !ok {
		return nil, fmt.Errorf("unknown pulse shape: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListPulses() []string {
	names := make([]string, 0, len(r.pulses))
	for name := range r.pulses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitialField samples the configured pulse on every node of g.
func (r *Registry) InitialField(g *fdtd.Grid, p config.PulseConfig) (fdtd.Field2D, error) {
	fn, err := r.GetPulse(p.Shape)
	if err != nil {
		return fdtd.Field2D{}, err
	}
	f := fdtd.NewField2D(g.Nx(), g.Ny())
	for i := 0; i < g.Nx(); i++ {
		for j := 0; j < g.Ny(); j++ {
			f.Set(i, j, fn(g.X(i), g.Y(j), p))
		}
	}
	return f, nil
}

func (r *Registry) DefaultMetrics() []fdtd.Metric {
	return []fdtd.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewStability(fdtd.DefaultInstabilityThreshold),
	}
}
