package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/fdtd2d/internal/analytic"
	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/probe"
	"github.com/san-kum/fdtd2d/internal/units"
)

// Sampling used for the analytic pulse spectrum.
const (
	AnalyticDt      = 0.01
	AnalyticSamples = 1024
)

// TransmissionResult compares a measured panel transmission with the
// closed-form slab value.
type TransmissionResult struct {
	Flux       float64
	Reference  float64
	Measured   float64
	Analytic   float64
	Reflection float64 // analytic
	Difference float64
	Slab       analytic.Slab
}

// Transmission runs cfg with and without its panel and reports the
// amplitude transmission through the flux line.
func Transmission(ctx context.Context, cfg *config.Config) (*TransmissionResult, error) {
	if cfg.Panel == nil {
		return nil, fmt.Errorf("experiment: transmission needs a panel")
	}
	if cfg.Probe.FluxAxis == "" {
		return nil, fmt.Errorf("experiment: transmission needs a flux line")
	}

	with, err := RunConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("experiment: panel run: %w", err)
	}
	bare := cfg.Clone()
	bare.Panel = nil
	without, err := RunConfig(ctx, bare)
	if err != nil {
		return nil, fmt.Errorf("experiment: reference run: %w", err)
	}

	measured, err := probe.Transmission(with.Flux, without.Flux)
	if err != nil {
		return nil, err
	}

	slab, err := SlabFor(cfg)
	if err != nil {
		return nil, err
	}
	want, err := analytic.TransmissionFromGaussianPulse(slab, cfg.Pulse.Width/units.C0, AnalyticDt, AnalyticSamples)
	if err != nil {
		return nil, err
	}
	reflection, err := analytic.ReflectionFromGaussianPulse(slab, cfg.Pulse.Width/units.C0, AnalyticDt, AnalyticSamples)
	if err != nil {
		return nil, err
	}

	return &TransmissionResult{
		Flux:       with.Flux,
		Reference:  without.Flux,
		Measured:   measured,
		Analytic:   want,
		Reflection: reflection,
		Difference: math.Abs(measured - want),
		Slab:       slab,
	}, nil
}

// SlabFor is the analytic slab the grid actually resolves along the flux
// axis: the panel covers n nodes there and the averaged edge values add up
// to a thickness of n cells, whatever the nominal width.
func SlabFor(cfg *config.Config) (analytic.Slab, error) {
	p := cfg.Panel
	if p == nil {
		return analytic.Slab{}, fmt.Errorf("experiment: transmission needs a panel")
	}
	g, err := cfg.BuildGrid()
	if err != nil {
		return analytic.Slab{}, err
	}

	nodes := 0
	var width float64
	if cfg.Probe.FluxAxis == "x" {
		for i := 0; i < g.Nx(); i++ {
			if p.Contains(g.X(i), p.CenterY) {
				nodes++
			}
		}
		width = float64(nodes) * g.Dx()
	} else {
		for j := 0; j < g.Ny(); j++ {
			if p.Contains(p.CenterX, g.Y(j)) {
				nodes++
			}
		}
		width = float64(nodes) * g.Dy()
	}
	if nodes == 0 {
		return analytic.Slab{}, fmt.Errorf("experiment: panel %gx%g falls between grid nodes", p.WidthX, p.WidthY)
	}
	return analytic.Slab{Width: width, Kappa: p.Kappa, Sigma: p.Sigma, EpsR: p.EpsR, MuR: 1}, nil
}

// AnalyticTransmission is the closed-form slab transmission weighted by
// the spectrum of the scenario's pulse.
func AnalyticTransmission(cfg *config.Config) (float64, error) {
	slab, err := SlabFor(cfg)
	if err != nil {
		return 0, err
	}
	return analytic.TransmissionFromGaussianPulse(slab, cfg.Pulse.Width/units.C0, AnalyticDt, AnalyticSamples)
}
