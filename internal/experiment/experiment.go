package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/probe"
)

// Result is the outcome of one scenario run.
type Result struct {
	Config   *config.Config
	Field    fdtd.Field2D
	Dt       float64
	Steps    int
	Time     float64
	Peak     float64
	Energy   float64
	Initial  float64
	Flux     float64
	HasFlux  bool
	Times    []float64
	ProbeHz  []float64
	FluxSum  []float64
	Warnings []string
	Metrics  map[string]float64
	Elapsed  time.Duration
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	solver   *fdtd.Solver
	point    *probe.Point
	flux     *probe.Flux
	dt       float64
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// WithRegistry swaps in a registry carrying extra pulse shapes.
func (e *Experiment) WithRegistry(r *Registry) *Experiment {
	e.registry = r
	return e
}

// Setup builds and configures the solver. It must precede Run.
func (e *Experiment) Setup(extra ...fdtd.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	g, err := e.cfg.BuildGrid()
	if err != nil {
		return err
	}

	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	s := fdtd.NewWithGrid(g, fdtd.WithWorkers(workers))

	if err := s.SetUniform(e.cfg.Medium.EpsR, e.cfg.Medium.Sigma); err != nil {
		return err
	}
	if e.cfg.Panel != nil {
		if err := s.SetPanel(*e.cfg.Panel); err != nil {
			return err
		}
	}
	if p := e.cfg.PML; p != nil {
		if err := s.SetPML(p.Thickness, p.Order, p.Reflection, p.CellSize); err != nil {
			return err
		}
	}

	hz, err := e.registry.InitialField(g, e.cfg.Pulse)
	if err != nil {
		return err
	}
	if err := s.SetInitialField(hz); err != nil {
		return err
	}

	e.point = probe.NewPointAt(g, e.cfg.Probe.X, e.cfg.Probe.Y)
	s.AddObserver(e.point)

	if e.cfg.Probe.FluxAxis != "" {
		axis, err := probe.ParseAxis(e.cfg.Probe.FluxAxis)
		if err != nil {
			return err
		}
		e.flux, err = probe.NewFluxAt(g, axis, e.cfg.Probe.FluxAt, true)
		if err != nil {
			return err
		}
		s.AddObserver(e.flux)
	}

	for _, m := range append(e.registry.DefaultMetrics(), extra...) {
		s.AddMetric(m)
	}

	e.solver = s
	e.dt = e.cfg.TimeStep(g)
	return nil
}

// Run steps to the configured duration, checking ctx between steps.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	s := e.solver
	initial := s.Energy()
	start := time.Now()

	n := s.StepsUntil(e.cfg.Duration, e.dt)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := s.Step(e.dt); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Config:  e.cfg,
		Field:   s.Snapshot(),
		Dt:      e.dt,
		Steps:   s.Steps(),
		Time:    s.Time(),
		Peak:    s.Peak(),
		Energy:  s.Energy(),
		Initial: initial,
		Metrics: s.Metrics(),
		Elapsed: time.Since(start),
	}
	for _, sample := range e.point.Series() {
		result.Times = append(result.Times, sample.Time)
		result.ProbeHz = append(result.ProbeHz, sample.Value)
	}
	if e.flux != nil {
		result.HasFlux = true
		result.Flux = e.flux.Total()
		for _, sample := range e.flux.Series() {
			result.FluxSum = append(result.FluxSum, sample.Value)
		}
	}
	for _, w := range s.Warnings() {
		result.Warnings = append(result.Warnings, w.Error())
	}
	return result, nil
}

// Solver returns the configured solver for attaching observers.
func (e *Experiment) Solver() *fdtd.Solver {
	return e.solver
}

// TimeStep is the step Run will use.
func (e *Experiment) TimeStep() float64 {
	return e.dt
}

// RunConfig is Setup followed by Run.
func RunConfig(ctx context.Context, cfg *config.Config) (*Result, error) {
	e := New(cfg)
	if err := e.Setup(); err != nil {
		return nil, err
	}
	return e.Run(ctx)
}
