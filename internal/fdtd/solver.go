package fdtd

import (
	"fmt"
	"math"
)

// DefaultInstabilityThreshold is the peak |Hz| above which a run is flagged.
const DefaultInstabilityThreshold = 1e6

// stepTolerance absorbs rounding in total/dt so that an exact multiple does
// not gain an extra step.
const stepTolerance = 1e-9

type options struct {
	workers   int
	threshold float64
}

// Option configures a Solver.
type Option func(*options)

// WithWorkers splits each half-step sweep across n goroutines.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithInstabilityThreshold sets the peak |Hz| that triggers an InstabilityWarning.
func WithInstabilityThreshold(v float64) Option {
	return func(o *options) { o.threshold = v }
}

// Solver drives the leapfrog update over a fixed grid. Medium, layer and
// initial condition must be configured before the first step.
type Solver struct {
	grid    *Grid
	fields  *Fields
	medium  *Medium
	profile *Profile
	engine  *engine
	opts    options

	time     float64
	steps    int
	peak     float64
	warnings []*InstabilityWarning

	observers []Observer
	metrics   []Metric
}

// New builds a vacuum solver with reflecting walls over the given axes.
func New(x, y []float64, opts ...Option) (*Solver, error) {
	g, err := NewGrid(x, y)
	if err != nil {
		return nil, err
	}
	return NewWithGrid(g, opts...), nil
}

// NewWithGrid builds a solver on an already validated grid.
func NewWithGrid(g *Grid, opts ...Option) *Solver {
	o := options{workers: 1, threshold: DefaultInstabilityThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	f := NewFields(g)
	return &Solver{
		grid:      g,
		fields:    f,
		medium:    NewMedium(g),
		engine:    newEngine(g, f, o.workers),
		opts:      o,
		observers: make([]Observer, 0),
		metrics:   make([]Metric, 0),
	}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) Grid() *Grid                     { return s.grid }
func (s *Solver) Medium() *Medium                 { return s.medium }
func (s *Solver) Profile() *Profile               { return s.profile }
func (s *Solver) View() View                      { return s.fields }
func (s *Solver) Time() float64                   { return s.time }
func (s *Solver) Steps() int                      { return s.steps }
func (s *Solver) Peak() float64                   { return s.peak }
func (s *Solver) Energy() float64                 { return s.fields.Energy() }
func (s *Solver) Snapshot() Field2D               { return s.fields.Snapshot() }
func (s *Solver) Ex() Field2D                     { return s.fields.Ex.Clone() }
func (s *Solver) Ey() Field2D                     { return s.fields.Ey.Clone() }
func (s *Solver) Warnings() []*InstabilityWarning { return append([]*InstabilityWarning(nil), s.warnings...) }

// Metrics returns the current value of every registered metric.
func (s *Solver) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Solver) checkOrder(op string) error {
	if s.steps > 0 {
		return &ConfigurationOrderError{Operation: op, Step: s.steps}
	}
	return nil
}

// SetInitialCondition loads Hz from [i][j] rows and clears E.
func (s *Solver) SetInitialCondition(rows [][]float64) error {
	nx, ny := s.grid.Shape()
	if len(rows) != nx {
		return &ShapeMismatchError{WantNx: nx, WantNy: ny, GotNx: len(rows), GotNy: rowLen(rows)}
	}
	for _, row := range rows {
		if len(row) != ny {
			return &ShapeMismatchError{WantNx: nx, WantNy: ny, GotNx: len(rows), GotNy: len(row)}
		}
	}
	f, err := FieldFromRows(rows)
	if err != nil {
		return err
	}
	return s.SetInitialField(f)
}

func rowLen(rows [][]float64) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// SetInitialField loads Hz from f and clears E.
func (s *Solver) SetInitialField(f Field2D) error {
	if err := s.checkOrder("SetInitialCondition"); err != nil {
		return err
	}
	if err := s.fields.Initialize(f); err != nil {
		return err
	}
	s.peak = f.MaxAbs()
	return nil
}

// SetUniform fills the whole medium and removes any panel.
func (s *Solver) SetUniform(epsR, sigma float64) error {
	if err := s.checkOrder("SetUniform"); err != nil {
		return err
	}
	return s.medium.SetUniform(epsR, sigma)
}

// SetChiralPanel places a rectangular coupled panel. Widths are full widths.
func (s *Solver) SetChiralPanel(centerX, centerY, widthX, widthY, epsR, sigma, kappa float64) error {
	return s.SetPanel(Panel{
		CenterX: centerX,
		CenterY: centerY,
		WidthX:  widthX,
		WidthY:  widthY,
		EpsR:    epsR,
		Sigma:   sigma,
		Kappa:   kappa,
	})
}

// SetPanel is SetChiralPanel taking a Panel value.
func (s *Solver) SetPanel(p Panel) error {
	if err := s.checkOrder("SetChiralPanel"); err != nil {
		return err
	}
	_, err := s.medium.SetChiralPanel(p)
	return err
}

// SetPML enables the absorbing layer on all four edges.
func (s *Solver) SetPML(thickness int, order, reflection, cellSize float64) error {
	if err := s.checkOrder("SetPML"); err != nil {
		return err
	}
	pr, err := BuildProfile(s.grid, PML{Thickness: thickness, Order: order, Reflection: reflection, CellSize: cellSize})
	if err != nil {
		return err
	}
	s.profile = pr
	return nil
}

func validateStep(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", ErrInvalidTimeStep, dt)
	}
	return nil
}

// Step advances the fields by one dt.
func (s *Solver) Step(dt float64) error {
	if err := validateStep(dt); err != nil {
		return err
	}
	if s.steps == 0 || dt != s.engine.dt {
		s.engine.prepare(s.medium, s.profile, dt)
	}

	s.engine.step()
	s.time += dt
	s.steps++
	s.track()

	for _, m := range s.metrics {
		m.Observe(s.fields, s.time)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.fields, s.time, dt)
	}
	return nil
}

// track records the peak |Hz| and the first threshold crossing.
func (s *Solver) track() {
	peak := s.fields.Peak()
	s.peak = peak
	if len(s.warnings) > 0 {
		return
	}
	if !isFinite(peak) || peak > s.opts.threshold {
		s.warnings = append(s.warnings, &InstabilityWarning{
			Step:      s.steps,
			Time:      s.time,
			Peak:      peak,
			Threshold: s.opts.threshold,
		})
	}
}

// StepsUntil returns how many steps of dt carry the clock to total.
func (s *Solver) StepsUntil(total, dt float64) int {
	remaining := total - s.time
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining/dt - stepTolerance))
}

// RunUntil steps until the clock reaches total and returns a copy of Hz.
func (s *Solver) RunUntil(total, dt float64) (Field2D, error) {
	if err := validateStep(dt); err != nil {
		return Field2D{}, err
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return Field2D{}, fmt.Errorf("%w: total time must be non-negative and finite, got %g", ErrInvalidTimeStep, total)
	}
	if s.steps == 0 {
		for _, m := range s.metrics {
			m.Reset()
		}
	}

	n := s.StepsUntil(total, dt)
	for k := 0; k < n; k++ {
		if err := s.Step(dt); err != nil {
			return Field2D{}, err
		}
	}
	return s.fields.Snapshot(), nil
}

// Reset zeroes the fields and clock and unlocks configuration. Medium and
// layer settings are kept.
func (s *Solver) Reset() {
	_ = s.fields.Initialize(NewField2D(s.grid.Nx(), s.grid.Ny()))
	s.time = 0
	s.steps = 0
	s.peak = 0
	s.warnings = nil
	s.engine.dt = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}
