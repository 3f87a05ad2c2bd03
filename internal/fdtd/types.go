package fdtd

// View is read-only access to the solver state between steps.
type View interface {
	Grid() *Grid
	HzAt(i, j int) float64
	ExAt(i, j int) float64
	EyAt(i, j int) float64
	Energy() float64
}

// Observer is called after every completed step. t is the time after the step.
type Observer interface {
	OnStep(v View, t, dt float64)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(v View, t float64)
	Value() float64
	Reset()
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(v View, t, dt float64)

func (f ObserverFunc) OnStep(v View, t, dt float64) { f(v, t, dt) }
