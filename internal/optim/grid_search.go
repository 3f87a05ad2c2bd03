package optim

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/experiment"
)

// Objective scores a scenario; lower is better.
type Objective func(ctx context.Context, cfg *config.Config) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every combination of the parameter ranges applied to a
// clone of base and returns the combination with the lowest score.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no combination evaluated")
	}

	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := base.Clone()
		for k, v := range current {
			if err := cfg.SetParam(k, v); err != nil {
				return err
			}
		}

		val, err := objective(ctx, cfg)
		if err != nil {
			return err
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// ParseRange reads "name=lo:hi:n" into a parameter name and n evenly
// spaced values.
func ParseRange(s string) (string, []float64, error) {
	name, bounds, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("optim: range %q is not name=lo:hi:n", s)
	}
	parts := strings.Split(bounds, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("optim: range %q is not name=lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, fmt.Errorf("optim: range %q: %w", s, err)
	}
	if n == 1 {
		return name, []float64{lo}, nil
	}
	if n < 1 {
		return "", nil, fmt.Errorf("optim: range %q needs at least one point", s)
	}
	return name, floats.Span(make([]float64, n), lo, hi), nil
}

// AnalyticTransmission scores the distance between the closed-form slab
// transmission of the scenario's panel and target.
func AnalyticTransmission(target float64) Objective {
	return func(ctx context.Context, cfg *config.Config) (float64, error) {
		t, err := experiment.AnalyticTransmission(cfg)
		if err != nil {
			return 0, err
		}
		return math.Abs(t - target), nil
	}
}

// MeasuredTransmission scores the distance between the simulated panel
// transmission and target.
func MeasuredTransmission(target float64) Objective {
	return func(ctx context.Context, cfg *config.Config) (float64, error) {
		res, err := experiment.Transmission(ctx, cfg)
		if err != nil {
			return 0, err
		}
		return math.Abs(res.Measured - target), nil
	}
}
