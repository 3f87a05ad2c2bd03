package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fdtd2d/internal/analysis"
	"github.com/san-kum/fdtd2d/internal/config"
	"github.com/san-kum/fdtd2d/internal/experiment"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset or a config file and applies the
// named parameter overrides before running. With Transmission set the
// step runs the panel and reference pair instead of a single run.
type ScenarioStep struct {
	Preset       string             `yaml:"preset"`
	Config       string             `yaml:"config"`
	Duration     float64            `yaml:"duration"`
	Dt           float64            `yaml:"dt"`
	Workers      int                `yaml:"workers"`
	Params       map[string]float64 `yaml:"params"`
	Transmission bool               `yaml:"transmission"`
	SaveAs       string             `yaml:"save_as"`
}

// StepResult is the outcome of one scenario step. RunID is set when the
// step was stored.
type StepResult struct {
	Name         string
	RunID        string
	Result       *experiment.Result
	Transmission *experiment.TransmissionResult
}

// SaveFunc stores a finished run and returns its identifier.
type SaveFunc func(*experiment.Result) (string, error)

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// BuildConfig resolves the step into a validated scenario config.
func (s ScenarioStep) BuildConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	for name, v := range s.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Progress goes to out; single
// runs are passed to save when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, out io.Writer, save SaveFunc) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.BuildConfig()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "running step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		sr := StepResult{Name: cfg.Name}
		if step.Transmission {
			sr.Transmission, err = experiment.Transmission(ctx, cfg)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			results = append(results, sr)
			continue
		}

		sr.Result, err = experiment.RunConfig(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		if save != nil {
			sr.RunID, err = save(sr.Result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep measures panel transmission across a range of one
// named parameter of Base.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds one point of a transmission sweep.
type SweepResult struct {
	ParamValue float64
	Measured   float64
	Analytic   float64
	Difference float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	base := sweep.Base
	if base == nil {
		return nil, fmt.Errorf("automation: sweep needs a base scenario")
	}
	if err := base.Clone().SetParam(sweep.ParamName, sweep.ParamMin); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	_, err := analysis.Sweep(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps, func(v float64) (float64, error) {
		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, v); err != nil {
			return 0, err
		}
		res, err := experiment.Transmission(ctx, cfg)
		if err != nil {
			return 0, err
		}
		results = append(results, SweepResult{
			ParamValue: v,
			Measured:   res.Measured,
			Analytic:   res.Analytic,
			Difference: res.Difference,
		})
		fmt.Fprintf(out, "sweep %d: %s=%.4f measured %.4f analytic %.4f\n",
			len(results), sweep.ParamName, v, res.Measured, res.Analytic)
		return res.Measured, nil
	})
	return results, err
}
