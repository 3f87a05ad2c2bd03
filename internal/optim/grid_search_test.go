package optim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/fdtd2d/internal/config"
)

func TestParseRange(t *testing.T) {
	name, values, err := ParseRange("kappa=0:1:5")
	if err != nil {
		t.Fatal(err)
	}
	if name != "kappa" || len(values) != 5 || values[1] != 0.25 || values[4] != 1 {
		t.Errorf("ParseRange = %s %v", name, values)
	}

	_, values, err = ParseRange("sigma=2:9:1")
	if err != nil || len(values) != 1 || values[0] != 2 {
		t.Errorf("single point: %v %v", values, err)
	}

	for _, bad := range []string{"kappa", "=0:1:2", "kappa=0:1", "kappa=a:1:2", "kappa=0:1:0"} {
		if _, _, err := ParseRange(bad); err == nil {
			t.Errorf("ParseRange(%q): expected error", bad)
		}
	}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	base := config.GetPreset("chiral-panel")
	objective := func(ctx context.Context, cfg *config.Config) (float64, error) {
		return math.Abs(cfg.Panel.Kappa-0.5) + math.Abs(cfg.Panel.Sigma-2), nil
	}

	g := NewGridSearch([]string{"kappa", "sigma"}, [][]float64{{0, 0.5, 1}, {1, 2, 3}})
	best, score, err := g.Search(context.Background(), base, objective)
	if err != nil {
		t.Fatal(err)
	}
	if best["kappa"] != 0.5 || best["sigma"] != 2 || score != 0 {
		t.Errorf("best = %v score = %g", best, score)
	}
	if base.Panel.Kappa != 1.5 {
		t.Error("search mutated the base scenario")
	}
}

func TestGridSearchErrors(t *testing.T) {
	base := config.GetPreset("gaussian")
	zero := func(ctx context.Context, cfg *config.Config) (float64, error) { return 0, nil }

	if _, _, err := NewGridSearch([]string{"kappa"}, nil).Search(context.Background(), base, zero); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, _, err := NewGridSearch([]string{"kappa"}, [][]float64{{1}}).Search(context.Background(), base, zero); err == nil {
		t.Error("expected error for a panel parameter without a panel")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := NewGridSearch([]string{"duration"}, [][]float64{{1}}).Search(ctx, base, zero); err == nil {
		t.Error("expected error from a cancelled context")
	}
}

func TestAnalyticTransmissionObjective(t *testing.T) {
	base := config.GetPreset("conductive-panel")
	g := NewGridSearch([]string{"sigma"}, [][]float64{{0, 6}})

	best, score, err := g.Search(context.Background(), base, AnalyticTransmission(1))
	if err != nil {
		t.Fatal(err)
	}
	if best["sigma"] != 0 || score > 1e-9 {
		t.Errorf("a lossless vacuum panel should transmit fully: best %v score %g", best, score)
	}
}
