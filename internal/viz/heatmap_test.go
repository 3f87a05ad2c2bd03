package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

func TestHeatmapShape(t *testing.T) {
	field := fdtd.NewField2D(20, 10)
	field.Set(10, 5, 1)
	field.Set(3, 2, -1)

	out := Heatmap(field, 12, 4, 0, ThemeMinimal)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n != 12 {
			t.Errorf("line %d: expected 12 cells, got %d", i, n)
		}
	}
}

func TestHeatmapEmpty(t *testing.T) {
	if out := Heatmap(fdtd.Field2D{}, 10, 10, 0, ThemeThermal); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestSampleIndex(t *testing.T) {
	tests := []struct {
		k, n, size, want int
	}{
		{0, 10, 101, 0},
		{9, 10, 101, 100},
		{0, 1, 101, 50},
		{5, 11, 11, 5},
	}
	for _, tt := range tests {
		if got := sampleIndex(tt.k, tt.n, tt.size); got != tt.want {
			t.Errorf("sampleIndex(%d, %d, %d) = %d, want %d", tt.k, tt.n, tt.size, got, tt.want)
		}
	}
}

func TestShade(t *testing.T) {
	th := ThemeMinimal
	if got := shade(0, th); got != "#000000" {
		t.Errorf("zero should map to the zero colour, got %s", got)
	}
	if got := shade(1, th); got != "#ffffff" {
		t.Errorf("one should map to the positive colour, got %s", got)
	}
	if got := shade(-5, th); got != "#787878" {
		t.Errorf("large negative should clamp to the negative colour, got %s", got)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "thermal" {
		t.Error("unknown theme should fall back to thermal")
	}
	if NextTheme(ThemeMinimal).Name != Themes[0].Name {
		t.Error("theme cycle should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names incomplete")
	}
}

func TestSparkline(t *testing.T) {
	s := []rune(Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8))
	if len(s) != 8 || s[0] != '▁' || s[7] != '█' {
		t.Errorf("unexpected sparkline %q", string(s))
	}
	if got := []rune(Sparkline([]float64{1, 2, 3, 4}, 2)); len(got) != 2 {
		t.Errorf("expected 2 runes, got %d", len(got))
	}
}
