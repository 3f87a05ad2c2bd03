package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Heatmap draws field into width×height character cells. Each cell shows
// two vertically stacked samples using the upper half block. scale <= 0
// normalises by the field's own peak.
func Heatmap(field fdtd.Field2D, width, height int, scale float64, theme Theme) string {
	if field.Nx == 0 || field.Ny == 0 || width <= 0 || height <= 0 {
		return ""
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = field.MaxAbs()
	}
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	rows := height * 2
	var sb strings.Builder
	for r := 0; r < height; r++ {
		jTop := sampleIndex(rows-1-2*r, rows, field.Ny)
		jBottom := sampleIndex(rows-2-2*r, rows, field.Ny)
		for c := 0; c < width; c++ {
			i := sampleIndex(c, width, field.Nx)
			top := shade(field.At(i, jTop)/scale, theme)
			bottom := shade(field.At(i, jBottom)/scale, theme)
			sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		if r < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// sampleIndex maps cell k of n cells onto an axis of size nodes.
func sampleIndex(k, n, size int) int {
	if n <= 1 {
		return size / 2
	}
	idx := int(math.Round(float64(k) * float64(size-1) / float64(n-1)))
	return max(0, min(size-1, idx))
}

// shade blends from the zero colour towards the positive or negative colour.
func shade(v float64, theme Theme) lipgloss.Color {
	if math.IsNaN(v) {
		return theme.Error
	}
	v = math.Max(-1, math.Min(1, v))
	target := theme.Positive
	if v < 0 {
		target = theme.Negative
	}
	a := math.Sqrt(math.Abs(v))
	var rgb [3]int
	for k := range rgb {
		rgb[k] = int(math.Round(float64(theme.Zero[k]) + a*float64(target[k]-theme.Zero[k])))
	}
	return hexColor(rgb)
}

// SectionGraph plots a cross-section as an ASCII line graph.
func SectionGraph(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
