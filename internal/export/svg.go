package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// FieldToSVG renders a field as a heatmap, one rect per node. Rows of the
// image run along y with y increasing upwards. Values are scaled by the
// largest magnitude: negative blue, positive red.
func FieldToSVG(field fdtd.Field2D, cell float64) string {
	if field.Nx == 0 || field.Ny == 0 {
		return ""
	}
	if cell <= 0 {
		cell = 4
	}

	width := float64(field.Nx) * cell
	height := float64(field.Ny) * cell
	scale := field.MaxAbs()
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	for i := 0; i < field.Nx; i++ {
		for j := 0; j < field.Ny; j++ {
			v := field.At(i, j) / scale
			if math.Abs(v) < 1e-3 {
				continue
			}
			x := float64(i) * cell
			y := float64(field.Ny-1-j) * cell
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, x, y, cell, cell, divergingColor(v)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// divergingColor maps v in [-1, 1] to white-to-red or white-to-blue.
func divergingColor(v float64) string {
	v = math.Max(-1, math.Min(1, v))
	fade := int(math.Round(255 * (1 - math.Abs(v))))
	if v >= 0 {
		return fmt.Sprintf("#ff%02x%02x", fade, fade)
	}
	return fmt.Sprintf("#%02x%02xff", fade, fade)
}

// SectionToSVG draws a line profile such as a field cross-section.
func SectionToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	minY, maxY := ys[0], ys[0]
	for _, y := range ys {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
