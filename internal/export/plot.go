package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Series is one named line of a section plot.
type Series struct {
	Name   string
	Values []float64
}

// SectionPlot saves line profiles over xs. The format follows the file
// extension (.png, .svg, .pdf).
func SectionPlot(path, title, xlabel string, xs []float64, series ...Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Hz"
	p.Add(plotter.NewGrid())

	for k, s := range series {
		if len(s.Values) != len(xs) {
			return fmt.Errorf("export: series %q has %d values for %d coordinates", s.Name, len(s.Values), len(xs))
		}
		pts := make(plotter.XYs, len(xs))
		for i := range xs {
			pts[i].X = xs[i]
			pts[i].Y = s.Values[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(k)
		line.Dashes = plotutil.Dashes(k)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// fieldGrid adapts a field on its grid to plotter.GridXYZ.
type fieldGrid struct {
	grid  *fdtd.Grid
	field fdtd.Field2D
}

func (f fieldGrid) Dims() (c, r int)   { return f.field.Nx, f.field.Ny }
func (f fieldGrid) Z(c, r int) float64 { return f.field.At(c, r) }
func (f fieldGrid) X(c int) float64    { return f.grid.X(c) }
func (f fieldGrid) Y(r int) float64    { return f.grid.Y(r) }

// FieldPlot saves a heatmap of a node field.
func FieldPlot(path, title string, g *fdtd.Grid, field fdtd.Field2D) error {
	if field.Nx != g.Nx() || field.Ny != g.Ny() {
		return &fdtd.ShapeMismatchError{WantNx: g.Nx(), WantNy: g.Ny(), GotNx: field.Nx, GotNy: field.Ny}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(fieldGrid{grid: g, field: field}, palette.Heat(64, 1))
	p.Add(hm)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
