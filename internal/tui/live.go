package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws a heatmap of Hz to out at most frameRate times a
// second while a run is in progress. It is an fdtd.Observer.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	width     int
	height    int
	scale     float64
	theme     viz.Theme
	lastFrame time.Time
	frames    int
}

func NewLiveRenderer(out io.Writer, frameRate, width, height int, scale float64) *LiveRenderer {
	if frameRate < 1 {
		frameRate = 1
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		width:     width,
		height:    height,
		scale:     scale,
		theme:     viz.CurrentTheme,
	}
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

// Frames is the number of frames drawn so far.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) OnStep(v fdtd.View, t, dt float64) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.frames++

	g := v.Grid()
	field := fdtd.NewField2D(g.Nx(), g.Ny())
	for i := 0; i < g.Nx(); i++ {
		for j := 0; j < g.Ny(); j++ {
			field.Set(i, j, v.HzAt(i, j))
		}
	}

	fmt.Fprint(r.out, clearScreen)
	fmt.Fprintln(r.out, viz.Heatmap(field, r.width, r.height, r.scale, r.theme))
	fmt.Fprintf(r.out, "%s  %s  %s\n",
		viz.Metric("t", t),
		viz.Metric("peak", field.MaxAbs()),
		viz.Metric("energy", v.Energy()),
	)
}
