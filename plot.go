package hstrade

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot is a line chart built from float slices.
type Plot struct {
	p *plot.Plot

	width  vg.Length
	height vg.Length
}

type PlotOpt func(p *Plot) error

var colors = map[string]color.Color{
	"black": color.RGBA{A: 255},
	"red":   color.RGBA{R: 220, G: 20, B: 60, A: 255},
	"blue":  color.RGBA{R: 30, G: 90, B: 200, A: 255},
	"green": color.RGBA{R: 34, G: 139, B: 34, A: 255},
	"gray":  color.RGBA{R: 128, G: 128, B: 128, A: 255},
}

func NewPlot(opts ...PlotOpt) (*Plot, error) {
	p := &Plot{p: plot.New(), width: 8 * vg.Inch, height: 5 * vg.Inch}
	p.p.Add(plotter.NewGrid())
	p.p.Legend.Top = true

	for _, o := range opts {
		if e := o(p); e != nil {
			return nil, e
		}
	}

	return p, nil
}

// ***************** Options *****************

// PlotWidth sets the width in points.
func PlotWidth(w float64) PlotOpt {
	return func(p *Plot) error {
		if w < 72 {
			return fmt.Errorf("plot width must be at least 72 points")
		}

		p.width = vg.Points(w)
		return nil
	}
}

// PlotHeight sets the height in points.
func PlotHeight(h float64) PlotOpt {
	return func(p *Plot) error {
		if h < 72 {
			return fmt.Errorf("plot height must be at least 72 points")
		}

		p.height = vg.Points(h)
		return nil
	}
}

func PlotTitle(title string) PlotOpt {
	return func(p *Plot) error {
		p.p.Title.Text = title
		return nil
	}
}

func PlotXlabel(label string) PlotOpt {
	return func(p *Plot) error {
		p.p.X.Label.Text = label
		return nil
	}
}

func PlotYlabel(label string) PlotOpt {
	return func(p *Plot) error {
		p.p.Y.Label.Text = label
		return nil
	}
}

// ***************** Methods *****************

// PlotXY adds a line series. color is one of black, red, blue, green, gray; "" is black.
func (p *Plot) PlotXY(x, y []float64, seriesName, color string) error {
	if len(x) != len(y) {
		return fmt.Errorf("x has length %d, y has length %d", len(x), len(y))
	}

	if len(x) == 0 {
		return fmt.Errorf("no data to plot")
	}

	pts := make(plotter.XYs, len(x))
	for ind := range x {
		pts[ind].X, pts[ind].Y = x[ind], y[ind]
	}

	line, e := plotter.NewLine(pts)
	if e != nil {
		return e
	}

	if color == "" {
		color = "black"
	}

	c, ok := colors[strings.ToLower(color)]
	if !ok {
		return fmt.Errorf("unsupported color %s", color)
	}

	line.Color = c
	line.Width = vg.Points(1.5)
	p.p.Add(line)

	if seriesName != "" {
		p.p.Legend.Add(seriesName, line)
	}

	return nil
}

// Save writes the plot. The format follows the extension of fileName (png, svg, pdf, ...).
func (p *Plot) Save(fileName string) error {
	return p.p.Save(p.width, p.height, fileName)
}
