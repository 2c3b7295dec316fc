// Package chart draws decoded state paths with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default canvas size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 3 * vg.Inch
)

// PathPlot plots the decoded state of each step as a step line, with one
// nominal Y tick per state label. labels must list the model's states in
// index order.
func PathPlot(res domain.Result, labels []string) (*plot.Plot, error) {
	if len(res.Indices) == 0 {
		return nil, fmt.Errorf("nothing to plot: empty path")
	}

	pts := make(plotter.XYs, len(res.Indices))
	for t, s := range res.Indices {
		pts[t].X = float64(t)
		pts[t].Y = float64(s)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: most likely states (score %.3g)", res.Model, res.Score)
	p.X.Label.Text = "t"
	p.X.Min = 0
	p.X.Max = float64(len(res.Indices) - 1)
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.StepStyle = plotter.MidStep
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 79, G: 70, B: 229, A: 255}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  color.Black,
		Radius: vg.Points(2),
		Shape:  draw.CircleGlyph{},
	}

	p.Add(line, scatter)
	p.NominalY(labels...)
	return p, nil
}

// WritePlot encodes p in format ("png", "svg", "pdf", ...) to output.
func WritePlot(p *plot.Plot, width, height vg.Length, output io.Writer, format string) error {
	w, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

func combineErrors(errors ...error) (err error) {
	for _, e := range errors {
		switch {
		case e == nil:
			// ignore
		case err == nil:
			err = e
		default:
			err = multierror.Append(err, e)
		}
	}
	return err
}

// WriteClosePlot writes p and closes output, reporting both failures.
func WriteClosePlot(p *plot.Plot, width, height vg.Length, output io.WriteCloser, format string) (err error) {
	defer func() {
		e := output.Close()
		err = combineErrors(err, e)
	}()
	return WritePlot(p, width, height, output, format)
}

// SavePlot writes p to path, in the format named by its extension.
func SavePlot(p *plot.Plot, width, height vg.Length, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("cannot infer image format from %q", path)
	}
	output, err := os.Create(path)
	if err != nil {
		return err
	}
	return WriteClosePlot(p, width, height, output, format)
}
