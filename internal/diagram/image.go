package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gobeam/internal/load"
)

var (
	fillColor    = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	lineColor    = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	loadColor    = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	supportColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

// ExportDiagrams writes the beam schematic and the load, normal force, shear
// force and bending moment diagrams, stacked vertically, to filename. The
// format follows the extension (.png, .svg, .pdf); anything else gets .png
// appended.
func ExportDiagrams(d Data, filename string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch format {
	case "png", "svg", "pdf":
	default:
		format = "png"
		filename += ".png"
	}

	schematic, err := schematicPlot(d)
	if err != nil {
		return "", err
	}
	plots := [][]*plot.Plot{{schematic}}
	for _, p := range d.Panels() {
		pp, err := panelPlot(d, p)
		if err != nil {
			return "", err
		}
		plots = append(plots, []*plot.Plot{pp})
	}

	width := 8 * vg.Inch
	height := vg.Length(len(plots)) * 2.2 * vg.Inch
	c, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return "", err
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      2 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	// Create directory if needed
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", filename, err)
	}
	return filename, f.Close()
}

func panelPlot(d Data, p Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Y.Label.Text = p.Label
	pl.X.Min, pl.X.Max = d.X0, d.X1
	pl.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(p.X))
	for i := range p.X {
		pts[i] = plotter.XY{X: p.X[i], Y: p.Y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = lineColor
	line.FillColor = fillColor
	pl.Add(line)

	ext := p.Extrema()
	if len(ext) == 0 {
		return pl, nil
	}
	marks := make(plotter.XYs, len(ext))
	labels := make([]string, len(ext))
	for i, e := range ext {
		marks[i] = plotter.XY{X: e.X, Y: e.Y}
		labels[i] = fmt.Sprintf("%.4g", e.Y)
	}
	sc, err := plotter.NewScatter(marks)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = loadColor
	sc.GlyphStyle.Radius = vg.Points(3)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	pl.Add(sc)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: marks, Labels: labels})
	if err != nil {
		return nil, err
	}
	pl.Add(lbl)
	return pl, nil
}

// schematicPlot draws the beam axis, its supports and its loads. Vertical
// distributed loads are drawn to scale against the largest intensity.
func schematicPlot(d Data) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = d.Title
	if pl.Title.Text == "" {
		pl.Title.Text = "Loaded beam"
	}
	pl.HideY()
	pl.X.Min, pl.X.Max = d.X0, d.X1
	pl.Y.Min, pl.Y.Max = -1, 1.6

	axis, err := plotter.NewLine(plotter.XYs{{X: d.X0, Y: 0}, {X: d.X1, Y: 0}})
	if err != nil {
		return nil, err
	}
	axis.LineStyle.Width = vg.Points(3)
	axis.LineStyle.Color = color.Black
	pl.Add(axis)

	for _, s := range []struct {
		x     float64
		shape draw.GlyphDrawer
		name  string
	}{
		{d.Pinned, draw.TriangleGlyph{}, "A"},
		{d.Rolling, draw.CircleGlyph{}, "B"},
	} {
		sc, err := plotter.NewScatter(plotter.XYs{{X: s.x, Y: -0.25}})
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = s.shape
		sc.GlyphStyle.Radius = vg.Points(6)
		sc.GlyphStyle.Color = supportColor
		pl.Add(sc)
		if err := addLabel(pl, s.x, -0.7, s.name); err != nil {
			return nil, err
		}
	}

	if err := addDistributed(pl, d); err != nil {
		return nil, err
	}

	for _, l := range d.Loads {
		var err error
		switch v := l.(type) {
		case load.PointV:
			err = addArrow(pl, v.Coord, v.Force < 0, fmt.Sprintf("%g", math.Abs(v.Force)))
		case load.PointH:
			err = addLabel(pl, v.Coord, 0.2, fmt.Sprintf("H = %g", v.Force))
		case load.Torque:
			err = addLabel(pl, v.Coord, 0.2, fmt.Sprintf("T = %g", v.Torque))
		}
		if err != nil {
			return nil, err
		}
	}
	return pl, nil
}

func addDistributed(pl *plot.Plot, d Data) error {
	q := d.Samples.DistributedV
	if len(q) == 0 {
		return nil
	}
	peak := math.Max(math.Abs(floats.Min(q)), math.Abs(floats.Max(q)))
	if peak <= ExtremumThreshold {
		return nil
	}
	pts := make(plotter.XYs, 0, len(q)+2)
	pts = append(pts, plotter.XY{X: d.Samples.X[0], Y: 0.1})
	for i, v := range q {
		pts = append(pts, plotter.XY{X: d.Samples.X[i], Y: 0.1 + 0.9*math.Abs(v)/peak})
	}
	pts = append(pts, plotter.XY{X: d.Samples.X[len(q)-1], Y: 0.1})
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return err
	}
	poly.Color = fillColor
	poly.LineStyle.Color = lineColor
	pl.Add(poly)
	return nil
}

func addArrow(pl *plot.Plot, x float64, down bool, text string) error {
	tail, head := 0.1, 1.2
	if down {
		tail, head = head, tail
	}
	shaft, err := plotter.NewLine(plotter.XYs{{X: x, Y: tail}, {X: x, Y: head}})
	if err != nil {
		return err
	}
	shaft.LineStyle.Width = vg.Points(2)
	shaft.LineStyle.Color = loadColor
	pl.Add(shaft)

	tip, err := plotter.NewScatter(plotter.XYs{{X: x, Y: head}})
	if err != nil {
		return err
	}
	tip.GlyphStyle.Shape = draw.PyramidGlyph{}
	tip.GlyphStyle.Radius = vg.Points(4)
	tip.GlyphStyle.Color = loadColor
	pl.Add(tip)
	return addLabel(pl, x, 1.35, text)
}

func addLabel(pl *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	pl.Add(l)
	return nil
}
