// Package diagram renders solved beams: ASCII plots for the terminal and
// multi-panel image export.
//
// Diagrams are drawn the way engineers read them: the load diagram and the
// shear and bending moment diagrams are sign-flipped so that downward load,
// and sagging moment, plot upward. Normal force is drawn as is.
package diagram

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/statics"
)

// ExtremumThreshold is the smallest magnitude annotated as an extremum.
const ExtremumThreshold = 1e-3

// Data holds everything needed to draw a solved beam
type Data struct {
	Title           string
	X0, X1          float64
	Pinned, Rolling float64
	Reactions       statics.Reactions
	Loads           []load.Load
	Samples         beam.Samples
}

// FromBeam samples b at n points. n <= 0 selects the default resolution.
func FromBeam(title string, b *beam.Beam, n int) Data {
	x0, x1 := b.Span()
	return Data{
		Title:     title,
		X0:        x0,
		X1:        x1,
		Pinned:    b.PinnedSupport(),
		Rolling:   b.RollingSupport(),
		Reactions: b.Reactions(),
		Loads:     b.Loads(),
		Samples:   b.Sample(n),
	}
}

// Extremum is an annotated point of a panel.
type Extremum struct {
	X, Y float64
}

// Panel is one diagram in drawing convention.
type Panel struct {
	Title string
	Label string // y axis
	X, Y  []float64
}

// Panels returns the load, normal force, shear force and bending moment
// panels in drawing convention.
func (d Data) Panels() []Panel {
	s := d.Samples
	return []Panel{
		{Title: "Load", Label: "q(x)", X: s.X, Y: negate(s.DistributedV)},
		{Title: "Normal force", Label: "N(x)", X: s.X, Y: s.Normal},
		{Title: "Shear force", Label: "V(x)", X: s.X, Y: negate(s.Shear)},
		{Title: "Bending moment", Label: "M(x)", X: s.X, Y: negate(s.Moment)},
	}
}

// Extrema returns the minimum and maximum of the panel when their magnitude
// exceeds ExtremumThreshold, ordered by x.
func (p Panel) Extrema() []Extremum {
	if len(p.Y) == 0 {
		return nil
	}
	var out []Extremum
	lo, hi := floats.MinIdx(p.Y), floats.MaxIdx(p.Y)
	for _, i := range []int{lo, hi} {
		if math.Abs(p.Y[i]) <= ExtremumThreshold {
			continue
		}
		if len(out) == 1 && out[0].X == p.X[i] {
			continue
		}
		out = append(out, Extremum{X: p.X[i], Y: p.Y[i]})
	}
	if len(out) == 2 && out[0].X > out[1].X {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// IsZero reports whether every sample is within ExtremumThreshold of zero.
func (p Panel) IsZero() bool {
	for _, y := range p.Y {
		if math.Abs(y) > ExtremumThreshold {
			return false
		}
	}
	return true
}

func negate(ys []float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = -y
	}
	return out
}
