package beam

import "github.com/alexiusacademia/gobeam/internal/piecewise"

// Samples holds the diagrams evaluated at a common set of coordinates.
type Samples struct {
	X            []float64
	DistributedH []float64
	DistributedV []float64
	Normal       []float64
	Shear        []float64
	Moment       []float64
}

// Len returns the number of sample points.
func (s Samples) Len() int { return len(s.X) }

// Sample evaluates every diagram at xs.
func (d Diagrams) Sample(xs []float64) Samples {
	return Samples{
		X:            append([]float64(nil), xs...),
		DistributedH: piecewise.Compile(d.DistributedH).Sample(xs),
		DistributedV: piecewise.Compile(d.DistributedV).Sample(xs),
		Normal:       piecewise.Compile(d.Normal).Sample(xs),
		Shear:        piecewise.Compile(d.Shear).Sample(xs),
		Moment:       piecewise.Compile(d.Moment).Sample(xs),
	}
}

// Sample evaluates the diagrams at n evenly spaced points over the span. If n
// is not positive the default resolution for the beam length is used.
func (b *Beam) Sample(n int) Samples {
	if n <= 0 {
		n = piecewise.Resolution(b.Length())
	}
	return b.result.Diagrams.Sample(piecewise.Linspace(b.x0, b.x1, n))
}
