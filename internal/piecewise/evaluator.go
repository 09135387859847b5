package piecewise

import (
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gobeam/internal/expr"
)

// Evaluator is a Function prepared for repeated numeric evaluation.
// Polynomial parts are stored as dense coefficient slices and evaluated with
// Horner's rule; the remaining terms are kept as is.
type Evaluator struct {
	branches []compiledBranch
}

type compiledBranch struct {
	lo, hi               float64
	below, within, above kernel
}

type kernel struct {
	poly  []float64 // poly[i] is the coefficient of x^i
	terms expr.Series
}

// Compile prepares f for evaluation. The result does not share state with f.
func Compile(f Function) *Evaluator {
	e := &Evaluator{branches: make([]compiledBranch, 0, len(f.Branches))}
	for _, b := range f.Branches {
		e.branches = append(e.branches, compiledBranch{
			lo:     b.Lo,
			hi:     b.Hi,
			below:  compileSeries(b.Below),
			within: compileSeries(b.Within),
			above:  compileSeries(b.Above),
		})
	}
	return e
}

func compileSeries(s expr.Series) kernel {
	var k kernel
	for _, t := range s {
		if t.Kind != expr.None {
			k.terms = append(k.terms, t)
			continue
		}
		for len(k.poly) <= t.Pow {
			k.poly = append(k.poly, 0)
		}
		k.poly[t.Pow] += t.Coef
	}
	return k
}

func (k kernel) at(x float64) float64 {
	var v float64
	for i := len(k.poly) - 1; i >= 0; i-- {
		v = v*x + k.poly[i]
	}
	if len(k.terms) > 0 {
		v += k.terms.Eval(x)
	}
	return v
}

// At evaluates the function at x.
func (e *Evaluator) At(x float64) float64 {
	var sum float64
	for i := range e.branches {
		b := &e.branches[i]
		switch {
		case x < b.lo:
			sum += b.below.at(x)
		case x > b.hi:
			sum += b.above.at(x)
		default:
			sum += b.within.at(x)
		}
	}
	return sum
}

// Sample evaluates the function at every x in xs.
func (e *Evaluator) Sample(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = e.At(x)
	}
	return ys
}

// Linspace returns n evenly spaced points from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{a}
	}
	return floats.Span(make([]float64, n), a, b)
}

// Resolution returns the default number of samples for a span of the given
// length: one per millimetre of a metre-based span, capped at 10000.
func Resolution(length float64) int {
	n := int(length*1000) + 1
	if n > 10000 {
		n = 10000
	}
	if n < 2 {
		n = 2
	}
	return n
}
