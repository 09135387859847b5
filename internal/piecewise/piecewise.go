// Package piecewise implements piecewise functions of the beam axis built by
// superposing per-load branches, their running integrals, and their numeric
// evaluation.
package piecewise

import "github.com/alexiusacademia/gobeam/internal/expr"

// Branch is the contribution of a single load. It selects one of three
// expressions with the fixed test order x < Lo, x > Hi, otherwise, so both
// Lo and Hi belong to the Within piece.
type Branch struct {
	Lo, Hi float64
	Below  expr.Series
	Within expr.Series
	Above  expr.Series
}

// Eval evaluates the branch at x.
func (b Branch) Eval(x float64) float64 {
	return b.pick(x).Eval(x)
}

func (b Branch) pick(x float64) expr.Series {
	switch {
	case x < b.Lo:
		return b.Below
	case x > b.Hi:
		return b.Above
	default:
		return b.Within
	}
}

// Step returns a branch that is zero for x < c and v for x >= c.
func Step(c, v float64) Branch {
	k := expr.Constant(v)
	return Branch{Lo: c, Hi: c, Within: k, Above: k}
}

// Window returns a branch equal to s on [a, b] and zero elsewhere.
func Window(a, b float64, s expr.Series) Branch {
	return Branch{Lo: a, Hi: b, Within: s}
}

// Function is a sum of branches over the span [X0, X1].
type Function struct {
	X0, X1   float64
	Branches []Branch
}

// New returns the zero function on [x0, x1] plus the given branches.
func New(x0, x1 float64, branches ...Branch) Function {
	return Function{X0: x0, X1: x1, Branches: append([]Branch(nil), branches...)}
}

// Eval evaluates f at x by summing every branch.
func (f Function) Eval(x float64) float64 {
	var sum float64
	for _, b := range f.Branches {
		sum += b.Eval(x)
	}
	return sum
}

// With returns f with extra branches appended.
func (f Function) With(branches ...Branch) Function {
	out := Function{X0: f.X0, X1: f.X1, Branches: make([]Branch, 0, len(f.Branches)+len(branches))}
	out.Branches = append(out.Branches, f.Branches...)
	out.Branches = append(out.Branches, branches...)
	return out
}

// Scale returns k * f.
func (f Function) Scale(k float64) Function {
	out := Function{X0: f.X0, X1: f.X1, Branches: make([]Branch, len(f.Branches))}
	for i, b := range f.Branches {
		out.Branches[i] = Branch{
			Lo:     b.Lo,
			Hi:     b.Hi,
			Below:  b.Below.Scale(k),
			Within: b.Within.Scale(k),
			Above:  b.Above.Scale(k),
		}
	}
	return out
}

// Integral returns the running integral of f from X0 to x, computed exactly
// branch by branch.
func (f Function) Integral() Function {
	out := Function{X0: f.X0, X1: f.X1, Branches: make([]Branch, len(f.Branches))}
	for i, b := range f.Branches {
		out.Branches[i] = integrate(b, f.X0)
	}
	return out
}

// integrate returns the branch of ∫_{x0}^{x} b.
//
//	x < Lo:        P_below(x) - P_below(x0)
//	Lo <= x <= Hi: I(Lo) + P_within(x) - P_within(Lo)
//	x > Hi:        I(Hi) + P_above(x) - P_above(Hi)
func integrate(b Branch, x0 float64) Branch {
	pb := b.Below.Integrate()
	pw := b.Within.Integrate()
	pa := b.Above.Integrate()

	below := pb.Plus(expr.Constant(-pb.Eval(x0)))
	atLo := below.Eval(b.Lo)
	within := pw.Plus(expr.Constant(atLo - pw.Eval(b.Lo)))
	atHi := within.Eval(b.Hi)
	above := pa.Plus(expr.Constant(atHi - pa.Eval(b.Hi)))

	return Branch{Lo: b.Lo, Hi: b.Hi, Below: below, Within: within, Above: above}
}
