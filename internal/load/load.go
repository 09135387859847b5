// Package load defines the loads that can act on a beam.
//
// Load is a closed sum type: the only implementations are PointH, PointV,
// DistributedH, DistributedV and Torque. Consumers switch over the concrete
// types exhaustively. Sign conventions: forces are positive rightward (H) and
// upward (V); torques are positive clockwise.
package load

import (
	"fmt"

	"github.com/alexiusacademia/gobeam/internal/expr"
)

// Load is one of the five supported load kinds.
type Load interface {
	// Kind returns a short tag, used for messages and beam definition files.
	Kind() string
	fmt.Stringer
	isLoad()
}

// Interval is a closed sub-interval [Left, Right] of the beam axis.
type Interval struct {
	Left, Right float64
}

// Contains reports whether x lies in the closed interval.
func (i Interval) Contains(x float64) bool { return i.Left <= x && x <= i.Right }

// Length of the interval.
func (i Interval) Length() float64 { return i.Right - i.Left }

func (i Interval) String() string { return fmt.Sprintf("[%g, %g]", i.Left, i.Right) }

// Origin selects the coordinate in which a distributed load intensity is
// written.
type Origin uint8

const (
	// Local measures the variable from the left end of the load interval,
	// i.e. the intensity is evaluated at x - Left. This is the default.
	Local Origin = iota
	// Global measures the variable from the beam origin.
	Global
)

func (o Origin) String() string {
	if o == Global {
		return "global"
	}
	return "local"
}

// PointH is a horizontal point force.
type PointH struct {
	Force float64
	Coord float64
}

// PointV is a vertical point force.
type PointV struct {
	Force float64
	Coord float64
}

// DistributedH is a horizontal force per unit length acting over Span.
type DistributedH struct {
	Intensity expr.Expr
	Span      Interval
	Origin    Origin
}

// DistributedV is a vertical force per unit length acting over Span.
type DistributedV struct {
	Intensity expr.Expr
	Span      Interval
	Origin    Origin
}

// Torque is a clockwise point torque.
type Torque struct {
	Torque float64
	Coord  float64
}

func (PointH) isLoad()       {}
func (PointV) isLoad()       {}
func (DistributedH) isLoad() {}
func (DistributedV) isLoad() {}
func (Torque) isLoad()       {}

func (PointH) Kind() string       { return "point_h" }
func (PointV) Kind() string       { return "point_v" }
func (DistributedH) Kind() string { return "distributed_h" }
func (DistributedV) Kind() string { return "distributed_v" }
func (Torque) Kind() string       { return "torque" }

func (l PointH) String() string { return fmt.Sprintf("PointH(%g at %g)", l.Force, l.Coord) }
func (l PointV) String() string { return fmt.Sprintf("PointV(%g at %g)", l.Force, l.Coord) }
func (l Torque) String() string { return fmt.Sprintf("Torque(%g at %g)", l.Torque, l.Coord) }

func (l DistributedH) String() string {
	return fmt.Sprintf("DistributedH(%s over %s, %s)", l.Intensity, l.Span, l.Origin)
}

func (l DistributedV) String() string {
	return fmt.Sprintf("DistributedV(%s over %s, %s)", l.Intensity, l.Span, l.Origin)
}

// UniformV returns a constant vertical distributed load q over [a, b].
func UniformV(q, a, b float64) DistributedV {
	return DistributedV{Intensity: expr.Const(q), Span: Interval{a, b}}
}

// UniformH returns a constant horizontal distributed load q over [a, b].
func UniformH(q, a, b float64) DistributedH {
	return DistributedH{Intensity: expr.Const(q), Span: Interval{a, b}}
}

// ParseV parses intensity in the free variable and returns a vertical
// distributed load over [a, b] in local coordinates.
func ParseV(intensity, variable string, a, b float64) (DistributedV, error) {
	e, err := expr.Parse(intensity, variable)
	if err != nil {
		return DistributedV{}, err
	}
	return DistributedV{Intensity: e, Span: Interval{a, b}}, nil
}

// ParseH is the horizontal counterpart of ParseV.
func ParseH(intensity, variable string, a, b float64) (DistributedH, error) {
	e, err := expr.Parse(intensity, variable)
	if err != nil {
		return DistributedH{}, err
	}
	return DistributedH{Intensity: e, Span: Interval{a, b}}, nil
}

// Bounds returns the region of the beam axis the load touches. Point loads
// and torques return a degenerate interval.
func Bounds(l Load) (Interval, error) {
	switch v := l.(type) {
	case PointH:
		return Interval{v.Coord, v.Coord}, nil
	case PointV:
		return Interval{v.Coord, v.Coord}, nil
	case DistributedH:
		return v.Span, nil
	case DistributedV:
		return v.Span, nil
	case Torque:
		return Interval{v.Coord, v.Coord}, nil
	}
	return Interval{}, fmt.Errorf("unsupported load type %T", l)
}

// Scale returns l with its magnitude multiplied by k.
func Scale(l Load, k float64) (Load, error) {
	switch v := l.(type) {
	case PointH:
		v.Force *= k
		return v, nil
	case PointV:
		v.Force *= k
		return v, nil
	case DistributedH:
		v.Intensity = expr.Mul(expr.Const(k), v.Intensity)
		return v, nil
	case DistributedV:
		v.Intensity = expr.Mul(expr.Const(k), v.Intensity)
		return v, nil
	case Torque:
		v.Torque *= k
		return v, nil
	}
	return nil, fmt.Errorf("unsupported load type %T", l)
}
