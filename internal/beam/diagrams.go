package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/expr"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/piecewise"
	"github.com/alexiusacademia/gobeam/internal/statics"
)

// Diagrams are the piecewise functions of a loaded beam, all defined on the
// beam span.
type Diagrams struct {
	DistributedH piecewise.Function // q_x
	DistributedV piecewise.Function // q_y
	Normal       piecewise.Function // N
	Shear        piecewise.Function // V
	Moment       piecewise.Function // M
}

// Analysis is the result of solving a beam.
type Analysis struct {
	Reactions statics.Reactions
	Diagrams
}

// Analyze solves the beam on [x0, x1] with a pinned support at xA and a
// rolling support at xB and builds its diagrams:
//
//	N(x) = -∫q_x - Σ H forces at or left of x - F_Ax·[x >= xA]
//	V(x) =  ∫q_y + Σ V forces at or left of x + F_Ay·[x >= xA] + F_By·[x >= xB]
//	M(x) =  ∫V   + Σ T at or left of x
//
// Integrals run from x0. Loads are assumed to lie within the span.
func Analyze(x0, x1, xA, xB float64, loads []load.Load) (Analysis, error) {
	var (
		r       statics.Resultant
		qx, qy  []piecewise.Branch
		pointsH []piecewise.Branch
		pointsV []piecewise.Branch
		torques []piecewise.Branch
	)
	for i, l := range loads {
		switch v := l.(type) {
		case load.PointH:
			r.AddPointH(v.Force)
			pointsH = append(pointsH, piecewise.Step(v.Coord, -v.Force))
		case load.PointV:
			r.AddPointV(v.Force, v.Coord)
			pointsV = append(pointsV, piecewise.Step(v.Coord, v.Force))
		case load.DistributedH:
			s, err := intensity(v.Intensity, v.Span, v.Origin)
			if err != nil {
				return Analysis{}, &IntegrationError{Index: i, Load: l, Err: err}
			}
			r.AddDistributedH(s, v.Span.Left, v.Span.Right)
			qx = append(qx, piecewise.Window(v.Span.Left, v.Span.Right, s))
		case load.DistributedV:
			s, err := intensity(v.Intensity, v.Span, v.Origin)
			if err != nil {
				return Analysis{}, &IntegrationError{Index: i, Load: l, Err: err}
			}
			r.AddDistributedV(s, v.Span.Left, v.Span.Right)
			qy = append(qy, piecewise.Window(v.Span.Left, v.Span.Right, s))
		case load.Torque:
			r.AddTorque(v.Torque)
			torques = append(torques, piecewise.Step(v.Coord, v.Torque))
		default:
			return Analysis{}, &UnsupportedLoadTypeError{Index: i, Load: l}
		}
	}

	re, err := statics.Solve(xA, xB, r)
	if err != nil {
		return Analysis{}, err
	}

	distH := piecewise.New(x0, x1, qx...)
	distV := piecewise.New(x0, x1, qy...)

	normal := distH.Integral().Scale(-1).
		With(pointsH...).
		With(piecewise.Step(xA, -re.Ax))
	shear := distV.Integral().
		With(pointsV...).
		With(piecewise.Step(xA, re.Ay), piecewise.Step(xB, re.By))
	moment := shear.Integral().With(torques...)

	return Analysis{
		Reactions: re,
		Diagrams: Diagrams{
			DistributedH: distH,
			DistributedV: distV,
			Normal:       normal,
			Shear:        shear,
			Moment:       moment,
		},
	}, nil
}

// intensity lowers e into an integrable series written in the global
// coordinate. The series and its force and moment resultants over span must
// be finite.
func intensity(e expr.Expr, span load.Interval, origin load.Origin) (expr.Series, error) {
	s, err := expr.Lower(e)
	if err != nil {
		return nil, err
	}
	if origin == load.Local {
		s = s.Shift(span.Left)
	}
	force := s.Definite(span.Left, span.Right)
	moment := s.MulX().Definite(span.Left, span.Right)
	if !s.IsFinite() || !isFinite(force) || !isFinite(moment) {
		return nil, fmt.Errorf("%s over %s is not finite: %w", e, span, expr.ErrNotIntegrable)
	}
	return s, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
