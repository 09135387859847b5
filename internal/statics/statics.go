// Package statics solves the equilibrium of a beam on one pinned and one
// rolling support.
//
// Forces are positive rightward and upward. Moments about the origin are
// counterclockwise positive for forces (F·x), and a clockwise point torque T
// contributes -T.
package statics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/expr"
)

// Resultant holds the total applied load: horizontal and vertical force and
// the moment about the origin.
type Resultant struct {
	Fx, Fy float64
	M      float64
}

// AddPointH adds a horizontal point force.
func (r *Resultant) AddPointH(force float64) {
	r.Fx += force
}

// AddPointV adds a vertical point force applied at coord.
func (r *Resultant) AddPointV(force, coord float64) {
	r.Fy += force
	r.M += force * coord
}

// AddTorque adds a clockwise point torque.
func (r *Resultant) AddTorque(torque float64) {
	r.M -= torque
}

// AddDistributedH adds a horizontal distributed load q over [a, b].
// q is written in the global coordinate.
func (r *Resultant) AddDistributedH(q expr.Series, a, b float64) {
	r.Fx += q.Definite(a, b)
}

// AddDistributedV adds a vertical distributed load q over [a, b].
// q is written in the global coordinate.
func (r *Resultant) AddDistributedV(q expr.Series, a, b float64) {
	r.Fy += q.Definite(a, b)
	r.M += q.MulX().Definite(a, b)
}

// Reactions are the support forces: horizontal and vertical at the pinned
// support A, vertical at the rolling support B.
type Reactions struct {
	Ax, Ay, By float64
}

func (r Reactions) String() string {
	return fmt.Sprintf("(F_Ax, F_Ay, F_By) = (%g, %g, %g)", r.Ax, r.Ay, r.By)
}

// SingularSystemError is returned when the support coordinates make the
// equilibrium equations singular, as when both supports coincide.
type SingularSystemError struct {
	PinnedSupport  float64
	RollingSupport float64
	Err            error
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("singular equilibrium system for supports at %g (pinned) and %g (rolling): %v",
		e.PinnedSupport, e.RollingSupport, e.Err)
}

func (e *SingularSystemError) Unwrap() error { return e.Err }

// Solve returns the reactions that balance r for a pinned support at xA and a
// rolling support at xB. Moments are taken about the pinned support, so the
// three unknowns satisfy
//
//	-Ax                = Fx
//	-Ay - By           = Fy
//	     -(xB - xA)·By = M - xA·Fy
//
// and are found by inverting the 3x3 coefficient matrix. Only the support
// spacing enters the matrix, so its conditioning does not depend on where the
// beam lies along the axis.
func Solve(xA, xB float64, r Resultant) (Reactions, error) {
	a := mat.NewDense(3, 3, []float64{
		-1, 0, 0,
		0, -1, -1,
		0, 0, -(xB - xA),
	})
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Reactions{}, &SingularSystemError{PinnedSupport: xA, RollingSupport: xB, Err: err}
	}
	var f mat.VecDense
	f.MulVec(&inv, mat.NewVecDense(3, []float64{r.Fx, r.Fy, r.M - xA*r.Fy}))
	return Reactions{Ax: f.AtVec(0), Ay: f.AtVec(1), By: f.AtVec(2)}, nil
}
