package expr

import (
	"fmt"
	"math"
)

// Lower converts e into a Series. It fails with an error wrapping
// ErrNotIntegrable when e uses a construct outside the family, such as a
// negative or fractional power of the variable, division by a non-constant,
// or a function other than sin, cos, exp, sinh and cosh of a linear argument.
// Subexpressions that do not depend on the variable are folded numerically;
// a fold or coefficient that is NaN or infinite is rejected the same way.
func Lower(e Expr) (Series, error) {
	s, err := lowerNode(e)
	if err != nil {
		return nil, err
	}
	if !s.IsFinite() {
		return nil, fmt.Errorf("%s is not finite: %w", e, ErrNotIntegrable)
	}
	return s, nil
}

func lowerNode(e Expr) (Series, error) {
	switch v := e.(type) {
	case Num:
		return Constant(v.V), nil

	case Var:
		return Monomial(1, 1), nil

	case Neg:
		s, err := Lower(v.X)
		if err != nil {
			return nil, err
		}
		return s.Scale(-1), nil

	case Binary:
		return lowerBinary(v)

	case Call:
		return lowerCall(v)
	}
	return nil, fmt.Errorf("unsupported node %T: %w", e, ErrNotIntegrable)
}

func lowerBinary(b Binary) (Series, error) {
	x, err := Lower(b.X)
	if err != nil {
		return nil, err
	}
	y, err := Lower(b.Y)
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case '+':
		return x.Plus(y), nil
	case '-':
		return x.Plus(y.Scale(-1)), nil
	case '*':
		return x.Times(y)
	case '/':
		d, ok := y.Const()
		if !ok || d == 0 {
			return nil, fmt.Errorf("division by %s: %w", b.Y, ErrNotIntegrable)
		}
		return x.Scale(1 / d), nil
	case '^':
		return lowerPow(b, x, y)
	}
	return nil, fmt.Errorf("unknown operator %q: %w", b.Op, ErrNotIntegrable)
}

func lowerPow(b Binary, base, exp Series) (Series, error) {
	n, expConst := exp.Const()
	c, baseConst := base.Const()
	switch {
	case baseConst && expConst:
		return Constant(math.Pow(c, n)), nil

	case expConst:
		if n < 0 || n != math.Trunc(n) || n > maxDegree {
			return nil, fmt.Errorf("power %s: %w", b, ErrNotIntegrable)
		}
		out := Constant(1)
		for i := 0; i < int(n); i++ {
			var err error
			if out, err = out.Times(base); err != nil {
				return nil, err
			}
		}
		return out, nil

	case baseConst && c > 0:
		// c^u = exp(u ln c)
		a, k, ok := exp.linear()
		if !ok {
			return nil, fmt.Errorf("power %s: %w", b, ErrNotIntegrable)
		}
		l := math.Log(c)
		return Series{{Coef: 1, Kind: ExpKind, A: a * l, B: k * l}}.normalize(), nil
	}
	return nil, fmt.Errorf("power %s: %w", b, ErrNotIntegrable)
}

func lowerCall(c Call) (Series, error) {
	f, ok := functions[c.Fn]
	if !ok {
		return nil, fmt.Errorf("unknown function %q: %w", c.Fn, ErrNotIntegrable)
	}
	arg, err := Lower(c.Arg)
	if err != nil {
		return nil, err
	}
	if v, ok := arg.Const(); ok {
		return Constant(f(v)), nil
	}
	a, b, ok := arg.linear()
	if !ok {
		return nil, fmt.Errorf("%s of non-linear argument %s: %w", c.Fn, c.Arg, ErrNotIntegrable)
	}
	switch c.Fn {
	case "sin":
		return Series{{Coef: 1, Kind: SinKind, A: a, B: b}}, nil
	case "cos":
		return Series{{Coef: 1, Kind: CosKind, A: a, B: b}}, nil
	case "exp":
		return Series{{Coef: 1, Kind: ExpKind, A: a, B: b}}, nil
	case "sinh":
		return Series{
			{Coef: 0.5, Kind: ExpKind, A: a, B: b},
			{Coef: -0.5, Kind: ExpKind, A: -a, B: -b},
		}.normalize(), nil
	case "cosh":
		return Series{
			{Coef: 0.5, Kind: ExpKind, A: a, B: b},
			{Coef: 0.5, Kind: ExpKind, A: -a, B: -b},
		}.normalize(), nil
	}
	return nil, fmt.Errorf("function %s: %w", c.Fn, ErrNotIntegrable)
}
