package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrNotIntegrable is returned when an expression falls outside the family
// that Series can represent, so no closed-form antiderivative is available.
var ErrNotIntegrable = errors.New("expression has no closed-form antiderivative")

// Kind selects the elementary factor of a Term.
type Kind uint8

const (
	None Kind = iota // constant factor 1
	SinKind
	CosKind
	ExpKind
)

// maxDegree bounds integer powers produced while lowering.
const maxDegree = 64

// Term is Coef * x^Pow * g(A*x + B), g selected by Kind.
// For Kind None, A and B are zero.
type Term struct {
	Coef float64
	Pow  int
	Kind Kind
	A, B float64
}

// Series is a sum of terms. The family is closed under addition, scaling,
// multiplication by x, shifting of the origin and integration, which makes
// exact running integrals of distributed loads possible.
//
// The zero value is the zero function.
type Series []Term

// Constant returns the series for the constant v.
func Constant(v float64) Series {
	if v == 0 {
		return nil
	}
	return Series{{Coef: v}}
}

// Monomial returns c * x^n. n must not be negative.
func Monomial(c float64, n int) Series {
	if c == 0 {
		return nil
	}
	return Series{{Coef: c, Pow: n}}
}

func (t Term) eval(x float64) float64 {
	v := t.Coef
	if t.Pow != 0 {
		v *= powi(x, t.Pow)
	}
	switch t.Kind {
	case SinKind:
		v *= math.Sin(t.A*x + t.B)
	case CosKind:
		v *= math.Cos(t.A*x + t.B)
	case ExpKind:
		v *= math.Exp(t.A*x + t.B)
	}
	return v
}

// Eval evaluates the series at x.
func (s Series) Eval(x float64) float64 {
	var sum float64
	for _, t := range s {
		sum += t.eval(x)
	}
	return sum
}

// IsZero reports whether the series has no terms.
func (s Series) IsZero() bool { return len(s) == 0 }

// IsFinite reports whether every coefficient and argument of s is finite.
func (s Series) IsFinite() bool {
	for _, t := range s {
		for _, v := range []float64{t.Coef, t.A, t.B} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Const returns the value of s if it is a constant.
func (s Series) Const() (float64, bool) {
	switch len(s) {
	case 0:
		return 0, true
	case 1:
		if s[0].Pow == 0 && s[0].Kind == None {
			return s[0].Coef, true
		}
	}
	return 0, false
}

// linear returns (a, b) if s equals a*x + b.
func (s Series) linear() (a, b float64, ok bool) {
	for _, t := range s {
		if t.Kind != None {
			return 0, 0, false
		}
		switch t.Pow {
		case 0:
			b += t.Coef
		case 1:
			a += t.Coef
		default:
			return 0, 0, false
		}
	}
	return a, b, true
}

// Plus returns s + o.
func (s Series) Plus(o Series) Series {
	out := make(Series, 0, len(s)+len(o))
	out = append(out, s...)
	out = append(out, o...)
	return out.normalize()
}

// Scale returns k * s.
func (s Series) Scale(k float64) Series {
	if k == 0 {
		return nil
	}
	out := make(Series, len(s))
	for i, t := range s {
		t.Coef *= k
		out[i] = t
	}
	return out
}

// MulX returns x * s.
func (s Series) MulX() Series {
	out := make(Series, len(s))
	for i, t := range s {
		t.Pow++
		out[i] = t
	}
	return out
}

// Times returns s * o. Products of two non-polynomial factors are reduced
// with the product-to-sum identities; exponential times trigonometric
// factors leave the family and yield ErrNotIntegrable.
func (s Series) Times(o Series) (Series, error) {
	var out Series
	for _, p := range s {
		for _, q := range o {
			terms, err := mulTerms(p, q)
			if err != nil {
				return nil, err
			}
			out = append(out, terms...)
		}
	}
	return out.normalize(), nil
}

func mulTerms(p, q Term) (Series, error) {
	c := p.Coef * q.Coef
	n := p.Pow + q.Pow
	if n > maxDegree {
		return nil, fmt.Errorf("degree %d exceeds %d: %w", n, maxDegree, ErrNotIntegrable)
	}
	if p.Kind == None {
		return Series{{Coef: c, Pow: n, Kind: q.Kind, A: q.A, B: q.B}}, nil
	}
	if q.Kind == None {
		return Series{{Coef: c, Pow: n, Kind: p.Kind, A: p.A, B: p.B}}, nil
	}
	if p.Kind == ExpKind && q.Kind == ExpKind {
		return Series{{Coef: c, Pow: n, Kind: ExpKind, A: p.A + q.A, B: p.B + q.B}}, nil
	}
	if p.Kind == ExpKind || q.Kind == ExpKind {
		return nil, ErrNotIntegrable
	}
	if p.Kind == CosKind && q.Kind == SinKind {
		p, q = q, p
	}
	// u = p's argument, v = q's argument
	du, dv := p.A-q.A, p.B-q.B // u - v
	su, sv := p.A+q.A, p.B+q.B // u + v
	h := c / 2
	switch {
	case p.Kind == SinKind && q.Kind == SinKind:
		// sin u sin v = (cos(u-v) - cos(u+v)) / 2
		return Series{
			{Coef: h, Pow: n, Kind: CosKind, A: du, B: dv},
			{Coef: -h, Pow: n, Kind: CosKind, A: su, B: sv},
		}, nil
	case p.Kind == CosKind && q.Kind == CosKind:
		// cos u cos v = (cos(u-v) + cos(u+v)) / 2
		return Series{
			{Coef: h, Pow: n, Kind: CosKind, A: du, B: dv},
			{Coef: h, Pow: n, Kind: CosKind, A: su, B: sv},
		}, nil
	default:
		// sin u cos v = (sin(u+v) + sin(u-v)) / 2
		return Series{
			{Coef: h, Pow: n, Kind: SinKind, A: su, B: sv},
			{Coef: h, Pow: n, Kind: SinKind, A: du, B: dv},
		}, nil
	}
}

// Shift substitutes x - a for x, moving the origin of s to x = a.
func (s Series) Shift(a float64) Series {
	if a == 0 {
		return s
	}
	var out Series
	for _, t := range s {
		b := t.B
		if t.Kind != None {
			b -= t.A * a
		}
		// (x - a)^n = sum_k C(n,k) x^k (-a)^(n-k)
		binom := 1.0
		for k := t.Pow; k >= 0; k-- {
			out = append(out, Term{
				Coef: t.Coef * binom * powi(-a, t.Pow-k),
				Pow:  k,
				Kind: t.Kind,
				A:    t.A,
				B:    b,
			})
			binom = binom * float64(k) / float64(t.Pow-k+1)
		}
	}
	return out.normalize()
}

// Integrate returns an antiderivative of s with no constant term added.
func (s Series) Integrate() Series {
	var out Series
	for _, t := range s.normalize() {
		out = append(out, integrateTerm(t)...)
	}
	return out.normalize()
}

// Definite returns the integral of s over [a, b].
func (s Series) Definite(a, b float64) float64 {
	f := s.Integrate()
	return f.Eval(b) - f.Eval(a)
}

// integrateTerm integrates c x^n g(Ax+B) by parts, lowering n each step.
func integrateTerm(t Term) Series {
	if t.Kind == None {
		return Series{{Coef: t.Coef / float64(t.Pow+1), Pow: t.Pow + 1}}
	}
	a := t.A
	var head Term
	var rest Term
	switch t.Kind {
	case ExpKind:
		// ∫x^n e^u = x^n e^u / a - n/a ∫x^(n-1) e^u
		head = Term{Coef: t.Coef / a, Pow: t.Pow, Kind: ExpKind, A: a, B: t.B}
		rest = Term{Coef: -t.Coef * float64(t.Pow) / a, Pow: t.Pow - 1, Kind: ExpKind, A: a, B: t.B}
	case SinKind:
		// ∫x^n sin u = -x^n cos u / a + n/a ∫x^(n-1) cos u
		head = Term{Coef: -t.Coef / a, Pow: t.Pow, Kind: CosKind, A: a, B: t.B}
		rest = Term{Coef: t.Coef * float64(t.Pow) / a, Pow: t.Pow - 1, Kind: CosKind, A: a, B: t.B}
	case CosKind:
		// ∫x^n cos u = x^n sin u / a - n/a ∫x^(n-1) sin u
		head = Term{Coef: t.Coef / a, Pow: t.Pow, Kind: SinKind, A: a, B: t.B}
		rest = Term{Coef: -t.Coef * float64(t.Pow) / a, Pow: t.Pow - 1, Kind: SinKind, A: a, B: t.B}
	}
	if t.Pow == 0 {
		return Series{head}
	}
	return append(Series{head}, integrateTerm(rest)...)
}

// normalize folds constant elementary factors, merges like terms and drops
// zero coefficients. The result is sorted so equal series compare equal.
func (s Series) normalize() Series {
	type key struct {
		pow  int
		kind Kind
		a, b float64
	}
	sum := make(map[key]float64, len(s))
	var order []key
	for _, t := range s {
		if t.Kind != None && t.A == 0 {
			t.Coef *= Term{Coef: 1, Kind: t.Kind, B: t.B}.eval(0)
			t.Kind = None
		}
		if t.Kind == None {
			t.A, t.B = 0, 0
		}
		if t.Coef == 0 {
			continue
		}
		k := key{t.Pow, t.Kind, t.A, t.B}
		if _, ok := sum[k]; !ok {
			order = append(order, k)
		}
		sum[k] += t.Coef
	}
	out := make(Series, 0, len(order))
	for _, k := range order {
		if c := sum[k]; c != 0 {
			out = append(out, Term{Coef: c, Pow: k.pow, Kind: k.kind, A: k.a, B: k.b})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		p, q := out[i], out[j]
		if p.Kind != q.Kind {
			return p.Kind < q.Kind
		}
		if p.Pow != q.Pow {
			return p.Pow < q.Pow
		}
		if p.A != q.A {
			return p.A < q.A
		}
		return p.B < q.B
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s Series) String() string {
	if len(s) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range s {
		c := t.Coef
		if i > 0 {
			if c < 0 {
				sb.WriteString(" - ")
				c = -c
			} else {
				sb.WriteString(" + ")
			}
		}
		fmt.Fprintf(&sb, "%g", c)
		switch t.Pow {
		case 0:
		case 1:
			sb.WriteString("*x")
		default:
			fmt.Fprintf(&sb, "*x^%d", t.Pow)
		}
		switch t.Kind {
		case SinKind:
			fmt.Fprintf(&sb, "*sin(%g*x + %g)", t.A, t.B)
		case CosKind:
			fmt.Fprintf(&sb, "*cos(%g*x + %g)", t.A, t.B)
		case ExpKind:
			fmt.Fprintf(&sb, "*exp(%g*x + %g)", t.A, t.B)
		}
	}
	return sb.String()
}

func powi(x float64, n int) float64 {
	v := 1.0
	for ; n > 0; n-- {
		v *= x
	}
	return v
}
