package expr

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseEval(t *testing.T) {
	tcs := []struct {
		in   string
		want float64 // at x = 2
	}{
		{"10*x+5", 25},
		{"10*x**2+5", 45},
		{"10*x^2+5", 45},
		{"-x^2", -4},
		{"-20 + x**2", -16},
		{"2^-1", 0.5},
		{"(x+1)*(x-1)", 3},
		{"x**2**3", 256},
		{"sin(pi/2)", 1},
		{"exp(0) + e - e", 1},
		{"1/x", 0.5},
		{"-10", -10},
		{"+x", 2},
		{"3*x/4", 1.5},
	}
	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			e, err := Parse(tc.in, "x")
			if err != nil {
				t.Fatal(err)
			}
			if got := e.Eval(2); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Eval(2) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseVariableName(t *testing.T) {
	e, err := Parse("3*s + 1", "s")
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Eval(2); got != 7 {
		t.Fatalf("Eval(2) = %v, want 7", got)
	}
	if _, err := Parse("3*x + 1", "s"); err == nil {
		t.Fatal("expected error for foreign variable")
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "2*", "(x", "sin x", "y+1", "x $ 2", "2 3"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in, "x")
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", in, err)
			}
		})
	}
}

func TestLowerPolynomial(t *testing.T) {
	s, err := Lower(MustParse("3*x^2 - 2*x + 1", "x"))
	if err != nil {
		t.Fatal(err)
	}
	want := Series{{Coef: 1}, {Coef: -2, Pow: 1}, {Coef: 3, Pow: 2}}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("Lower mismatch (-want +got):\n%s", diff)
	}

	got := s.Integrate()
	want = Series{{Coef: 1, Pow: 1}, {Coef: -1, Pow: 2}, {Coef: 1, Pow: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Integrate mismatch (-want +got):\n%s", diff)
	}
	if v := s.Definite(0, 3); v != 3-9+27 {
		t.Fatalf("Definite(0, 3) = %v, want 21", v)
	}
}

func TestLowerMatchesEval(t *testing.T) {
	srcs := []string{
		"-20 + x**2",
		"(x - 1)^3 / 4",
		"sin(2*x + 1)",
		"x^2*cos(x)",
		"x*exp(-x)",
		"sinh(x) + cosh(2*x)",
		"2^x",
		"sin(x)*cos(3*x)",
		"sin(x)^2",
		"cos(x)*cos(x)",
		"exp(x)*exp(-2*x)",
		"sqrt(4)*x",
	}
	xs := []float64{-1.5, 0, 0.3, 1, 2.7}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			e := MustParse(src, "x")
			s, err := Lower(e)
			if err != nil {
				t.Fatal(err)
			}
			var want, got []float64
			for _, x := range xs {
				want = append(want, e.Eval(x))
				got = append(got, s.Eval(x))
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Fatalf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntegrateDerivative(t *testing.T) {
	srcs := []string{
		"7",
		"x^5 - 3*x",
		"sin(2*x + 1)",
		"x^2*cos(x)",
		"x^3*exp(-x/2)",
		"x*sin(3*x) + cos(x)",
		"sinh(x)",
		"2^x",
	}
	const h = 1e-5
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			s, err := Lower(MustParse(src, "x"))
			if err != nil {
				t.Fatal(err)
			}
			f := s.Integrate()
			for _, x := range []float64{-1, 0.5, 2} {
				d := (f.Eval(x+h) - f.Eval(x-h)) / (2 * h)
				if math.Abs(d-s.Eval(x)) > 1e-5*math.Max(1, math.Abs(d)) {
					t.Fatalf("d/dx of antiderivative at %v = %v, want %v", x, d, s.Eval(x))
				}
			}
		})
	}
}

func TestNotIntegrable(t *testing.T) {
	for _, src := range []string{"1/x", "x^0.5", "x^-1", "log(x)", "tan(x)", "exp(x)*sin(x)", "sin(x^2)", "abs(x)", "x^x", "sqrt(-1)", "log(0)", "10^400", "x*log(-1)", "1/10^400"} {
		t.Run(src, func(t *testing.T) {
			_, err := Lower(MustParse(src, "x"))
			if !errors.Is(err, ErrNotIntegrable) {
				t.Fatalf("Lower(%q) error = %v, want ErrNotIntegrable", src, err)
			}
		})
	}
}

func TestShift(t *testing.T) {
	s, err := Lower(MustParse("x^3 - 2*x + sin(x) + exp(2*x)", "x"))
	if err != nil {
		t.Fatal(err)
	}
	const a = 1.25
	shifted := s.Shift(a)
	for _, x := range []float64{-1, 0, 1.25, 3} {
		want, got := s.Eval(x-a), shifted.Eval(x)
		if math.Abs(want-got) > 1e-9*math.Max(1, math.Abs(want)) {
			t.Fatalf("Shift(%v) at %v = %v, want %v", a, x, got, want)
		}
	}
}

func TestConst(t *testing.T) {
	if v, ok := Series(nil).Const(); !ok || v != 0 {
		t.Fatalf("zero series Const() = %v, %v", v, ok)
	}
	if _, ok := Monomial(2, 1).Const(); ok {
		t.Fatal("x reported as constant")
	}
	s, err := Lower(MustParse("cos(0*x) * 3", "x"))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Const(); !ok || v != 3 {
		t.Fatalf("Const() = %v, %v; want 3, true", v, ok)
	}
}
