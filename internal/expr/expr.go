// Package expr holds real-valued expressions in a single free variable.
//
// An Expr is a plain syntax tree that can be evaluated numerically at any
// point. Expressions that belong to the integrable family (see Series) can
// also be lowered into a closed form that supports exact integration, which
// is what the diagram builder needs for distributed loads.
package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Expr represents an expression in one free variable.
type Expr interface {
	// Eval evaluates the expression with the free variable set to x.
	Eval(x float64) float64
	String() string
}

// Num is a numeric constant.
type Num struct {
	V float64
}

// Var is the free variable. Name is kept for printing only.
type Var struct {
	Name string
}

// Neg is unary minus.
type Neg struct {
	X Expr
}

// Binary is an arithmetic operation. Op is one of '+', '-', '*', '/', '^'.
type Binary struct {
	Op   byte
	X, Y Expr
}

// Call applies a named elementary function to its argument.
type Call struct {
	Fn  string
	Arg Expr
}

// functions lists every function name the parser accepts.
var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"log":  math.Log,
	"ln":   math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
}

// Const returns a numeric constant.
func Const(v float64) Expr { return Num{V: v} }

// Mul returns a * b.
func Mul(a, b Expr) Expr { return Binary{Op: '*', X: a, Y: b} }

func (n Num) Eval(float64) float64 { return n.V }

func (n Num) String() string { return strconv.FormatFloat(n.V, 'g', -1, 64) }

func (v Var) Eval(x float64) float64 { return x }

func (v Var) String() string { return v.Name }

func (n Neg) Eval(x float64) float64 { return -n.X.Eval(x) }

func (n Neg) String() string { return "-" + wrap(n.X) }

func (b Binary) Eval(x float64) float64 {
	l, r := b.X.Eval(x), b.Y.Eval(x)
	switch b.Op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	}
	panic(fmt.Errorf("expr: unknown operator %q", b.Op))
}

func (b Binary) String() string {
	return fmt.Sprintf("%s %c %s", wrap(b.X), b.Op, wrap(b.Y))
}

func (c Call) Eval(x float64) float64 {
	f, ok := functions[c.Fn]
	if !ok {
		panic(fmt.Errorf("expr: unknown function %q", c.Fn))
	}
	return f(c.Arg.Eval(x))
}

func (c Call) String() string { return c.Fn + "(" + c.Arg.String() + ")" }

func wrap(e Expr) string {
	switch e.(type) {
	case Binary, Neg:
		return "(" + e.String() + ")"
	}
	return e.String()
}
