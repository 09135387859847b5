package expr

import (
	"fmt"
	"go/scanner"
	"go/token"
	"math"
	"strconv"
)

// SyntaxError reports an expression that could not be parsed.
type SyntaxError struct {
	Src string
	Pos int // byte offset into Src
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: %s at offset %d in %q", e.Msg, e.Pos, e.Src)
}

type item struct {
	pos int
	tok token.Token
	lit string
}

type parser struct {
	src      string
	variable string
	items    []item
	i        int
}

// Parse parses src as an expression in the free variable named variable.
//
// The usual arithmetic operators are accepted, with both "^" and "**" for
// powers, plus the constants pi and e and the functions sin, cos, tan, exp,
// log (ln), sqrt, abs, sinh, cosh and tanh. Any other identifier is an error.
func Parse(src, variable string) (Expr, error) {
	if variable == "" {
		return nil, fmt.Errorf("expr: empty variable name")
	}
	p := &parser{src: src, variable: variable}
	if err := p.scan(); err != nil {
		return nil, err
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if it := p.peek(); it.tok != token.EOF {
		return nil, p.errorf(it, "unexpected %s", describe(it))
	}
	return e, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(src, variable string) Expr {
	e, err := Parse(src, variable)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) scan() error {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(p.src))

	var first error
	var s scanner.Scanner
	s.Init(file, []byte(p.src), func(pos token.Position, msg string) {
		if first == nil {
			first = &SyntaxError{Src: p.src, Pos: pos.Offset, Msg: msg}
		}
	}, 0)

	for {
		pos, tok, lit := s.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			// automatically inserted
			continue
		}
		p.items = append(p.items, item{pos: file.Offset(pos), tok: tok, lit: lit})
		if tok == token.EOF {
			break
		}
	}
	return first
}

func (p *parser) peek() item { return p.items[p.i] }

func (p *parser) next() item {
	it := p.items[p.i]
	if it.tok != token.EOF {
		p.i++
	}
	return it
}

func (p *parser) errorf(it item, format string, args ...any) error {
	return &SyntaxError{Src: p.src, Pos: it.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		it := p.peek()
		if it.tok != token.ADD && it.tok != token.SUB {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		op := byte('+')
		if it.tok == token.SUB {
			op = '-'
		}
		left = Binary{Op: op, X: left, Y: right}
	}
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		it := p.peek()
		if it.tok != token.MUL && it.tok != token.QUO {
			return left, nil
		}
		if it.tok == token.MUL && p.items[p.i+1].tok == token.MUL {
			// "**" belongs to power(), which already had its chance
			return nil, p.errorf(it, "misplaced power operator")
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		op := byte('*')
		if it.tok == token.QUO {
			op = '/'
		}
		left = Binary{Op: op, X: left, Y: right}
	}
}

func (p *parser) unary() (Expr, error) {
	switch p.peek().tok {
	case token.SUB:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	case token.ADD:
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	it := p.peek()
	switch {
	case it.tok == token.XOR:
		p.next()
	case it.tok == token.MUL && p.items[p.i+1].tok == token.MUL:
		p.next()
		p.next()
	default:
		return base, nil
	}
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: '^', X: base, Y: exp}, nil
}

func (p *parser) atom() (Expr, error) {
	it := p.next()
	switch it.tok {
	case token.INT, token.FLOAT:
		v, err := strconv.ParseFloat(it.lit, 64)
		if err != nil {
			return nil, p.errorf(it, "bad number %q", it.lit)
		}
		return Num{V: v}, nil

	case token.IDENT:
		if it.lit == p.variable {
			return Var{Name: it.lit}, nil
		}
		if _, ok := functions[it.lit]; ok && p.peek().tok == token.LPAREN {
			p.next()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return Call{Fn: it.lit, Arg: arg}, nil
		}
		switch it.lit {
		case "pi":
			return Num{V: math.Pi}, nil
		case "e":
			return Num{V: math.E}, nil
		}
		return nil, p.errorf(it, "unknown identifier %q (free variable is %q)", it.lit, p.variable)

	case token.LPAREN:
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.errorf(it, "unexpected %s", describe(it))
}

func (p *parser) expect(tok token.Token) error {
	it := p.next()
	if it.tok != tok {
		return p.errorf(it, "expected %s, found %s", tok, describe(it))
	}
	return nil
}

func describe(it item) string {
	if it.tok == token.EOF {
		return "end of expression"
	}
	if it.lit != "" {
		return strconv.Quote(it.lit)
	}
	return it.tok.String()
}
