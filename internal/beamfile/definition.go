package beamfile

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/Konstantin8105/errors"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/expr"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

// Definition is a validated beam definition.
type Definition struct {
	Name            string
	X0, X1          float64
	Pinned, Rolling float64
	Variable        string
	Loads           []CaseLoad
}

// CaseLoad is a load tagged with its load case.
type CaseLoad struct {
	Case nscp.LoadCase
	Load load.Load
}

// Definition validates f. Every problem found is reported in a single error
// tree rather than stopping at the first one.
func (f *File) Definition() (*Definition, error) {
	et := errors.New("invalid beam definition")

	d := &Definition{Name: f.Name, Variable: f.Variable}
	if d.Variable == "" {
		d.Variable = "x"
	}
	if !token.IsIdentifier(d.Variable) {
		et.Add(fmt.Errorf("variable %q is not an identifier", d.Variable))
	}

	spanOK := true
	switch {
	case len(f.Span) > 0 && f.Length != 0:
		et.Add(fmt.Errorf("give either span or length, not both"))
		spanOK = false
	case len(f.Span) > 0:
		if len(f.Span) != 2 {
			et.Add(fmt.Errorf("span must be [x0, x1], got %d values", len(f.Span)))
			spanOK = false
			break
		}
		d.X0, d.X1 = f.Span[0], f.Span[1]
	case f.Length != 0:
		d.X0, d.X1 = 0, f.Length
	default:
		et.Add(fmt.Errorf("span or length is required"))
		spanOK = false
	}
	if spanOK && !(d.X0 < d.X1) {
		et.Add(fmt.Errorf("span [%g, %g] is empty", d.X0, d.X1))
		spanOK = false
	}
	within := func(c float64) bool {
		return !spanOK || (d.X0 <= c && c <= d.X1)
	}

	d.Pinned, d.Rolling = d.X0, d.X1
	if f.Pinned != nil {
		d.Pinned = *f.Pinned
	}
	if f.Rolling != nil {
		d.Rolling = *f.Rolling
	}
	if !within(d.Pinned) {
		et.Add(fmt.Errorf("pinned support %g lies outside the span [%g, %g]", d.Pinned, d.X0, d.X1))
	}
	if !within(d.Rolling) {
		et.Add(fmt.Errorf("rolling support %g lies outside the span [%g, %g]", d.Rolling, d.X0, d.X1))
	}
	if spanOK && d.Pinned == d.Rolling {
		et.Add(fmt.Errorf("pinned and rolling supports coincide at %g", d.Pinned))
	}

	for i, l := range f.Loads {
		cl, err := l.convert(d.Variable)
		if err != nil {
			et.Add(fmt.Errorf("load %d (%s): %w", i+1, l.Type, err))
			continue
		}
		iv, err := load.Bounds(cl.Load)
		if err != nil {
			et.Add(fmt.Errorf("load %d: %w", i+1, err))
			continue
		}
		if !within(iv.Left) || !within(iv.Right) {
			et.Add(fmt.Errorf("load %d (%s) lies outside the span [%g, %g]", i+1, cl.Load, d.X0, d.X1))
			continue
		}
		d.Loads = append(d.Loads, cl)
	}

	if et.IsError() {
		return nil, et
	}
	return d, nil
}

func (l Load) convert(variable string) (CaseLoad, error) {
	c, err := nscp.ParseLoadCase(l.Case)
	if err != nil {
		return CaseLoad{}, err
	}
	cl := CaseLoad{Case: c}

	switch strings.ToLower(l.Type) {
	case "point_h":
		cl.Load = load.PointH{Force: l.Force, Coord: l.Coord}
	case "point_v":
		cl.Load = load.PointV{Force: l.Force, Coord: l.Coord}
	case "torque":
		cl.Load = load.Torque{Torque: l.Torque, Coord: l.Coord}
	case "distributed_h", "distributed_v":
		if len(l.Span) != 2 {
			return CaseLoad{}, fmt.Errorf("span must be [left, right]")
		}
		iv := load.Interval{Left: l.Span[0], Right: l.Span[1]}
		if !(iv.Left <= iv.Right) {
			return CaseLoad{}, fmt.Errorf("span %s is reversed", iv)
		}
		origin, err := parseOrigin(l.Origin)
		if err != nil {
			return CaseLoad{}, err
		}
		if strings.TrimSpace(l.Expr) == "" {
			return CaseLoad{}, fmt.Errorf("expr is required")
		}
		e, err := expr.Parse(l.Expr, variable)
		if err != nil {
			return CaseLoad{}, err
		}
		if _, err := expr.Lower(e); err != nil {
			return CaseLoad{}, fmt.Errorf("intensity %s: %w", e, err)
		}
		if strings.EqualFold(l.Type, "distributed_h") {
			cl.Load = load.DistributedH{Intensity: e, Span: iv, Origin: origin}
		} else {
			cl.Load = load.DistributedV{Intensity: e, Span: iv, Origin: origin}
		}
	case "":
		return CaseLoad{}, fmt.Errorf("type is required")
	default:
		return CaseLoad{}, fmt.Errorf("unknown load type %q", l.Type)
	}
	return cl, nil
}

func parseOrigin(s string) (load.Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return load.Local, nil
	case "global":
		return load.Global, nil
	}
	return 0, fmt.Errorf("unknown origin %q (expected local or global)", s)
}

// Cases returns the load cases present in the definition, in NSCP order.
func (d *Definition) Cases() []nscp.LoadCase {
	seen := make(map[nscp.LoadCase]bool)
	for _, cl := range d.Loads {
		seen[cl.Case] = true
	}
	var out []nscp.LoadCase
	for _, c := range nscp.LoadCases {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// Beam builds the beam with every load unfactored.
func (d *Definition) Beam(opts ...beam.Option) (*beam.Beam, error) {
	return d.build(nscp.Service.Factor, opts)
}

// Factored builds the beam with each load scaled by the combination's factor
// for its load case. Loads with a zero factor are left out.
func (d *Definition) Factored(lc nscp.LoadCombination, opts ...beam.Option) (*beam.Beam, error) {
	return d.build(lc.Factor, opts)
}

// CaseBeam builds the beam carrying only the loads of case c.
func (d *Definition) CaseBeam(c nscp.LoadCase, opts ...beam.Option) (*beam.Beam, error) {
	return d.build(func(lc nscp.LoadCase) float64 {
		if lc == c {
			return 1
		}
		return 0
	}, opts)
}

func (d *Definition) build(factor func(nscp.LoadCase) float64, opts []beam.Option) (*beam.Beam, error) {
	opts = append([]beam.Option{beam.WithSupports(d.Pinned, d.Rolling)}, opts...)
	b, err := beam.NewSpan(d.X0, d.X1, opts...)
	if err != nil {
		return nil, err
	}

	loads := make([]load.Load, 0, len(d.Loads))
	for _, cl := range d.Loads {
		k := factor(cl.Case)
		if k == 0 {
			continue
		}
		l := cl.Load
		if k != 1 {
			if l, err = load.Scale(l, k); err != nil {
				return nil, err
			}
		}
		loads = append(loads, l)
	}
	if err := b.AddLoads(loads...); err != nil {
		return nil, err
	}
	return b, nil
}

// File converts d back to its serialized form.
func (d *Definition) File() *File {
	pinned, rolling := d.Pinned, d.Rolling
	f := &File{
		Name:    d.Name,
		Span:    []float64{d.X0, d.X1},
		Pinned:  &pinned,
		Rolling: &rolling,
	}
	if d.Variable != "x" {
		f.Variable = d.Variable
	}
	for _, cl := range d.Loads {
		l := Load{Type: cl.Load.Kind()}
		if cl.Case != nscp.Dead {
			l.Case = string(cl.Case)
		}
		switch v := cl.Load.(type) {
		case load.PointH:
			l.Force, l.Coord = v.Force, v.Coord
		case load.PointV:
			l.Force, l.Coord = v.Force, v.Coord
		case load.Torque:
			l.Torque, l.Coord = v.Torque, v.Coord
		case load.DistributedH:
			l.Expr, l.Span = v.Intensity.String(), []float64{v.Span.Left, v.Span.Right}
			if v.Origin == load.Global {
				l.Origin = v.Origin.String()
			}
		case load.DistributedV:
			l.Expr, l.Span = v.Intensity.String(), []float64{v.Span.Left, v.Span.Right}
			if v.Origin == load.Global {
				l.Origin = v.Origin.String()
			}
		}
		f.Loads = append(f.Loads, l)
	}
	return f
}
