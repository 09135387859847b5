package beam

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/alexiusacademia/gobeam/internal/expr"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/piecewise"
	"github.com/alexiusacademia/gobeam/internal/statics"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// canonical returns the 9 m beam on supports at 2 and 7 used throughout the
// tests.
func canonical(t *testing.T, extra ...load.Load) *Beam {
	t.Helper()
	b, err := New(9)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetPinnedSupport(2); err != nil {
		t.Fatal(err)
	}
	if err := b.SetRollingSupport(7); err != nil {
		t.Fatal(err)
	}
	loads := append([]load.Load{
		load.UniformV(-10, 3, 9),
		load.PointV{Force: -20, Coord: 3},
		load.UniformV(-20, 0, 2),
	}, extra...)
	if err := b.AddLoads(loads...); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCanonicalBeam(t *testing.T) {
	b := canonical(t)
	s := b.Sample(19)

	wantV := []float64{0, -10, -20, -30, 36, 36, 16, 11, 6, 1, -4, -9, -14, -19, 20, 15, 10, 5, 0}
	if diff := cmp.Diff(wantV, s.Shear, approx); diff != "" {
		t.Errorf("shear (-want +got):\n%s", diff)
	}
	wantM := []float64{0, -2.5, -10, -22.5, -40, -22, -4, 2.75, 7, 8.75, 8, 4.75, -1, -9.25, -20, -11.25, -5, -1.25, 0}
	if diff := cmp.Diff(wantM, s.Moment, approx); diff != "" {
		t.Errorf("moment (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(statics.Reactions{Ay: 76, By: 44}, b.Reactions(), approx); diff != "" {
		t.Errorf("reactions (-want +got):\n%s", diff)
	}
}

func TestCanonicalNormalForce(t *testing.T) {
	b := canonical(t,
		load.PointH{Force: 15, Coord: 5},
		load.UniformH(-2, 7, 9),
	)
	s := b.Sample(19)

	wantN := []float64{0, 0, 0, 0, 11, 11, 11, 11, 11, 11, -4, -4, -4, -4, -4, -3, -2, -1, 0}
	if diff := cmp.Diff(wantN, s.Normal, approx); diff != "" {
		t.Errorf("normal (-want +got):\n%s", diff)
	}
	wantQ := []float64{-20, -20, -20, -20, -20, 0, -10, -10, -10, -10, -10, -10, -10, -10, -10, -10, -10, -10, -10}
	if diff := cmp.Diff(wantQ, s.DistributedV, approx); diff != "" {
		t.Errorf("q_y (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(statics.Reactions{Ax: -11, Ay: 76, By: 44}, b.Reactions(), approx); diff != "" {
		t.Errorf("reactions (-want +got):\n%s", diff)
	}
}

func TestTorque(t *testing.T) {
	b, err := NewSpan(0, 9, WithSupports(2, 7))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoads(load.Torque{Torque: 30, Coord: 4}); err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0, 0, 0, 0, -3, -6, -9, 18, 15, 12, 9, 6, 3, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(want, b.Sample(19).Moment, approx); diff != "" {
		t.Fatalf("moment (-want +got):\n%s", diff)
	}

	m := b.Diagrams().Moment
	jump := m.Eval(4) - m.Eval(math.Nextafter(4, 0))
	if math.Abs(jump-30) > 1e-9 {
		t.Fatalf("moment jump at torque = %v, want 30", jump)
	}
}

func TestUnloadedBeam(t *testing.T) {
	b, err := NewSpan(-1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Reactions(); got != (statics.Reactions{}) {
		t.Fatalf("reactions = %v, want zero", got)
	}
	s := b.Sample(11)
	zeros := make([]float64, 11)
	for name, ys := range map[string][]float64{"N": s.Normal, "V": s.Shear, "M": s.Moment} {
		if diff := cmp.Diff(zeros, ys); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
}

func TestBoundaryConditions(t *testing.T) {
	tri, err := load.ParseV("-3*x^2 + sin(x)", "x", 0.5, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSpan(0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetPinnedSupport(0.25); err != nil {
		t.Fatal(err)
	}
	if err := b.SetRollingSupport(5.5); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoads(
		tri,
		load.PointV{Force: 12, Coord: 1.5},
		load.PointH{Force: -8, Coord: 5},
		load.Torque{Torque: -14, Coord: 2.25},
	); err != nil {
		t.Fatal(err)
	}

	d := b.Diagrams()
	x0, x1 := b.Span()
	for name, f := range map[string]piecewise.Function{"N": d.Normal, "V": d.Shear, "M": d.Moment} {
		if got := f.Eval(x0); got != 0 {
			t.Errorf("%s(x0) = %v, want 0", name, got)
		}
		if got := f.Eval(x1); math.Abs(got) > 1e-9 {
			t.Errorf("%s(x1) = %v, want 0", name, got)
		}
	}
}

func TestEquilibrium(t *testing.T) {
	loads := []load.Load{
		load.DistributedV{Intensity: expr.MustParse("2*x - x^2/4", "x"), Span: load.Interval{Left: 1, Right: 5}},
		load.PointV{Force: -7, Coord: 6.5},
		load.UniformH(3, 0, 2),
		load.Torque{Torque: 9, Coord: 3},
	}
	b, err := NewSpan(0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetPinnedSupport(5.5); err != nil {
		t.Fatal(err)
	}
	if err := b.SetRollingSupport(1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoads(loads...); err != nil {
		t.Fatal(err)
	}

	var r statics.Resultant
	r.AddDistributedV(mustLower(t, "2*(x-1) - (x-1)^2/4"), 1, 5)
	r.AddPointV(-7, 6.5)
	r.AddDistributedH(expr.Constant(3), 0, 2)
	r.AddTorque(9)

	re := b.Reactions()
	xA, xB := b.PinnedSupport(), b.RollingSupport()
	got := []float64{
		re.Ax + r.Fx,
		re.Ay + re.By + r.Fy,
		re.Ay*xA + re.By*xB + r.M,
		re.By*(xB-xA) + (r.M - r.Fy*xA),
	}
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, got, approx); diff != "" {
		t.Fatalf("residuals (-want +got):\n%s", diff)
	}
}

func TestSuperposition(t *testing.T) {
	setA := []load.Load{
		load.UniformV(-4, 1, 3),
		load.Torque{Torque: 5, Coord: 6},
		load.PointH{Force: 2, Coord: 4},
	}
	setB := []load.Load{
		load.DistributedV{Intensity: expr.MustParse("cos(x)", "x"), Span: load.Interval{Left: 2, Right: 7}},
		load.PointV{Force: -3, Coord: 8},
		load.UniformH(-1, 5, 9),
	}
	analyze := func(loads []load.Load) Analysis {
		t.Helper()
		a, err := Analyze(0, 9, 1.5, 8.5, loads)
		if err != nil {
			t.Fatal(err)
		}
		return a
	}
	xs := piecewise.Linspace(0, 9, 91)
	a := analyze(setA).Sample(xs)
	b := analyze(setB).Sample(xs)
	ab := analyze(append(append([]load.Load(nil), setA...), setB...)).Sample(xs)

	sum := func(p, q []float64) []float64 {
		out := make([]float64, len(p))
		for i := range p {
			out[i] = p[i] + q[i]
		}
		return out
	}
	for _, tc := range []struct {
		name      string
		want, got []float64
	}{
		{"N", sum(a.Normal, b.Normal), ab.Normal},
		{"V", sum(a.Shear, b.Shear), ab.Shear},
		{"M", sum(a.Moment, b.Moment), ab.Moment},
	} {
		if diff := cmp.Diff(tc.want, tc.got, approx); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestShiftOrigin(t *testing.T) {
	local := load.DistributedV{Intensity: expr.MustParse("x", "x"), Span: load.Interval{Left: 2, Right: 4}}
	global := load.DistributedV{
		Intensity: expr.MustParse("x - 2", "x"),
		Span:      load.Interval{Left: 2, Right: 4},
		Origin:    load.Global,
	}

	xs := piecewise.Linspace(0, 6, 25)
	sample := func(l load.Load) Samples {
		t.Helper()
		a, err := Analyze(0, 6, 0, 6, []load.Load{l})
		if err != nil {
			t.Fatal(err)
		}
		return a.Sample(xs)
	}
	if diff := cmp.Diff(sample(global), sample(local), approx); diff != "" {
		t.Fatalf("local vs global (-want +got):\n%s", diff)
	}

	// total load of x over [0, 2] in local coordinates is 2
	a, err := Analyze(0, 6, 0, 6, []load.Load{local})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Reactions.Ay + a.Reactions.By; math.Abs(got+2) > 1e-12 {
		t.Fatalf("sum of reactions = %v, want -2", got)
	}
}

func TestDomainErrors(t *testing.T) {
	var de *DomainError
	if _, err := New(0); !errors.As(err, &de) {
		t.Errorf("New(0) error = %v, want *DomainError", err)
	}
	if _, err := NewSpan(3, 3); !errors.As(err, &de) {
		t.Errorf("NewSpan(3, 3) error = %v, want *DomainError", err)
	}
	if _, err := New(5, WithSupports(1, 6)); !errors.As(err, &de) {
		t.Errorf("New with support outside error = %v, want *DomainError", err)
	}

	b := canonical(t)
	before := b.Analysis()
	for name, err := range map[string]error{
		"pinned outside":    b.SetPinnedSupport(9.5),
		"rolling outside":   b.SetRollingSupport(-0.1),
		"point outside":     b.AddLoads(load.PointV{Force: 1, Coord: 10}),
		"window outside":    b.AddLoads(load.UniformV(1, 8, 9.5)),
		"reversed window":   b.AddLoads(load.UniformV(1, 5, 4)),
		"shorter than load": b.SetLength(8),
		"negative length":   b.SetLength(-1),
	} {
		if !errors.As(err, &de) {
			t.Errorf("%s: error = %v, want *DomainError", name, err)
		}
	}
	if len(b.Loads()) != 3 || b.PinnedSupport() != 2 || b.RollingSupport() != 7 {
		t.Fatalf("beam changed after rejected mutations: loads %v, supports %v/%v",
			b.Loads(), b.PinnedSupport(), b.RollingSupport())
	}
	if diff := cmp.Diff(before.Reactions, b.Reactions()); diff != "" {
		t.Fatalf("reactions changed (-before +after):\n%s", diff)
	}
}

type foreignLoad struct {
	load.PointV
}

func TestUnsupportedLoadType(t *testing.T) {
	b := canonical(t)
	for name, batch := range map[string][]load.Load{
		"embedded variant": {load.PointV{Force: -1, Coord: 4}, foreignLoad{load.PointV{Force: -1, Coord: 5}}},
		"nil":              {load.PointV{Force: -1, Coord: 4}, nil},
	} {
		err := b.AddLoads(batch...)
		var ue *UnsupportedLoadTypeError
		if !errors.As(err, &ue) {
			t.Fatalf("%s: error = %v, want *UnsupportedLoadTypeError", name, err)
		}
		if ue.Index != 1 {
			t.Errorf("%s: index = %d, want 1", name, ue.Index)
		}
	}
	if got := len(b.Loads()); got != 3 {
		t.Fatalf("loads = %d after rejected batches, want 3", got)
	}
}

func TestSingularSupports(t *testing.T) {
	b := canonical(t)
	err := b.SetRollingSupport(2)
	var se *statics.SingularSystemError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *statics.SingularSystemError", err)
	}
	if b.RollingSupport() != 7 {
		t.Fatalf("rolling support = %v after failed move, want 7", b.RollingSupport())
	}
	if diff := cmp.Diff(statics.Reactions{Ay: 76, By: 44}, b.Reactions(), approx); diff != "" {
		t.Fatalf("reactions (-want +got):\n%s", diff)
	}
}

func TestSpanFarFromOrigin(t *testing.T) {
	b, err := NewSpan(1e9, 1e9+10, WithSupports(1e9+1, 1e9+9))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoads(load.PointV{Force: -10, Coord: 1e9 + 5}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(statics.Reactions{Ay: 5, By: 5}, b.Reactions(), approx); diff != "" {
		t.Fatalf("reactions (-want +got):\n%s", diff)
	}
}

func TestIntegrationError(t *testing.T) {
	b := canonical(t)
	bad, err := load.ParseV("1/x", "x", 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	err = b.AddLoads(load.PointV{Force: -1, Coord: 1}, bad)
	var ie *IntegrationError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want *IntegrationError", err)
	}
	if !errors.Is(err, expr.ErrNotIntegrable) {
		t.Fatalf("error = %v does not wrap ErrNotIntegrable", err)
	}
	if ie.Index != 4 {
		t.Errorf("index = %d, want 4", ie.Index)
	}
	if got := len(b.Loads()); got != 3 {
		t.Fatalf("loads = %d after rejected batch, want 3", got)
	}
}

func TestNonFiniteIntensity(t *testing.T) {
	for _, src := range []string{"sqrt(-1)", "log(0)", "10^400", "x*log(-1)", "1/10^400", "exp(200*x)"} {
		t.Run(src, func(t *testing.T) {
			b := canonical(t)
			q, err := load.ParseV(src, "x", 3, 9)
			if err != nil {
				t.Fatal(err)
			}
			err = b.AddLoads(q)
			var ie *IntegrationError
			if !errors.As(err, &ie) {
				t.Fatalf("error = %v, want *IntegrationError", err)
			}
			if !errors.Is(err, expr.ErrNotIntegrable) {
				t.Fatalf("error = %v does not wrap ErrNotIntegrable", err)
			}
			if diff := cmp.Diff(statics.Reactions{Ay: 76, By: 44}, b.Reactions(), approx); diff != "" {
				t.Fatalf("reactions changed (-want +got):\n%s", diff)
			}
			if got := b.Diagrams().Moment.Eval(4); math.IsNaN(got) {
				t.Fatal("moment is NaN after rejected load")
			}
		})
	}
}

func TestSetLength(t *testing.T) {
	b := canonical(t)
	if err := b.SetLength(12); err != nil {
		t.Fatal(err)
	}
	if got := b.Length(); got != 12 {
		t.Fatalf("length = %v, want 12", got)
	}
	// supports did not move, so neither did the reactions
	if diff := cmp.Diff(statics.Reactions{Ay: 76, By: 44}, b.Reactions(), approx); diff != "" {
		t.Fatalf("reactions (-want +got):\n%s", diff)
	}
	m := b.Diagrams().Moment
	if got := m.Eval(12); math.Abs(got) > 1e-9 {
		t.Fatalf("M(x1) = %v, want 0", got)
	}
}

func TestLoggerReceivesRebuilds(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b, err := New(4, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoads(load.PointV{Force: -2, Coord: 1}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), "beam analysed"); got != 2 {
		t.Fatalf("rebuild log lines = %d, want 2:\n%s", got, buf.String())
	}
}

func TestLoadsIsCopy(t *testing.T) {
	b := canonical(t)
	ls := b.Loads()
	ls[0] = load.PointV{Force: 100, Coord: 1}
	if _, ok := b.Loads()[0].(load.DistributedV); !ok {
		t.Fatal("Loads exposed internal storage")
	}
}

func mustLower(t *testing.T, src string) expr.Series {
	t.Helper()
	s, err := expr.Lower(expr.MustParse(src, "x"))
	if err != nil {
		t.Fatal(err)
	}
	return s
}
