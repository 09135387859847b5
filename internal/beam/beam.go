// Package beam holds a simply supported beam, the loads applied to it, and
// the reactions and internal-force diagrams derived from them.
//
// A Beam is not safe for concurrent mutation; use one Beam per goroutine.
package beam

import (
	"log/slog"

	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/statics"
)

// Beam is a one-dimensional beam on [x0, x1] with a pinned support and a
// rolling support. Every successful mutation re-derives the reactions and
// diagrams from the complete load set; a failed mutation leaves the beam
// unchanged.
type Beam struct {
	x0, x1  float64
	pinned  float64
	rolling float64
	loads   []load.Load

	result Analysis
	log    *slog.Logger
}

// Option configures a Beam.
type Option func(*Beam)

// WithLogger sets the logger used for debug output. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Beam) {
		if l != nil {
			b.log = l
		}
	}
}

// WithSupports places the pinned and rolling supports. Both must lie within
// the span.
func WithSupports(pinned, rolling float64) Option {
	return func(b *Beam) {
		b.pinned, b.rolling = pinned, rolling
	}
}

// New creates an unloaded beam on [0, length].
func New(length float64, opts ...Option) (*Beam, error) {
	if !(length > 0) {
		return nil, domainErrorf("beam length must be positive, got %g", length)
	}
	return NewSpan(0, length, opts...)
}

// NewSpan creates an unloaded beam on [x0, x1]. Unless WithSupports says
// otherwise the pinned support is at x0 and the rolling support at x1.
func NewSpan(x0, x1 float64, opts ...Option) (*Beam, error) {
	if !(x0 < x1) {
		return nil, domainErrorf("beam span [%g, %g] is empty", x0, x1)
	}
	b := &Beam{
		x0:      x0,
		x1:      x1,
		pinned:  x0,
		rolling: x1,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if !b.contains(b.pinned) || !b.contains(b.rolling) {
		return nil, domainErrorf("supports (%g, %g) must be located within the beam span [%g, %g]", b.pinned, b.rolling, x0, x1)
	}
	if err := b.rebuild(); err != nil {
		return nil, err
	}
	return b, nil
}

// Span returns the beam ends.
func (b *Beam) Span() (x0, x1 float64) { return b.x0, b.x1 }

// Length returns x1 - x0.
func (b *Beam) Length() float64 { return b.x1 - b.x0 }

// PinnedSupport returns the x-coordinate of the pinned support.
func (b *Beam) PinnedSupport() float64 { return b.pinned }

// RollingSupport returns the x-coordinate of the rolling support.
func (b *Beam) RollingSupport() float64 { return b.rolling }

// Loads returns the applied loads in insertion order.
func (b *Beam) Loads() []load.Load {
	return append([]load.Load(nil), b.loads...)
}

// Reactions returns the support reactions for the current load set.
func (b *Beam) Reactions() statics.Reactions { return b.result.Reactions }

// Diagrams returns the load and internal-force diagrams.
func (b *Beam) Diagrams() Diagrams { return b.result.Diagrams }

// Analysis returns the reactions and diagrams together.
func (b *Beam) Analysis() Analysis { return b.result }

// SetLength moves x1 to x0 + length. The supports and every load must still
// lie within the shortened span.
func (b *Beam) SetLength(length float64) error {
	if !(length > 0) {
		return domainErrorf("beam length must be positive, got %g", length)
	}
	x1 := b.x0 + length
	if b.pinned > x1 || b.rolling > x1 {
		return domainErrorf("length %g would leave a support outside the span [%g, %g]", length, b.x0, x1)
	}
	for i, l := range b.loads {
		iv, err := load.Bounds(l)
		if err != nil {
			return err
		}
		if iv.Right > x1 {
			return domainErrorf("length %g would leave load %d (%s) outside the span [%g, %g]", length, i, l, b.x0, x1)
		}
	}
	return b.mutate(func() { b.x1 = x1 })
}

// SetPinnedSupport moves the pinned support to c, which must lie within the
// span.
func (b *Beam) SetPinnedSupport(c float64) error {
	if !b.contains(c) {
		return domainErrorf("the pinned support must be located within the beam span [%g, %g], got %g", b.x0, b.x1, c)
	}
	return b.mutate(func() { b.pinned = c })
}

// SetRollingSupport moves the rolling support to c, which must lie within
// the span.
func (b *Beam) SetRollingSupport(c float64) error {
	if !b.contains(c) {
		return domainErrorf("the rolling support must be located within the beam span [%g, %g], got %g", b.x0, b.x1, c)
	}
	return b.mutate(func() { b.rolling = c })
}

// AddLoads appends loads to the beam and re-derives reactions and diagrams.
// The batch is rejected as a whole if any element is not a supported load
// kind, lies outside the span, or cannot be integrated.
func (b *Beam) AddLoads(loads ...load.Load) error {
	for i, l := range loads {
		switch l.(type) {
		case load.PointH, load.PointV, load.DistributedH, load.DistributedV, load.Torque:
		default:
			return &UnsupportedLoadTypeError{Index: i, Load: l}
		}
	}
	for i, l := range loads {
		iv, err := load.Bounds(l)
		if err != nil {
			return err
		}
		if !(iv.Left <= iv.Right) {
			return domainErrorf("load %d (%s): interval %s is reversed", i, l, iv)
		}
		if !b.contains(iv.Left) || !b.contains(iv.Right) {
			return domainErrorf("load %d (%s) must be applied within the beam span [%g, %g]", i, l, b.x0, b.x1)
		}
	}
	return b.mutate(func() {
		n := len(b.loads)
		b.loads = append(b.loads[:n:n], loads...)
	})
}

func (b *Beam) contains(c float64) bool {
	return b.x0 <= c && c <= b.x1
}

// mutate applies change and rebuilds; on failure the previous state is
// restored.
func (b *Beam) mutate(change func()) error {
	saved := *b
	change()
	if err := b.rebuild(); err != nil {
		*b = saved
		return err
	}
	return nil
}

func (b *Beam) rebuild() error {
	a, err := Analyze(b.x0, b.x1, b.pinned, b.rolling, b.loads)
	if err != nil {
		return err
	}
	b.result = a
	b.log.Debug("beam analysed",
		slog.Int("loads", len(b.loads)),
		slog.Float64("F_Ax", a.Reactions.Ax),
		slog.Float64("F_Ay", a.Reactions.Ay),
		slog.Float64("F_By", a.Reactions.By),
	)
	return nil
}
