package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Envelope is an axis-aligned bounding box. Values built with NewEnvelope
// always satisfy MinX <= MaxX and MinY <= MaxY.
type Envelope struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewEnvelope builds a normalized envelope from two corners given in any
// order.
func NewEnvelope(x1, y1, x2, y2 float64) Envelope {
	return Envelope{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// EnvelopeFromBound converts an orb bound.
func EnvelopeFromBound(b orb.Bound) Envelope {
	return NewEnvelope(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

// Bound converts the envelope to an orb bound.
func (e Envelope) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{e.MinX, e.MinY},
		Max: orb.Point{e.MaxX, e.MaxY},
	}
}

// Width returns MaxX - MinX.
func (e Envelope) Width() float64 { return e.MaxX - e.MinX }

// Height returns MaxY - MinY.
func (e Envelope) Height() float64 { return e.MaxY - e.MinY }

// Center returns the midpoint of the envelope.
func (e Envelope) Center() Coordinate {
	return XY((e.MinX+e.MaxX)/2, (e.MinY+e.MaxY)/2)
}

// Contains returns true if c lies inside or on the boundary.
func (e Envelope) Contains(c Coordinate) bool {
	return c.X >= e.MinX && c.X <= e.MaxX &&
		c.Y >= e.MinY && c.Y <= e.MaxY
}

// Intersects returns true if the two envelopes share at least one point.
func (e Envelope) Intersects(o Envelope) bool {
	return !(o.MaxX < e.MinX ||
		o.MinX > e.MaxX ||
		o.MaxY < e.MinY ||
		o.MinY > e.MaxY)
}

// Expand returns the envelope grown by margin in all directions.
func (e Envelope) Expand(margin float64) Envelope {
	return Envelope{
		MinX: e.MinX - margin,
		MinY: e.MinY - margin,
		MaxX: e.MaxX + margin,
		MaxY: e.MaxY + margin,
	}
}

// ExpandToInclude returns the smallest envelope covering e and c.
func (e Envelope) ExpandToInclude(c Coordinate) Envelope {
	return Envelope{
		MinX: math.Min(e.MinX, c.X),
		MinY: math.Min(e.MinY, c.Y),
		MaxX: math.Max(e.MaxX, c.X),
		MaxY: math.Max(e.MaxY, c.Y),
	}
}

// Union returns the smallest envelope covering both.
func (e Envelope) Union(o Envelope) Envelope {
	return Envelope{
		MinX: math.Min(e.MinX, o.MinX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

func envelopeOf(seq Sequence) (Envelope, bool) {
	if len(seq) == 0 {
		return Envelope{}, false
	}
	env := Envelope{MinX: seq[0].X, MinY: seq[0].Y, MaxX: seq[0].X, MaxY: seq[0].Y}
	for _, c := range seq[1:] {
		env = env.ExpandToInclude(c)
	}
	return env, true
}

func unionEnvelope(acc Envelope, accOK bool, g Geometry) (Envelope, bool) {
	env, ok := g.Envelope()
	if !ok {
		return acc, accOK
	}
	if !accOK {
		return env, true
	}
	return acc.Union(env), true
}
