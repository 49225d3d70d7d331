package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ToOrb converts g to the equivalent orb geometry. Z ordinates are dropped
// and linear rings are closed, as orb expects.
func ToOrb(g Geometry) orb.Geometry {
	switch g := g.(type) {
	case *Point:
		return toOrbPoint(g.coord)
	case *LineString:
		return toOrbLineString(g.seq)
	case *LinearRing:
		return toOrbRing(g.seq)
	case *Polygon:
		return toOrbPolygon(g)
	case *MultiPoint:
		mp := make(orb.MultiPoint, len(g.points))
		for i, p := range g.points {
			mp[i] = toOrbPoint(p.coord)
		}
		return mp
	case *MultiLineString:
		mls := make(orb.MultiLineString, len(g.lines))
		for i, l := range g.lines {
			mls[i] = toOrbLineString(l.seq)
		}
		return mls
	case *MultiPolygon:
		mp := make(orb.MultiPolygon, len(g.polygons))
		for i, p := range g.polygons {
			mp[i] = toOrbPolygon(p)
		}
		return mp
	case *GeometryCollection:
		c := make(orb.Collection, len(g.geoms))
		for i, m := range g.geoms {
			c[i] = ToOrb(m)
		}
		return c
	}
	return nil
}

func toOrbPoint(c Coordinate) orb.Point {
	return orb.Point{c.X, c.Y}
}

func toOrbLineString(seq Sequence) orb.LineString {
	ls := make(orb.LineString, len(seq))
	for i, c := range seq {
		ls[i] = toOrbPoint(c)
	}
	return ls
}

func toOrbRing(seq Sequence) orb.Ring {
	r := orb.Ring(toOrbLineString(seq))
	if len(r) > 2 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

func toOrbPolygon(p *Polygon) orb.Polygon {
	poly := make(orb.Polygon, 0, 1+len(p.holes))
	for _, r := range p.Rings() {
		poly = append(poly, toOrbRing(r.seq))
	}
	return poly
}

// FromOrb converts an orb geometry. A bound becomes its rectangular polygon.
func FromOrb(g orb.Geometry) (Geometry, error) {
	switch g := g.(type) {
	case orb.Point:
		return NewPoint(fromOrbPoint(g)), nil
	case orb.MultiPoint:
		return NewMultiPointFromCoords(fromOrbPoints(g)), nil
	case orb.LineString:
		return asGeometry(NewLineString(fromOrbPoints(g)))
	case orb.MultiLineString:
		lines := make([]*LineString, len(g))
		for i, ls := range g {
			l, err := NewLineString(fromOrbPoints(ls))
			if err != nil {
				return nil, fmt.Errorf("line string %d: %w", i, err)
			}
			lines[i] = l
		}
		return asGeometry(NewMultiLineString(lines...))
	case orb.Ring:
		return asGeometry(NewLinearRing(fromOrbPoints(g)))
	case orb.Polygon:
		return asGeometry(fromOrbPolygon(g))
	case orb.MultiPolygon:
		polys := make([]*Polygon, len(g))
		for i, p := range g {
			poly, err := fromOrbPolygon(p)
			if err != nil {
				return nil, fmt.Errorf("polygon %d: %w", i, err)
			}
			polys[i] = poly
		}
		return asGeometry(NewMultiPolygon(polys...))
	case orb.Collection:
		geoms := make([]Geometry, len(g))
		for i, m := range g {
			gm, err := FromOrb(m)
			if err != nil {
				return nil, fmt.Errorf("member %d: %w", i, err)
			}
			geoms[i] = gm
		}
		return asGeometry(NewGeometryCollection(geoms...))
	case orb.Bound:
		return asGeometry(fromOrbPolygon(g.ToPolygon()))
	case nil:
		return nil, &InvalidGeometryError{Reason: "orb geometry is nil"}
	}
	return nil, &InvalidGeometryError{Reason: fmt.Sprintf("unsupported orb geometry %T", g)}
}

// asGeometry keeps a failed constructor from returning a typed nil.
func asGeometry[G Geometry](g G, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

func fromOrbPoint(p orb.Point) Coordinate {
	return XY(p[0], p[1])
}

func fromOrbPoints(pts []orb.Point) Sequence {
	seq := make(Sequence, len(pts))
	for i, p := range pts {
		seq[i] = fromOrbPoint(p)
	}
	return seq
}

func fromOrbPolygon(p orb.Polygon) (*Polygon, error) {
	rings := make([]*LinearRing, len(p))
	for i, r := range p {
		ring, err := NewLinearRing(fromOrbPoints(r))
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		rings[i] = ring
	}
	return NewPolygonFromRings(rings)
}
