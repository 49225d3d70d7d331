package geom

// Equal reports whether a and b are the same variant with identical
// coordinates, member by member. Ring closure is compared as stored.
func Equal(a, b Geometry) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Point:
		return a.coord.Equal(b.(*Point).coord)
	case *LineString:
		return a.seq.Equal(b.(*LineString).seq)
	case *LinearRing:
		return a.seq.Equal(b.(*LinearRing).seq)
	case *Polygon:
		return polygonsEqual(a, b.(*Polygon))
	case *MultiPoint:
		bp := b.(*MultiPoint).points
		if len(a.points) != len(bp) {
			return false
		}
		for i := range a.points {
			if !a.points[i].coord.Equal(bp[i].coord) {
				return false
			}
		}
		return true
	case *MultiLineString:
		bl := b.(*MultiLineString).lines
		if len(a.lines) != len(bl) {
			return false
		}
		for i := range a.lines {
			if !a.lines[i].seq.Equal(bl[i].seq) {
				return false
			}
		}
		return true
	case *MultiPolygon:
		bp := b.(*MultiPolygon).polygons
		if len(a.polygons) != len(bp) {
			return false
		}
		for i := range a.polygons {
			if !polygonsEqual(a.polygons[i], bp[i]) {
				return false
			}
		}
		return true
	case *GeometryCollection:
		bg := b.(*GeometryCollection).geoms
		if len(a.geoms) != len(bg) {
			return false
		}
		for i := range a.geoms {
			if !Equal(a.geoms[i], bg[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func polygonsEqual(a, b *Polygon) bool {
	if len(a.holes) != len(b.holes) {
		return false
	}
	if (a.shell == nil) != (b.shell == nil) {
		return false
	}
	if a.shell != nil && !a.shell.seq.Equal(b.shell.seq) {
		return false
	}
	for i := range a.holes {
		if !a.holes[i].seq.Equal(b.holes[i].seq) {
			return false
		}
	}
	return true
}

// Flatten returns every coordinate of g in document order.
func Flatten(g Geometry) Sequence {
	var out Sequence
	var walk func(Geometry)
	walk = func(g Geometry) {
		switch g := g.(type) {
		case *Point:
			out = append(out, g.coord)
		case *LineString:
			out = append(out, g.seq...)
		case *LinearRing:
			out = append(out, g.seq...)
		case *Polygon:
			for _, r := range g.Rings() {
				out = append(out, r.seq...)
			}
		case *MultiPoint:
			for _, p := range g.points {
				out = append(out, p.coord)
			}
		case *MultiLineString:
			for _, l := range g.lines {
				out = append(out, l.seq...)
			}
		case *MultiPolygon:
			for _, p := range g.polygons {
				walk(p)
			}
		case *GeometryCollection:
			for _, m := range g.geoms {
				walk(m)
			}
		}
	}
	if !IsNil(g) {
		walk(g)
	}
	return out
}
