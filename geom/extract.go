package geom

// ExtractPoints returns every point contained in g. Multi points are
// split into their members and nested collections are searched too.
func ExtractPoints(g Geometry) []*Point {
	var out []*Point
	visit(g, func(g Geometry) {
		switch g := g.(type) {
		case *Point:
			out = append(out, g)
		case *MultiPoint:
			out = append(out, g.points...)
		}
	})
	return out
}

// ExtractLineStrings returns every line string contained in g, including
// the members of multi line strings. Polygon rings are not included.
func ExtractLineStrings(g Geometry) []*LineString {
	var out []*LineString
	visit(g, func(g Geometry) {
		switch g := g.(type) {
		case *LineString:
			out = append(out, g)
		case *MultiLineString:
			out = append(out, g.lines...)
		}
	})
	return out
}

// ExtractPolygons returns every polygon contained in g, including the
// members of multi polygons.
func ExtractPolygons(g Geometry) []*Polygon {
	var out []*Polygon
	visit(g, func(g Geometry) {
		switch g := g.(type) {
		case *Polygon:
			out = append(out, g)
		case *MultiPolygon:
			out = append(out, g.polygons...)
		}
	})
	return out
}

// visit calls fn for g and, for collections, for every member recursively.
func visit(g Geometry, fn func(Geometry)) {
	if IsNil(g) {
		return
	}
	if gc, ok := g.(*GeometryCollection); ok {
		for _, m := range gc.geoms {
			visit(m, fn)
		}
		return
	}
	fn(g)
}
