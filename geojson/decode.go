package geojson

import (
	"math"

	"kuanb/gogeojson/geom"

	"github.com/tidwall/gjson"
)

// GeometryReader decodes the geometry object found at path. The Read*
// variables below are the readers a FeatureCodec can be built with.
type GeometryReader[G geom.Geometry] func(c *Codec, node gjson.Result, path string) (G, error)

var (
	// ReadGeometry dispatches on the "type" member.
	ReadGeometry GeometryReader[geom.Geometry] = (*Codec).readGeometry

	ReadPoint              GeometryReader[*geom.Point]              = (*Codec).readPoint
	ReadLineString         GeometryReader[*geom.LineString]         = (*Codec).readLineString
	ReadPolygon            GeometryReader[*geom.Polygon]            = (*Codec).readPolygon
	ReadMultiPoint         GeometryReader[*geom.MultiPoint]         = (*Codec).readMultiPoint
	ReadMultiLineString    GeometryReader[*geom.MultiLineString]    = (*Codec).readMultiLineString
	ReadMultiPolygon       GeometryReader[*geom.MultiPolygon]       = (*Codec).readMultiPolygon
	ReadGeometryCollection GeometryReader[*geom.GeometryCollection] = (*Codec).readGeometryCollection
)

// Decode parses a GeoJSON geometry object of any of the seven types.
func (c *Codec) Decode(data []byte) (geom.Geometry, error) {
	return decodeAs(c, data, ReadGeometry)
}

// DecodePoint parses a Point. The "type" member may be omitted; when present
// it must be "Point". The other Decode* variant methods behave the same.
func (c *Codec) DecodePoint(data []byte) (*geom.Point, error) {
	return decodeAs(c, data, ReadPoint)
}

func (c *Codec) DecodeLineString(data []byte) (*geom.LineString, error) {
	return decodeAs(c, data, ReadLineString)
}

func (c *Codec) DecodePolygon(data []byte) (*geom.Polygon, error) {
	return decodeAs(c, data, ReadPolygon)
}

func (c *Codec) DecodeMultiPoint(data []byte) (*geom.MultiPoint, error) {
	return decodeAs(c, data, ReadMultiPoint)
}

func (c *Codec) DecodeMultiLineString(data []byte) (*geom.MultiLineString, error) {
	return decodeAs(c, data, ReadMultiLineString)
}

func (c *Codec) DecodeMultiPolygon(data []byte) (*geom.MultiPolygon, error) {
	return decodeAs(c, data, ReadMultiPolygon)
}

func (c *Codec) DecodeGeometryCollection(data []byte) (*geom.GeometryCollection, error) {
	return decodeAs(c, data, ReadGeometryCollection)
}

// DecodeCoordinate parses a single position of two or three numbers.
func (c *Codec) DecodeCoordinate(data []byte) (geom.Coordinate, error) {
	root, err := parse(data)
	if err != nil {
		return geom.Coordinate{}, err
	}
	return readCoordinate(root, "")
}

// DecodeSequence parses an array of positions.
func (c *Codec) DecodeSequence(data []byte) (geom.Sequence, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}
	return readSequence(root, "")
}

func decodeAs[G geom.Geometry](c *Codec, data []byte, read GeometryReader[G]) (G, error) {
	root, err := parse(data)
	if err != nil {
		var zero G
		return zero, err
	}
	return read(c, root, "")
}

func parse(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, newError(ErrInvalidJSON, "", "input is not a valid JSON document")
	}
	return gjson.ParseBytes(data), nil
}

// widen converts a variant result to the Geometry interface without
// leaking a typed nil on error.
func widen[G geom.Geometry](g G, err error) (geom.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (c *Codec) readGeometry(node gjson.Result, path string) (geom.Geometry, error) {
	return c.geometryAt(node, path, 0)
}

func (c *Codec) geometryAt(node gjson.Result, path string, depth int) (geom.Geometry, error) {
	if !node.IsObject() {
		return nil, newError(ErrNotAnObject, path, "expected a geometry object, found %s", describe(node))
	}
	t := node.Get("type")
	if !t.Exists() {
		return nil, newError(ErrMissingField, join(path, "type"), "geometry has no type")
	}
	if t.Type != gjson.String {
		return nil, newError(ErrUnknownGeometryType, join(path, "type"), "type must be a string, found %s", t.Raw)
	}
	typ, ok := geom.ParseType(t.Str)
	if !ok {
		return nil, newError(ErrUnknownGeometryType, join(path, "type"), "%q", t.Str)
	}
	switch typ {
	case geom.TypePoint:
		return widen(c.point(node, path))
	case geom.TypeLineString:
		return widen(c.lineString(node, path))
	case geom.TypePolygon:
		return widen(c.polygon(node, path))
	case geom.TypeMultiPoint:
		return widen(c.multiPoint(node, path))
	case geom.TypeMultiLineString:
		return widen(c.multiLineString(node, path))
	case geom.TypeMultiPolygon:
		return widen(c.multiPolygon(node, path))
	case geom.TypeGeometryCollection:
		return widen(c.collection(node, path, depth))
	}
	return nil, newError(ErrUnknownGeometryType, join(path, "type"), "%q", t.Str)
}

// checkType validates an optional "type" member against the variant the
// caller asked for.
func checkType(node gjson.Result, path string, want geom.Type) error {
	if !node.IsObject() {
		return newError(ErrNotAnObject, path, "expected a %v object, found %s", want, describe(node))
	}
	t := node.Get("type")
	if !t.Exists() {
		return nil
	}
	if t.Type != gjson.String {
		return newError(ErrTypeMismatch, join(path, "type"), "expected %q, found %s", want.String(), t.Raw)
	}
	if t.Str == want.String() {
		return nil
	}
	if _, known := geom.ParseType(t.Str); !known {
		return newError(ErrUnknownGeometryType, join(path, "type"), "%q", t.Str)
	}
	return newError(ErrTypeMismatch, join(path, "type"), "expected %q, found %q", want.String(), t.Str)
}

func (c *Codec) readPoint(node gjson.Result, path string) (*geom.Point, error) {
	if err := checkType(node, path, geom.TypePoint); err != nil {
		return nil, err
	}
	return c.point(node, path)
}

func (c *Codec) readLineString(node gjson.Result, path string) (*geom.LineString, error) {
	if err := checkType(node, path, geom.TypeLineString); err != nil {
		return nil, err
	}
	return c.lineString(node, path)
}

func (c *Codec) readPolygon(node gjson.Result, path string) (*geom.Polygon, error) {
	if err := checkType(node, path, geom.TypePolygon); err != nil {
		return nil, err
	}
	return c.polygon(node, path)
}

func (c *Codec) readMultiPoint(node gjson.Result, path string) (*geom.MultiPoint, error) {
	if err := checkType(node, path, geom.TypeMultiPoint); err != nil {
		return nil, err
	}
	return c.multiPoint(node, path)
}

func (c *Codec) readMultiLineString(node gjson.Result, path string) (*geom.MultiLineString, error) {
	if err := checkType(node, path, geom.TypeMultiLineString); err != nil {
		return nil, err
	}
	return c.multiLineString(node, path)
}

func (c *Codec) readMultiPolygon(node gjson.Result, path string) (*geom.MultiPolygon, error) {
	if err := checkType(node, path, geom.TypeMultiPolygon); err != nil {
		return nil, err
	}
	return c.multiPolygon(node, path)
}

func (c *Codec) readGeometryCollection(node gjson.Result, path string) (*geom.GeometryCollection, error) {
	if err := checkType(node, path, geom.TypeGeometryCollection); err != nil {
		return nil, err
	}
	return c.collection(node, path, 0)
}

func (c *Codec) point(node gjson.Result, path string) (*geom.Point, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	coord, err := readCoordinate(coords, path)
	if err != nil {
		return nil, err
	}
	return geom.NewPoint(coord), nil
}

func (c *Codec) lineString(node gjson.Result, path string) (*geom.LineString, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	return readLineString(coords, path)
}

func (c *Codec) polygon(node gjson.Result, path string) (*geom.Polygon, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	return readPolygonRings(coords, path)
}

func (c *Codec) multiPoint(node gjson.Result, path string) (*geom.MultiPoint, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	seq, err := readSequence(coords, path)
	if err != nil {
		return nil, err
	}
	return geom.NewMultiPointFromCoords(seq), nil
}

func (c *Codec) multiLineString(node gjson.Result, path string) (*geom.MultiLineString, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	items, err := readArray(coords, path)
	if err != nil {
		return nil, err
	}
	lines := make([]*geom.LineString, 0, len(items))
	for i, item := range items {
		l, err := readLineString(item, join(path, i))
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	mls, err := geom.NewMultiLineString(lines...)
	if err != nil {
		return nil, wrapError(ErrInvalidGeometry, path, err)
	}
	return mls, nil
}

func (c *Codec) multiPolygon(node gjson.Result, path string) (*geom.MultiPolygon, error) {
	coords, path, err := member(node, path, "coordinates")
	if err != nil {
		return nil, err
	}
	items, err := readArray(coords, path)
	if err != nil {
		return nil, err
	}
	polys := make([]*geom.Polygon, 0, len(items))
	for i, item := range items {
		p, err := readPolygonRings(item, join(path, i))
		if err != nil {
			return nil, err
		}
		polys = append(polys, p)
	}
	mp, err := geom.NewMultiPolygon(polys...)
	if err != nil {
		return nil, wrapError(ErrInvalidGeometry, path, err)
	}
	return mp, nil
}

func (c *Codec) collection(node gjson.Result, path string, depth int) (*geom.GeometryCollection, error) {
	if depth >= c.opts.MaxDepth {
		return nil, newError(ErrNestingTooDeep, path, "more than %d nested geometry collections", c.opts.MaxDepth)
	}
	geoms, path, err := member(node, path, "geometries")
	if err != nil {
		return nil, err
	}
	items, err := readArray(geoms, path)
	if err != nil {
		return nil, err
	}
	members := make([]geom.Geometry, 0, len(items))
	for i, item := range items {
		g, err := c.geometryAt(item, join(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		members = append(members, g)
	}
	gc, err := geom.NewGeometryCollection(members...)
	if err != nil {
		return nil, wrapError(ErrInvalidGeometry, path, err)
	}
	return gc, nil
}

// member returns the required member name of object node and its path.
func member(node gjson.Result, path, name string) (gjson.Result, string, error) {
	p := join(path, name)
	v := node.Get(name)
	if !v.Exists() {
		return gjson.Result{}, p, newError(ErrMissingField, p, "required member is absent")
	}
	return v, p, nil
}

func readArray(node gjson.Result, path string) ([]gjson.Result, error) {
	if !node.IsArray() {
		return nil, newError(ErrNotAnArray, path, "found %s", describe(node))
	}
	return node.Array(), nil
}

func readCoordinate(node gjson.Result, path string) (geom.Coordinate, error) {
	items, err := readArray(node, path)
	if err != nil {
		return geom.Coordinate{}, err
	}
	if len(items) != 2 && len(items) != 3 {
		return geom.Coordinate{}, newError(ErrMalformedCoordinate, path,
			"coordinates must have 2 or 3 elements, found %d", len(items))
	}
	var vals [3]float64
	for i, item := range items {
		v, err := readNumber(item, join(path, i), ErrMalformedCoordinate)
		if err != nil {
			return geom.Coordinate{}, err
		}
		vals[i] = v
	}
	if len(items) == 3 {
		return geom.XYZ(vals[0], vals[1], vals[2]), nil
	}
	return geom.XY(vals[0], vals[1]), nil
}

// readNumber returns the value of a numeric node. Literals that overflow
// float64 are rejected rather than read as infinity.
func readNumber(node gjson.Result, path string, kind error) (float64, error) {
	if node.Type != gjson.Number {
		return 0, newError(kind, path, "expected a number, found %s", describe(node))
	}
	if math.IsInf(node.Num, 0) || math.IsNaN(node.Num) {
		return 0, newError(kind, path, "%s is out of range", node.Raw)
	}
	return node.Num, nil
}

func readSequence(node gjson.Result, path string) (geom.Sequence, error) {
	items, err := readArray(node, path)
	if err != nil {
		return nil, err
	}
	seq := make(geom.Sequence, 0, len(items))
	for i, item := range items {
		c, err := readCoordinate(item, join(path, i))
		if err != nil {
			return nil, err
		}
		seq = append(seq, c)
	}
	return seq, nil
}

func readLineString(node gjson.Result, path string) (*geom.LineString, error) {
	seq, err := readSequence(node, path)
	if err != nil {
		return nil, err
	}
	l, err := geom.NewLineString(seq)
	if err != nil {
		return nil, wrapError(ErrInvalidGeometry, path, err)
	}
	return l, nil
}

// readPolygonRings reads an array of rings: the shell first, then holes.
// Rings are kept as read, closing coordinate included.
func readPolygonRings(node gjson.Result, path string) (*geom.Polygon, error) {
	items, err := readArray(node, path)
	if err != nil {
		return nil, err
	}
	rings := make([]*geom.LinearRing, 0, len(items))
	for i, item := range items {
		rpath := join(path, i)
		seq, err := readSequence(item, rpath)
		if err != nil {
			return nil, err
		}
		r, err := geom.NewLinearRing(seq)
		if err != nil {
			return nil, wrapError(ErrInvalidGeometry, rpath, err)
		}
		rings = append(rings, r)
	}
	p, err := geom.NewPolygonFromRings(rings)
	if err != nil {
		return nil, wrapError(ErrInvalidGeometry, path, err)
	}
	return p, nil
}

// describe names the JSON kind of node for error messages.
func describe(node gjson.Result) string {
	switch {
	case !node.Exists():
		return "nothing"
	case node.IsObject():
		return "an object"
	case node.IsArray():
		return "an array"
	}
	switch node.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Number:
		return "a number"
	case gjson.String:
		return "a string"
	}
	return node.Raw
}
