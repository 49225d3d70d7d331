package geom

// Type identifies a geometry variant.
type Type int

const (
	TypePoint Type = iota + 1
	TypeLineString
	TypeLinearRing
	TypePolygon
	TypeMultiPoint
	TypeMultiLineString
	TypeMultiPolygon
	TypeGeometryCollection
)

// String returns the GeoJSON name of the type. LinearRing has no GeoJSON
// name of its own and reports "LinearRing".
func (t Type) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypeLinearRing:
		return "LinearRing"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	default:
		return "Unknown"
	}
}

// ParseType maps one of the seven GeoJSON geometry names to its Type.
// Matching is case-sensitive.
func ParseType(name string) (Type, bool) {
	switch name {
	case "Point":
		return TypePoint, true
	case "LineString":
		return TypeLineString, true
	case "Polygon":
		return TypePolygon, true
	case "MultiPoint":
		return TypeMultiPoint, true
	case "MultiLineString":
		return TypeMultiLineString, true
	case "MultiPolygon":
		return TypeMultiPolygon, true
	case "GeometryCollection":
		return TypeGeometryCollection, true
	}
	return 0, false
}

// Geometry is implemented by the pointer types of this package only:
// *Point, *LineString, *LinearRing, *Polygon, *MultiPoint,
// *MultiLineString, *MultiPolygon and *GeometryCollection.
type Geometry interface {
	Type() Type
	// Envelope returns the bounding box; ok is false for empty geometries.
	Envelope() (env Envelope, ok bool)
	IsEmpty() bool
	sealed()
}

// IsNil reports whether g is a nil interface or a typed nil pointer.
func IsNil(g Geometry) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *Point:
		return v == nil
	case *LineString:
		return v == nil
	case *LinearRing:
		return v == nil
	case *Polygon:
		return v == nil
	case *MultiPoint:
		return v == nil
	case *MultiLineString:
		return v == nil
	case *MultiPolygon:
		return v == nil
	case *GeometryCollection:
		return v == nil
	}
	return false
}

// Point is a single position.
type Point struct {
	coord Coordinate
}

// NewPoint creates a point.
func NewPoint(c Coordinate) *Point {
	return &Point{coord: c}
}

func (p *Point) Type() Type { return TypePoint }
func (p *Point) Coordinate() Coordinate { return p.coord }
func (p *Point) IsEmpty() bool { return false }
func (p *Point) Envelope() (Envelope, bool) {
	return envelopeOf(Sequence{p.coord})
}
func (p *Point) sealed() {}

// LineString is an open path.
type LineString struct {
	seq Sequence
}

// NewLineString creates a line string. The sequence must be empty or hold
// at least two coordinates.
func NewLineString(seq Sequence) (*LineString, error) {
	if len(seq) == 1 {
		return nil, &InvalidGeometryError{
			Type:   TypeLineString,
			Reason: "must have 0 or at least 2 coordinates, got 1",
		}
	}
	return &LineString{seq: seq.clone()}, nil
}

func (l *LineString) Type() Type { return TypeLineString }
func (l *LineString) Coordinates() Sequence { return l.seq }
func (l *LineString) NumPoints() int { return len(l.seq) }
func (l *LineString) IsEmpty() bool { return len(l.seq) == 0 }
func (l *LineString) Envelope() (Envelope, bool) {
	return envelopeOf(l.seq)
}
func (l *LineString) sealed() {}

// LinearRing is a logically closed path. The stored sequence may or may not
// repeat the first coordinate at the end.
type LinearRing struct {
	seq Sequence
}

// NewLinearRing creates a ring. The sequence must be empty or hold at least
// three coordinates.
func NewLinearRing(seq Sequence) (*LinearRing, error) {
	if len(seq) > 0 && len(seq) < 3 {
		return nil, &InvalidGeometryError{
			Type:   TypeLinearRing,
			Reason: "must have 0 or at least 3 coordinates",
		}
	}
	return &LinearRing{seq: seq.clone()}, nil
}

func (r *LinearRing) Type() Type { return TypeLinearRing }
func (r *LinearRing) Coordinates() Sequence { return r.seq }
func (r *LinearRing) NumPoints() int { return len(r.seq) }
func (r *LinearRing) IsEmpty() bool { return len(r.seq) == 0 }
func (r *LinearRing) Envelope() (Envelope, bool) {
	return envelopeOf(r.seq)
}
func (r *LinearRing) sealed() {}

// Polygon is a shell with zero or more holes.
type Polygon struct {
	shell *LinearRing
	holes []*LinearRing
}

// NewPolygon creates a polygon from a shell and holes.
func NewPolygon(shell *LinearRing, holes ...*LinearRing) (*Polygon, error) {
	if shell == nil {
		return nil, &InvalidGeometryError{Type: TypePolygon, Reason: "shell is required"}
	}
	for i, h := range holes {
		if h == nil {
			return nil, &InvalidGeometryError{
				Type:   TypePolygon,
				Reason: "hole " + itoa(i) + " is nil",
			}
		}
	}
	return &Polygon{shell: shell, holes: append([]*LinearRing(nil), holes...)}, nil
}

// NewPolygonFromRings uses rings[0] as the shell and the rest as holes.
func NewPolygonFromRings(rings []*LinearRing) (*Polygon, error) {
	if len(rings) == 0 {
		return nil, &InvalidGeometryError{Type: TypePolygon, Reason: "at least one ring is required"}
	}
	return NewPolygon(rings[0], rings[1:]...)
}

func (p *Polygon) Type() Type { return TypePolygon }
func (p *Polygon) Shell() *LinearRing { return p.shell }
func (p *Polygon) Holes() []*LinearRing { return p.holes }
func (p *Polygon) NumHoles() int { return len(p.holes) }
func (p *Polygon) IsEmpty() bool { return p.shell == nil || p.shell.IsEmpty() }
func (p *Polygon) Envelope() (Envelope, bool) {
	if p.shell == nil {
		return Envelope{}, false
	}
	return p.shell.Envelope()
}
func (p *Polygon) sealed() {}

// Rings returns the shell followed by the holes. A Polygon that was not
// built by a constructor has no shell and no rings.
func (p *Polygon) Rings() []*LinearRing {
	if p.shell == nil {
		return nil
	}
	rings := make([]*LinearRing, 0, 1+len(p.holes))
	rings = append(rings, p.shell)
	return append(rings, p.holes...)
}

// MultiPoint is a set of points.
type MultiPoint struct {
	points []*Point
}

// NewMultiPoint creates a multi point. Members must not be nil.
func NewMultiPoint(points ...*Point) (*MultiPoint, error) {
	for i, p := range points {
		if p == nil {
			return nil, &InvalidGeometryError{Type: TypeMultiPoint, Reason: "point " + itoa(i) + " is nil"}
		}
	}
	return &MultiPoint{points: append([]*Point(nil), points...)}, nil
}

// NewMultiPointFromCoords wraps every coordinate as a point.
func NewMultiPointFromCoords(seq Sequence) *MultiPoint {
	points := make([]*Point, len(seq))
	for i, c := range seq {
		points[i] = NewPoint(c)
	}
	return &MultiPoint{points: points}
}

func (m *MultiPoint) Type() Type { return TypeMultiPoint }
func (m *MultiPoint) Points() []*Point { return m.points }
func (m *MultiPoint) NumPoints() int { return len(m.points) }
func (m *MultiPoint) IsEmpty() bool { return len(m.points) == 0 }
func (m *MultiPoint) Envelope() (Envelope, bool) {
	var env Envelope
	var ok bool
	for _, p := range m.points {
		env, ok = unionEnvelope(env, ok, p)
	}
	return env, ok
}
func (m *MultiPoint) sealed() {}

// MultiLineString is a set of line strings.
type MultiLineString struct {
	lines []*LineString
}

// NewMultiLineString creates a multi line string. Members must not be nil.
func NewMultiLineString(lines ...*LineString) (*MultiLineString, error) {
	for i, l := range lines {
		if l == nil {
			return nil, &InvalidGeometryError{Type: TypeMultiLineString, Reason: "line string " + itoa(i) + " is nil"}
		}
	}
	return &MultiLineString{lines: append([]*LineString(nil), lines...)}, nil
}

func (m *MultiLineString) Type() Type { return TypeMultiLineString }
func (m *MultiLineString) LineStrings() []*LineString { return m.lines }
func (m *MultiLineString) NumLineStrings() int { return len(m.lines) }
func (m *MultiLineString) IsEmpty() bool {
	for _, l := range m.lines {
		if !l.IsEmpty() {
			return false
		}
	}
	return true
}
func (m *MultiLineString) Envelope() (Envelope, bool) {
	var env Envelope
	var ok bool
	for _, l := range m.lines {
		env, ok = unionEnvelope(env, ok, l)
	}
	return env, ok
}
func (m *MultiLineString) sealed() {}

// MultiPolygon is a set of polygons.
type MultiPolygon struct {
	polygons []*Polygon
}

// NewMultiPolygon creates a multi polygon. Members must not be nil.
func NewMultiPolygon(polygons ...*Polygon) (*MultiPolygon, error) {
	for i, p := range polygons {
		if p == nil {
			return nil, &InvalidGeometryError{Type: TypeMultiPolygon, Reason: "polygon " + itoa(i) + " is nil"}
		}
	}
	return &MultiPolygon{polygons: append([]*Polygon(nil), polygons...)}, nil
}

func (m *MultiPolygon) Type() Type { return TypeMultiPolygon }
func (m *MultiPolygon) Polygons() []*Polygon { return m.polygons }
func (m *MultiPolygon) NumPolygons() int { return len(m.polygons) }
func (m *MultiPolygon) IsEmpty() bool {
	for _, p := range m.polygons {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}
func (m *MultiPolygon) Envelope() (Envelope, bool) {
	var env Envelope
	var ok bool
	for _, p := range m.polygons {
		env, ok = unionEnvelope(env, ok, p)
	}
	return env, ok
}
func (m *MultiPolygon) sealed() {}

// GeometryCollection holds any geometries, including other collections.
type GeometryCollection struct {
	geoms []Geometry
}

// NewGeometryCollection creates a collection. Members must not be nil.
func NewGeometryCollection(geoms ...Geometry) (*GeometryCollection, error) {
	for i, g := range geoms {
		if IsNil(g) {
			return nil, &InvalidGeometryError{Type: TypeGeometryCollection, Reason: "member " + itoa(i) + " is nil"}
		}
	}
	return &GeometryCollection{geoms: append([]Geometry(nil), geoms...)}, nil
}

func (c *GeometryCollection) Type() Type { return TypeGeometryCollection }
func (c *GeometryCollection) Geometries() []Geometry { return c.geoms }
func (c *GeometryCollection) NumGeometries() int { return len(c.geoms) }
func (c *GeometryCollection) IsEmpty() bool {
	for _, g := range c.geoms {
		if !g.IsEmpty() {
			return false
		}
	}
	return true
}
func (c *GeometryCollection) Envelope() (Envelope, bool) {
	var env Envelope
	var ok bool
	for _, g := range c.geoms {
		env, ok = unionEnvelope(env, ok, g)
	}
	return env, ok
}
func (c *GeometryCollection) sealed() {}
