package geojson

import (
	"encoding/json"
	"fmt"

	"kuanb/gogeojson/geom"
)

// geometryDocument is written by encoding/json in field order, which fixes
// "type" before "coordinates".
type geometryDocument struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

type collectionDocument struct {
	Type       string `json:"type"`
	Geometries []any  `json:"geometries"`
}

// Encode returns the GeoJSON text of g.
func (c *Codec) Encode(g geom.Geometry) ([]byte, error) {
	doc, err := c.document(g, "")
	if err != nil {
		return nil, err
	}
	return marshal(doc)
}

// EncodeCoordinate writes a single position: two numbers, or three when the
// coordinate has a Z ordinate.
func (c *Codec) EncodeCoordinate(coord geom.Coordinate) ([]byte, error) {
	return marshal(position(coord))
}

// EncodeSequence writes an array of positions as an open path.
func (c *Codec) EncodeSequence(seq geom.Sequence) ([]byte, error) {
	return marshal(positions(seq))
}

// document maps g to the tree encoding/json turns into GeoJSON.
func (c *Codec) document(g geom.Geometry, path string) (any, error) {
	if geom.IsNil(g) {
		return nil, newError(ErrUnsupportedGeometryType, path, "nil geometry")
	}
	switch g := g.(type) {
	case *geom.Point:
		return geometryDocument{
			Type:        "Point",
			Coordinates: position(g.Coordinate()),
		}, nil
	case *geom.LineString:
		return geometryDocument{
			Type:        "LineString",
			Coordinates: positions(g.Coordinates()),
		}, nil
	case *geom.LinearRing:
		// A ring on its own has no GeoJSON type; it goes out as the path it
		// stores.
		return geometryDocument{
			Type:        "LineString",
			Coordinates: positions(g.Coordinates()),
		}, nil
	case *geom.Polygon:
		coords, err := polygonPositions(g, path)
		if err != nil {
			return nil, err
		}
		return geometryDocument{Type: "Polygon", Coordinates: coords}, nil
	case *geom.MultiPoint:
		coords := make([][]float64, 0, g.NumPoints())
		for _, p := range g.Points() {
			coords = append(coords, position(p.Coordinate()))
		}
		return geometryDocument{Type: "MultiPoint", Coordinates: coords}, nil
	case *geom.MultiLineString:
		coords := make([][][]float64, 0, g.NumLineStrings())
		for _, l := range g.LineStrings() {
			coords = append(coords, positions(l.Coordinates()))
		}
		return geometryDocument{Type: "MultiLineString", Coordinates: coords}, nil
	case *geom.MultiPolygon:
		coords := make([][][][]float64, 0, g.NumPolygons())
		for i, p := range g.Polygons() {
			pc, err := polygonPositions(p, join(join(path, "coordinates"), i))
			if err != nil {
				return nil, err
			}
			coords = append(coords, pc)
		}
		return geometryDocument{Type: "MultiPolygon", Coordinates: coords}, nil
	case *geom.GeometryCollection:
		members := make([]any, 0, g.NumGeometries())
		for i, m := range g.Geometries() {
			doc, err := c.document(m, join(join(path, "geometries"), i))
			if err != nil {
				return nil, err
			}
			members = append(members, doc)
		}
		return collectionDocument{Type: "GeometryCollection", Geometries: members}, nil
	default:
		return nil, newError(ErrUnsupportedGeometryType, path, "%T", g)
	}
}

func position(c geom.Coordinate) []float64 {
	if c.HasZ {
		return []float64{c.X, c.Y, c.Z}
	}
	return []float64{c.X, c.Y}
}

func positions(seq geom.Sequence) [][]float64 {
	out := make([][]float64, 0, len(seq))
	for _, c := range seq {
		out = append(out, position(c))
	}
	return out
}

// ringPositions writes seq closed: when it has more than two coordinates
// and the last differs from the first, the first is repeated at the end.
// Ends are compared on X and Y only, so a ring whose ends differ in Z
// alone is written as it is.
func ringPositions(seq geom.Sequence) [][]float64 {
	out := positions(seq)
	if len(seq) > 2 && !seq[0].Equal2D(seq[len(seq)-1]) {
		out = append(out, position(seq[0]))
	}
	return out
}

func polygonPositions(p *geom.Polygon, path string) ([][][]float64, error) {
	if p == nil || p.Shell() == nil {
		return nil, wrapError(ErrInvalidGeometry, path,
			&geom.InvalidGeometryError{Type: geom.TypePolygon, Reason: "shell is required"})
	}
	rings := p.Rings()
	out := make([][][]float64, 0, len(rings))
	for _, r := range rings {
		out = append(out, ringPositions(r.Coordinates()))
	}
	return out, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("geojson: encode: %w", err)
	}
	return data, nil
}
