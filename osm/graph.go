package osm

import (
	"sort"

	"kuanb/gogeojson/geojson"
	"kuanb/gogeojson/geom"
)

type WayID int64

type NodeID int64

type Node struct {
	ID    NodeID
	Coord geom.Coordinate // lon/lat
}

type Way struct {
	ID           WayID
	Nodes        []NodeID
	Highway      string
	Geometry     *geom.LineString
	LengthMeters float64 // Total length of the way in meters
}

// DistanceTo returns the distance in meters from c to the way, or -1 when
// the way has no segment.
func (w *Way) DistanceTo(c geom.Coordinate) float64 {
	if w.Geometry == nil {
		return -1
	}
	return geom.DistanceToLineString(c, w.Geometry.Coordinates())
}

type Graph struct {
	Nodes map[NodeID]*Node
	Ways  map[WayID]*Way
	Index *geom.Index[WayID]
}

// Connected reports whether two ways share a node.
func (g *Graph) Connected(a, b WayID) bool {
	wa, wb := g.Ways[a], g.Ways[b]
	if wa == nil || wb == nil {
		return false
	}
	for _, n1 := range wa.Nodes {
		for _, n2 := range wb.Nodes {
			if n1 == n2 {
				return true
			}
		}
	}
	return false
}

// WayProperties is the properties payload of an exported way.
type WayProperties struct {
	Highway      string  `json:"highway"`
	LengthMeters float64 `json:"length_m"`
}

// WayFeature is a way as a GeoJSON feature, identified by its way id.
type WayFeature = geojson.Feature[*geom.LineString, WayProperties, int64]

// WayCollection is a set of exported ways.
type WayCollection = geojson.FeatureCollection[*geom.LineString, WayProperties, int64]

// NewWayCodec returns the feature codec for exported ways.
func NewWayCodec(c *geojson.Codec) *geojson.FeatureCodec[*geom.LineString, WayProperties, int64] {
	return geojson.NewFeatureCodec(c, geojson.ReadLineString, geojson.JSON[WayProperties](), geojson.JSON[int64]())
}

// Feature returns way id as a feature.
func (g *Graph) Feature(id WayID) (WayFeature, bool) {
	w := g.Ways[id]
	if w == nil {
		return WayFeature{}, false
	}
	fid := int64(w.ID)
	return WayFeature{
		ID:       &fid,
		Geometry: w.Geometry,
		Properties: WayProperties{
			Highway:      w.Highway,
			LengthMeters: w.LengthMeters,
		},
	}, true
}

// Features returns every way ordered by id.
func (g *Graph) Features() WayCollection {
	ids := make([]WayID, 0, len(g.Ways))
	for id := range g.Ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	col := WayCollection{Features: make([]WayFeature, 0, len(ids))}
	for _, id := range ids {
		f, _ := g.Feature(id)
		col.Features = append(col.Features, f)
	}
	return col
}
