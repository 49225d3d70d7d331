package osm

import (
	"sort"

	"kuanb/gogeojson/geom"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/rs/zerolog/log"
)

var highwayTypesList = []string{
	"motorway",
	"motorway_link",
	"trunk",
	"trunk_link",
	"primary",
	"primary_link",
	"secondary",
	"secondary_link",
	"tertiary",
	"tertiary_link",
	"residential",
	"service",
	"living_street",
}

var whitelistedHighways = func() map[string]struct{} {
	m := make(map[string]struct{}, len(highwayTypesList))
	for _, hw := range highwayTypesList {
		m[hw] = struct{}{}
	}
	return m
}()

// Build keeps the whitelisted highways, splits them into edges at
// intersections and way ends, and indexes the edges. Edges get new ids
// numbered from 1 in source way order.
func Build(nodes map[NodeID]*Node, ways map[WayID]*Way) *Graph {
	// Remove ways not whitelisted in highwayTypesList
	kept := make([]*Way, 0, len(ways))
	for _, way := range ways {
		if _, ok := whitelistedHighways[way.Highway]; ok {
			kept = append(kept, way)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].ID < kept[j].ID })
	log.Debug().
		Int("dropped", len(ways)-len(kept)).
		Int("kept", len(kept)).
		Msg("Filtered ways")

	// 1. Split points: nodes shared by more than one way, plus way ends
	nodeWayCount := make(map[NodeID]int)
	for _, way := range kept {
		for _, nid := range way.Nodes {
			nodeWayCount[nid]++
		}
	}
	isSplit := func(way *Way, i int) bool {
		return i == 0 || i == len(way.Nodes)-1 || nodeWayCount[way.Nodes[i]] > 1
	}

	// 2. Break every way into edges between split points
	resultNodes := make(map[NodeID]*Node)
	resultWays := make(map[WayID]*Way)
	var newWayID WayID = 1
	for _, way := range kept {
		segStart := -1
		for i, nid := range way.Nodes {
			if !isSplit(way, i) {
				continue
			}
			if segStart >= 0 {
				segment := way.Nodes[segStart : i+1]
				if edge := buildEdge(newWayID, way.Highway, segment, nodes); edge != nil {
					resultWays[newWayID] = edge
					newWayID++
					for _, end := range []NodeID{segment[0], nid} {
						if n, ok := nodes[end]; ok {
							resultNodes[end] = n
						}
					}
				}
			}
			segStart = i
		}
	}

	// Build spatial index for ways
	index := geom.NewIndex[WayID]()
	for id, way := range resultWays {
		index.InsertGeometry(way.Geometry, id)
	}
	log.Info().
		Int("edges", len(resultWays)).
		Int("intersections", len(resultNodes)).
		Msg("Built road graph")

	return &Graph{
		Nodes: resultNodes,
		Ways:  resultWays,
		Index: index,
	}
}

// buildEdge creates the edge for a run of node ids, or nil when fewer than
// two of its nodes are known.
func buildEdge(id WayID, highway string, segment []NodeID, nodes map[NodeID]*Node) *Way {
	ls := buildLineString(segment, nodes)
	if len(ls) < 2 {
		log.Warn().
			Int64("way", int64(id)).
			Int("nodes", len(segment)).
			Msg("Skipping edge with missing nodes")
		return nil
	}
	g, err := geom.FromOrb(ls)
	if err != nil {
		return nil
	}
	line, ok := g.(*geom.LineString)
	if !ok {
		return nil
	}
	return &Way{
		ID:           id,
		Nodes:        []NodeID{segment[0], segment[len(segment)-1]},
		Highway:      highway,
		Geometry:     line,
		LengthMeters: geo.Length(ls),
	}
}

// buildLineString creates a LineString geometry from a slice of node IDs
func buildLineString(nodeIDs []NodeID, nodes map[NodeID]*Node) orb.LineString {
	ls := make(orb.LineString, 0, len(nodeIDs))
	for _, nid := range nodeIDs {
		if node, ok := nodes[nid]; ok {
			ls = append(ls, orb.Point{node.Coord.X, node.Coord.Y})
		}
	}
	return ls
}
