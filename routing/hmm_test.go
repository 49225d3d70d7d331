package routing

import (
	"testing"

	"kuanb/gogeojson/geom"
	"kuanb/gogeojson/osm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossingGraph has edges 1 and 2 along the equator, split at lon 0.001
// where edges 3 (north) and 4 (south) meet them.
func crossingGraph() *osm.Graph {
	nodes := map[osm.NodeID]*osm.Node{
		1: {ID: 1, Coord: geom.XY(0, 0)},
		2: {ID: 2, Coord: geom.XY(0.001, 0)},
		3: {ID: 3, Coord: geom.XY(0.002, 0)},
		4: {ID: 4, Coord: geom.XY(0.001, 0.001)},
		5: {ID: 5, Coord: geom.XY(0.001, -0.001)},
	}
	ways := map[osm.WayID]*osm.Way{
		10: {ID: 10, Highway: "primary", Nodes: []osm.NodeID{1, 2, 3}},
		20: {ID: 20, Highway: "residential", Nodes: []osm.NodeID{4, 2, 5}},
	}
	return osm.Build(nodes, ways)
}

var eastbound = []geom.Coordinate{
	geom.XY(0.0002, 0.00002),
	geom.XY(0.0008, 0.00002),
	geom.XY(0.0012, 0.00002),
	geom.XY(0.0018, 0.00002),
}

func TestMatchFollowsRoad(t *testing.T) {
	m := NewHMMMapMatcher(crossingGraph(), DefaultParams())
	res := m.Match(eastbound)
	assert.Equal(t, []osm.WayID{1, 1, 2, 2}, res.MatchedWays)
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
	assert.LessOrEqual(t, res.Confidence, 1.0)
}

func TestMatchWithoutIndex(t *testing.T) {
	g := crossingGraph()
	g.Index = nil
	res := NewHMMMapMatcher(g, DefaultParams()).Match(eastbound)
	assert.Equal(t, []osm.WayID{1, 1, 2, 2}, res.MatchedWays)
}

func TestMatchEmpty(t *testing.T) {
	m := NewHMMMapMatcher(crossingGraph(), DefaultParams())

	res := m.Match(nil)
	assert.Nil(t, res.MatchedWays)
	assert.Zero(t, res.Confidence)

	// The second observation is about 11 km from any road.
	res = m.Match([]geom.Coordinate{geom.XY(0.0002, 0), geom.XY(0.1, 0.1)})
	assert.Nil(t, res.MatchedWays)
}

func TestCandidates(t *testing.T) {
	m := NewHMMMapMatcher(crossingGraph(), DefaultParams())

	cands := m.Candidates(geom.XY(0.0008, 0.00002))
	ids := make([]osm.WayID, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.WayID)
		assert.LessOrEqual(t, c.Distance, m.MaxCandidateDist)
	}
	assert.ElementsMatch(t, []osm.WayID{1, 2, 3, 4}, ids)

	assert.Empty(t, m.Candidates(geom.XY(1, 1)))
}

func TestNewHMMMapMatcherDefaults(t *testing.T) {
	m := NewHMMMapMatcher(crossingGraph(), Params{Beta: 5})
	require.NotNil(t, m)
	assert.Equal(t, 4.07, m.SigmaZ)
	assert.Equal(t, 5.0, m.Beta)
	assert.Equal(t, 35.0, m.MaxCandidateDist)
}

func TestCalculateConfidence(t *testing.T) {
	assert.Zero(t, calculateConfidence(nil, 0))
	assert.Zero(t, calculateConfidence([]float64{-1}, 0))
	assert.Greater(t, calculateConfidence([]float64{-1, -50, -60}, 0), 0.5)
}
