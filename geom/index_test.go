package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSearch(t *testing.T) {
	idx := NewIndex[int64]()
	idx.Insert(NewEnvelope(0, 0, 1, 1), 1)
	idx.Insert(NewEnvelope(5, 5, 6, 6), 2)
	l, err := NewLineString(nil)
	require.NoError(t, err)
	assert.False(t, idx.InsertGeometry(l, 3))
	assert.True(t, idx.InsertGeometry(NewPoint(XY(0.5, 5.5)), 4))
	assert.Equal(t, 3, idx.Len())

	assert.ElementsMatch(t, []int64{1}, idx.Search(NewEnvelope(0.5, 0.5, 2, 2)))
	assert.ElementsMatch(t, []int64{1, 2, 4}, idx.Search(NewEnvelope(-1, -1, 10, 10)))
	assert.Empty(t, idx.Search(NewEnvelope(20, 20, 30, 30)))
}

func TestIndexNearest(t *testing.T) {
	idx := NewIndex[string]()
	idx.Insert(NewEnvelope(10, 10, 11, 11), "far")
	idx.Insert(NewEnvelope(1, 1, 2, 2), "near")
	idx.Insert(NewEnvelope(4, 4, 5, 5), "middle")

	assert.Equal(t, []string{"near", "middle"}, idx.Nearest(XY(0, 0), 2))
	assert.Len(t, idx.Nearest(XY(0, 0), 10), 3)
	assert.Nil(t, idx.Nearest(XY(0, 0), 0))
}

func TestIndexSearchNearPoint(t *testing.T) {
	idx := NewIndex[int]()
	// Roughly 111 m north of the origin.
	idx.InsertGeometry(NewPoint(XY(0, 0.001)), 1)
	assert.Empty(t, idx.SearchNearPoint(XY(0, 0), 50))
	assert.Equal(t, []int{1}, idx.SearchNearPoint(XY(0, 0), 200))
}

func TestGreatCircleDistance(t *testing.T) {
	// One degree of latitude.
	d := GreatCircleDistance(XY(0, 0), XY(0, 1))
	assert.InDelta(t, EarthRadiusMeters*math.Pi/180, d, 1e-6)
	assert.Zero(t, GreatCircleDistance(XY(13.4, 52.5), XY(13.4, 52.5)))
}

func TestPointToSegmentDistance(t *testing.T) {
	a := XY(0, 0)
	b := XY(0.01, 0)
	perDeg := EarthRadiusMeters * math.Pi / 180

	// Above the middle of the segment.
	assert.InDelta(t, 0.001*perDeg, PointToSegmentDistance(XY(0.005, 0.001), a, b), 1e-6)
	// Beyond the end, measured to b.
	assert.InDelta(t, 0.01*perDeg, PointToSegmentDistance(XY(0.02, 0), a, b), 1e-6)
	// Degenerate segment.
	assert.InDelta(t, 0.001*perDeg, PointToSegmentDistance(XY(0, 0.001), a, a), 1e-6)

	assert.Equal(t, -1.0, DistanceToLineString(a, Sequence{a}))
	assert.InDelta(t, 0.001*perDeg, DistanceToLineString(XY(0.005, 0.001), Sequence{a, b}), 1e-6)
}

func TestOrbRoundTrip(t *testing.T) {
	l, err := NewLineString(Sequence{XY(0, 0), XY(1, 1)})
	require.NoError(t, err)
	mp, err := NewMultiPoint(NewPoint(XY(1, 2)), NewPoint(XY(3, 4)))
	require.NoError(t, err)
	mls, err := NewMultiLineString(l)
	require.NoError(t, err)
	mpoly, err := NewMultiPolygon(mustPolygon(t, square(0, 0, 1), square(0.2, 0.2, 0.1)))
	require.NoError(t, err)
	gc, err := NewGeometryCollection(NewPoint(XY(7, 8)), l)
	require.NoError(t, err)

	tests := []struct {
		name string
		g    Geometry
	}{
		{"point", NewPoint(XY(1, 2))},
		{"line string", l},
		{"polygon", mustPolygon(t, square(0, 0, 1))},
		{"multi point", mp},
		{"multi line string", mls},
		{"multi polygon", mpoly},
		{"collection", gc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back, err := FromOrb(ToOrb(tt.g))
			require.NoError(t, err)
			assert.True(t, Equal(tt.g, back), "got %v", back)
		})
	}
}

func TestToOrbClosesRingsAndDropsZ(t *testing.T) {
	p := mustPolygon(t, Sequence{XYZ(0, 0, 5), XYZ(1, 0, 5), XYZ(1, 1, 5)})
	poly := ToOrb(p).(orb.Polygon)
	require.Len(t, poly, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, poly[0])
}

func TestFromOrbBound(t *testing.T) {
	g, err := FromOrb(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 1}})
	require.NoError(t, err)
	env, ok := g.Envelope()
	require.True(t, ok)
	assert.Equal(t, NewEnvelope(0, 0, 2, 1), env)

	_, err = FromOrb(nil)
	assert.Error(t, err)

	g, err = FromOrb(orb.LineString{{1, 1}})
	assert.Error(t, err)
	assert.Nil(t, g)
}
