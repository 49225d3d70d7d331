package geom

import (
	"github.com/tidwall/geoindex"
	"github.com/tidwall/geoindex/algo"
	"github.com/tidwall/rtree"
)

// Index is a spatial index of values keyed by their envelope.
type Index[T any] struct {
	tree  rtree.RTree
	index *geoindex.Index
	size  int
}

// NewIndex creates an empty index.
func NewIndex[T any]() *Index[T] {
	idx := &Index[T]{}
	idx.index = geoindex.Wrap(&idx.tree)
	return idx
}

// Insert adds v covering env.
func (x *Index[T]) Insert(env Envelope, v T) {
	x.index.Insert(
		[2]float64{env.MinX, env.MinY},
		[2]float64{env.MaxX, env.MaxY},
		v,
	)
	x.size++
}

// InsertGeometry indexes v under the envelope of g. Empty geometries are
// skipped and false is returned.
func (x *Index[T]) InsertGeometry(g Geometry, v T) bool {
	env, ok := g.Envelope()
	if !ok {
		return false
	}
	x.Insert(env, v)
	return true
}

// Search returns every value whose envelope intersects env.
func (x *Index[T]) Search(env Envelope) []T {
	result := make([]T, 0)
	x.index.Search(
		[2]float64{env.MinX, env.MinY},
		[2]float64{env.MaxX, env.MaxY},
		func(_, _ [2]float64, data interface{}) bool {
			result = append(result, data.(T))
			return true
		},
	)
	return result
}

// SearchNearPoint returns every value whose envelope lies within roughly
// meters of the lon/lat coordinate c.
func (x *Index[T]) SearchNearPoint(c Coordinate, meters float64) []T {
	dLon, dLat := metersToDegrees(c, meters)
	return x.Search(Envelope{
		MinX: c.X - dLon,
		MinY: c.Y - dLat,
		MaxX: c.X + dLon,
		MaxY: c.Y + dLat,
	})
}

// Nearest returns up to k values ordered by the planar distance between c
// and their envelope.
func (x *Index[T]) Nearest(c Coordinate, k int) []T {
	if k <= 0 {
		return nil
	}
	result := make([]T, 0, k)
	target := [2]float64{c.X, c.Y}
	x.index.Nearby(
		algo.Box(target, target, false, nil),
		func(_, _ [2]float64, data interface{}, _ float64) bool {
			result = append(result, data.(T))
			return len(result) < k
		},
	)
	return result
}

// Len returns the number of indexed values.
func (x *Index[T]) Len() int {
	return x.size
}
