package geojson

import (
	"errors"
	"testing"

	"kuanb/gogeojson/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func square(x, y, size float64) geom.Sequence {
	return geom.Sequence{
		geom.XY(x, y),
		geom.XY(x+size, y),
		geom.XY(x+size, y+size),
		geom.XY(x, y+size),
		geom.XY(x, y),
	}
}

func mustRing(t *testing.T, seq geom.Sequence) *geom.LinearRing {
	t.Helper()
	r, err := geom.NewLinearRing(seq)
	require.NoError(t, err)
	return r
}

func mustPolygon(t *testing.T, shell geom.Sequence, holes ...geom.Sequence) *geom.Polygon {
	t.Helper()
	rings := []*geom.LinearRing{mustRing(t, shell)}
	for _, h := range holes {
		rings = append(rings, mustRing(t, h))
	}
	p, err := geom.NewPolygonFromRings(rings)
	require.NoError(t, err)
	return p
}

func mustLine(t *testing.T, coords ...geom.Coordinate) *geom.LineString {
	t.Helper()
	l, err := geom.NewLineString(coords)
	require.NoError(t, err)
	return l
}

func TestEncodePoint(t *testing.T) {
	c := NewCodec(DefaultOptions())

	tests := []struct {
		name string
		p    *geom.Point
		want string
	}{
		{"2d omits z", geom.NewPoint(geom.XY(1, 2)), `{"type":"Point","coordinates":[1,2]}`},
		{"3d keeps z", geom.NewPoint(geom.XYZ(1, 2, 3)), `{"type":"Point","coordinates":[1,2,3]}`},
		{"zero z is still written", geom.NewPoint(geom.XYZ(1, 2, 0)), `{"type":"Point","coordinates":[1,2,0]}`},
		{"fractions", geom.NewPoint(geom.XY(-122.4194155, 37.7749295)), `{"type":"Point","coordinates":[-122.4194155,37.7749295]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Encode(tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeRingClosure(t *testing.T) {
	c := NewCodec(DefaultOptions())

	open := geom.Sequence{geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1), geom.XY(0, 1)}
	data, err := c.Encode(mustPolygon(t, open))
	require.NoError(t, err)
	assert.Equal(t, int64(5), gjson.GetBytes(data, "coordinates.0.#").Int())
	assert.Equal(t, `[0,0]`, gjson.GetBytes(data, "coordinates.0.4").Raw)

	data, err = c.Encode(mustPolygon(t, square(0, 0, 1)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), gjson.GetBytes(data, "coordinates.0.#").Int())

	// Holes are closed as well.
	hole := geom.Sequence{geom.XY(0.2, 0.2), geom.XY(0.4, 0.2), geom.XY(0.4, 0.4)}
	data, err = c.Encode(mustPolygon(t, square(0, 0, 1), hole))
	require.NoError(t, err)
	assert.Equal(t, int64(4), gjson.GetBytes(data, "coordinates.1.#").Int())

	// Closure compares X and Y only, so a ring whose ends differ in Z is
	// already closed.
	zring := geom.Sequence{geom.XYZ(0, 0, 1), geom.XYZ(1, 0, 1), geom.XYZ(1, 1, 1), geom.XYZ(0, 0, 2)}
	data, err = c.Encode(mustPolygon(t, zring))
	require.NoError(t, err)
	assert.Equal(t, int64(4), gjson.GetBytes(data, "coordinates.0.#").Int())
}

func TestEncodeMultiPolygonClosesRings(t *testing.T) {
	c := NewCodec(DefaultOptions())
	open := geom.Sequence{geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1)}
	mp, err := geom.NewMultiPolygon(mustPolygon(t, open), mustPolygon(t, square(5, 5, 1)))
	require.NoError(t, err)

	data, err := c.Encode(mp)
	require.NoError(t, err)
	assert.Equal(t, "MultiPolygon", gjson.GetBytes(data, "type").Str)
	assert.Equal(t, int64(4), gjson.GetBytes(data, "coordinates.0.0.#").Int())
	assert.Equal(t, int64(5), gjson.GetBytes(data, "coordinates.1.0.#").Int())
}

func TestEncodeLinearRingAsLineString(t *testing.T) {
	c := NewCodec(DefaultOptions())
	r := mustRing(t, geom.Sequence{geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1)})

	data, err := c.Encode(r)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"LineString","coordinates":[[0,0],[1,0],[1,1]]}`, string(data))
}

func TestEncodeCollection(t *testing.T) {
	c := NewCodec(DefaultOptions())
	empty, err := geom.NewGeometryCollection()
	require.NoError(t, err)
	gc, err := geom.NewGeometryCollection(
		geom.NewPoint(geom.XY(1, 2)),
		mustLine(t, geom.XY(0, 0), geom.XY(1, 1)),
		empty,
	)
	require.NoError(t, err)

	data, err := c.Encode(gc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"GeometryCollection","geometries":[`+
			`{"type":"Point","coordinates":[1,2]},`+
			`{"type":"LineString","coordinates":[[0,0],[1,1]]},`+
			`{"type":"GeometryCollection","geometries":[]}]}`,
		string(data))
}

func TestEncodeEmptyGeometries(t *testing.T) {
	c := NewCodec(DefaultOptions())
	l := mustLine(t)
	mp, err := geom.NewMultiPoint()
	require.NoError(t, err)

	data, err := c.Encode(l)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"LineString","coordinates":[]}`, string(data))

	data, err = c.Encode(mp)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"MultiPoint","coordinates":[]}`, string(data))
}

func TestEncodeNil(t *testing.T) {
	c := NewCodec(DefaultOptions())
	_, err := c.Encode(nil)
	assert.True(t, errors.Is(err, ErrUnsupportedGeometryType))

	var p *geom.Point
	_, err = c.Encode(p)
	assert.True(t, errors.Is(err, ErrUnsupportedGeometryType))
}

func TestEncodePolygonWithoutShell(t *testing.T) {
	c := NewCodec(DefaultOptions())

	_, err := c.Encode(&geom.Polygon{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
	var ge *Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "", ge.Path)

	shell, err := geom.NewLinearRing(geom.Sequence{geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1)})
	require.NoError(t, err)
	good, err := geom.NewPolygon(shell)
	require.NoError(t, err)
	mp, err := geom.NewMultiPolygon(good, &geom.Polygon{})
	require.NoError(t, err)
	gc, err := geom.NewGeometryCollection(mp)
	require.NoError(t, err)

	_, err = c.Encode(gc)
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "geometries.0.coordinates.1", ge.Path)
}

func TestEncodeCoordinateAndSequence(t *testing.T) {
	c := NewCodec(DefaultOptions())

	data, err := c.EncodeCoordinate(geom.XYZ(1.5, -2, 3))
	require.NoError(t, err)
	assert.Equal(t, `[1.5,-2,3]`, string(data))

	// Sequences are written as they are, with no closure.
	data, err = c.EncodeSequence(geom.Sequence{geom.XY(0, 0), geom.XY(1, 0), geom.XY(1, 1)})
	require.NoError(t, err)
	assert.Equal(t, `[[0,0],[1,0],[1,1]]`, string(data))

	data, err = c.EncodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
