package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kuanb/gogeojson/config"
	"kuanb/gogeojson/geom"
	"kuanb/gogeojson/osm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testGraph() *osm.Graph {
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

func newTestServer(t *testing.T, validate bool) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.ValidateSchema = validate
	s, err := New(cfg, testGraph())
	require.NoError(t, err)
	return s.Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const eastboundTrace = `{"type":"FeatureCollection","features":[
	{"type":"Feature","properties":{"device":"a"},"geometry":{"type":"LineString","coordinates":[
		[0.0002,0.00002],[0.0008,0.00002]
	]}},
	{"type":"Feature","id":7,"properties":null,"geometry":{"type":"MultiPoint","coordinates":[
		[0.0012,0.00002],[0.0018,0.00002]
	]}}
]}`

func TestMatch(t *testing.T) {
	for _, validate := range []bool{false, true} {
		h := newTestServer(t, validate)
		rec := do(h, http.MethodPost, "/match", eastboundTrace)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

		body := rec.Body.Bytes()
		assert.Equal(t, "FeatureCollection", gjson.GetBytes(body, "type").Str)
		require.Equal(t, int64(2), gjson.GetBytes(body, "features.#").Int())
		assert.Equal(t, int64(1), gjson.GetBytes(body, "features.0.id").Int())
		assert.Equal(t, int64(2), gjson.GetBytes(body, "features.1.id").Int())
		assert.Equal(t, "LineString", gjson.GetBytes(body, "features.0.geometry.type").Str)
		assert.True(t, gjson.GetBytes(body, "features.0.properties.matched").Bool())
		assert.Equal(t, "primary", gjson.GetBytes(body, "features.0.properties.highway").Str)
	}
}

func TestMatchErrors(t *testing.T) {
	tests := []struct {
		name     string
		validate bool
		method   string
		body     string
		status   int
		path     string
	}{
		{"wrong method", false, http.MethodGet, "", http.StatusMethodNotAllowed, ""},
		{"not json", false, http.MethodPost, `{"type":`, http.StatusBadRequest, ""},
		{"unknown geometry", false, http.MethodPost,
			`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Circle","coordinates":[0,0]}}]}`,
			http.StatusBadRequest, "features.0.geometry.type"},
		{"bad coordinate", false, http.MethodPost,
			`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0,0,0]}}]}`,
			http.StatusBadRequest, "features.0.geometry.coordinates"},
		{"no coordinates", false, http.MethodPost,
			`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null}]}`,
			http.StatusBadRequest, ""},
		{"schema violation", true, http.MethodPost,
			`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Circle","coordinates":[0,0]}}]}`,
			http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newTestServer(t, tt.validate), tt.method, "/match", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusBadRequest {
				return
			}
			body := rec.Body.Bytes()
			assert.NotEmpty(t, gjson.GetBytes(body, "error").Str)
			assert.Equal(t, tt.path, gjson.GetBytes(body, "path").Str)
		})
	}
}

func TestMatchSchemaProblems(t *testing.T) {
	rec := do(newTestServer(t, true), http.MethodPost, "/match", `{"type":"Point","coordinates":[0]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, gjson.GetBytes(rec.Body.Bytes(), "problems.#").Int() > 0)
}

func TestNearest(t *testing.T) {
	h := newTestServer(t, false)

	rec := do(h, http.MethodGet, "/nearest?lon=0.0015&lat=0.0001&k=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.Bytes()
	require.Equal(t, int64(1), gjson.GetBytes(body, "features.#").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(body, "features.0.id").Int())
	assert.Equal(t, "primary", gjson.GetBytes(body, "features.0.properties.highway").Str)

	rec = do(h, http.MethodGet, "/nearest?lon=0&lat=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), gjson.GetBytes(rec.Body.Bytes(), "features.#").Int())

	for _, target := range []string{"/nearest?lat=0", "/nearest?lon=x&lat=0", "/nearest?lon=0&lat=0&k=0", "/nearest?lon=0&lat=0&k=1000"} {
		rec = do(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec = do(h, http.MethodPost, "/nearest?lon=0&lat=0", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, false)

	rec := do(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Greater(t, gjson.GetBytes(rec.Body.Bytes(), "goroutines").Int(), int64(0))
}
