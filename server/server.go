// Package server exposes the map matcher over HTTP. Requests and responses
// are GeoJSON, read and written by the geojson codec.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"

	"kuanb/gogeojson/config"
	"kuanb/gogeojson/geojson"
	"kuanb/gogeojson/geom"
	"kuanb/gogeojson/osm"
	"kuanb/gogeojson/routing"
	"kuanb/gogeojson/schema"

	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes    = 10 << 20
	defaultNearestK = 5
	maxNearestK     = 100
)

// MatchProperties describes one matched way in a /match response.
type MatchProperties struct {
	Matched      bool    `json:"matched"`
	Highway      string  `json:"highway"`
	LengthMeters float64 `json:"length_m"`
	Confidence   float64 `json:"confidence"`
	Stroke       string  `json:"stroke"`
}

type inputCodec = geojson.FeatureCodec[geom.Geometry, json.RawMessage, json.RawMessage]

type matchCodec = geojson.FeatureCodec[*geom.LineString, MatchProperties, int64]

// Server holds the graph and matcher for handling requests
type Server struct {
	graph     *osm.Graph
	matcher   *routing.HMMMapMatcher
	input     *inputCodec
	matches   *matchCodec
	ways      *geojson.FeatureCodec[*geom.LineString, osm.WayProperties, int64]
	validator *schema.Validator
}

// New creates a server for graph. The schema validator is compiled only
// when cfg enables it.
func New(cfg *config.Config, graph *osm.Graph) (*Server, error) {
	codec := geojson.NewCodec(cfg.Codec)
	s := &Server{
		graph:   graph,
		matcher: routing.NewHMMMapMatcher(graph, cfg.Matcher),
		input:   geojson.NewFeatureCodec(codec, geojson.ReadGeometry, geojson.Raw(), geojson.Raw()),
		matches: geojson.NewFeatureCodec(codec, geojson.ReadLineString, geojson.JSON[MatchProperties](), geojson.JSON[int64]()),
		ways:    osm.NewWayCodec(codec),
	}
	if cfg.ValidateSchema {
		v, err := schema.NewValidator()
		if err != nil {
			return nil, err
		}
		s.validator = v
	}
	return s, nil
}

// Handler returns the routes wrapped in the request logger.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/match", s.handleMatch)
	mux.HandleFunc("/nearest", s.handleNearest)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/metrics", handleMetrics)
	return RequestLogger(mux)
}

// handleMatch reads a FeatureCollection of any geometries, matches all of
// their coordinates in document order and returns the matched ways.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read request body: %w", err))
		return
	}
	defer r.Body.Close()

	if s.validator != nil {
		if err := s.validator.Validate(body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	fc, err := s.input.DecodeCollection(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var coords []geom.Coordinate
	for _, f := range fc.Features {
		coords = append(coords, geom.Flatten(f.Geometry)...)
	}
	if len(coords) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no coordinates found in GeoJSON"))
		return
	}

	log.Debug().Int("coordinates", len(coords)).Msg("Processing match request")
	match := s.matcher.Match(coords)

	out := geojson.FeatureCollection[*geom.LineString, MatchProperties, int64]{
		Features: make([]geojson.Feature[*geom.LineString, MatchProperties, int64], 0, len(match.MatchedWays)),
	}
	for i, wayID := range match.MatchedWays {
		// Consecutive observations on the same way yield one feature.
		if i > 0 && match.MatchedWays[i-1] == wayID {
			continue
		}
		way := s.graph.Ways[wayID]
		if way == nil || way.Geometry == nil {
			continue
		}
		id := int64(wayID)
		out.Features = append(out.Features, geojson.Feature[*geom.LineString, MatchProperties, int64]{
			ID:       &id,
			Geometry: way.Geometry,
			Properties: MatchProperties{
				Matched:      true,
				Highway:      way.Highway,
				LengthMeters: way.LengthMeters,
				Confidence:   match.Confidence,
				Stroke:       randomColor(),
			},
		})
	}

	data, err := s.matches.EncodeCollection(out)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeGeoJSON(w, data)
}

// handleNearest returns the k ways nearest to lon/lat.
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("lon: %w", err))
		return
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("lat: %w", err))
		return
	}
	k := defaultNearestK
	if v := q.Get("k"); v != "" {
		k, err = strconv.Atoi(v)
		if err != nil || k <= 0 || k > maxNearestK {
			writeError(w, http.StatusBadRequest, fmt.Errorf("k must be between 1 and %d", maxNearestK))
			return
		}
	}

	col := osm.WayCollection{}
	if s.graph.Index != nil {
		for _, id := range s.graph.Index.Nearest(geom.XY(lon, lat), k) {
			if f, ok := s.graph.Feature(id); ok {
				col.Features = append(col.Features, f)
			}
		}
	}

	data, err := s.ways.EncodeCollection(col)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeGeoJSON(w, data)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(GetRuntimeMetrics()); err != nil {
		log.Error().Err(err).Msg("Failed to encode metrics")
	}
}

type errorResponse struct {
	Error    string   `json:"error"`
	Path     string   `json:"path,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var ge *geojson.Error
	if errors.As(err, &ge) {
		resp.Path = ge.Path
	}
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		resp.Error = "document does not match the GeoJSON schema"
		resp.Problems = ve.Problems
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode error response")
	}
}

func writeGeoJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

// randomColor generates a random hex color string
func randomColor() string {
	const letters = "0123456789ABCDEF"
	b := make([]byte, 7)
	b[0] = '#'
	for i := 1; i < 7; i++ {
		b[i] = letters[rand.Intn(16)]
	}
	return string(b)
}
