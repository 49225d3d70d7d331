// Package routing matches GPS traces to road graph edges.
package routing

import (
	"math"

	"kuanb/gogeojson/geom"
	"kuanb/gogeojson/osm"
)

// Candidate represents a potential road segment match for a GPS point
type Candidate struct {
	WayID    osm.WayID
	Distance float64 // distance from GPS point to road segment in meters
}

// MatchResult represents the output of the HMM map matching
type MatchResult struct {
	MatchedWays []osm.WayID // sequence of matched way IDs, one per observation
	Confidence  float64     // overall confidence score (0-1)
}

// Params tunes the matcher.
type Params struct {
	SigmaZ           float64 `yaml:"sigma_z"`            // GPS measurement noise (meters)
	Beta             float64 `yaml:"beta"`               // transition probability parameter
	MaxCandidateDist float64 `yaml:"max_candidate_dist"` // maximum distance to consider a candidate (meters)
}

// DefaultParams returns the usual values for consumer GPS.
func DefaultParams() Params {
	return Params{
		SigmaZ:           4.07,
		Beta:             3.0,
		MaxCandidateDist: 35.0,
	}
}

// HMMMapMatcher performs map matching using a Hidden Markov Model
type HMMMapMatcher struct {
	Graph *osm.Graph
	Params
}

// NewHMMMapMatcher creates a matcher. Zero fields of params take their
// default value.
func NewHMMMapMatcher(graph *osm.Graph, params Params) *HMMMapMatcher {
	def := DefaultParams()
	if params.SigmaZ <= 0 {
		params.SigmaZ = def.SigmaZ
	}
	if params.Beta <= 0 {
		params.Beta = def.Beta
	}
	if params.MaxCandidateDist <= 0 {
		params.MaxCandidateDist = def.MaxCandidateDist
	}
	return &HMMMapMatcher{Graph: graph, Params: params}
}

// Match performs HMM map matching on a sequence of lon/lat coordinates.
// The result is empty when any observation has no candidate.
func (m *HMMMapMatcher) Match(coords []geom.Coordinate) MatchResult {
	if len(coords) == 0 {
		return MatchResult{MatchedWays: nil, Confidence: 0}
	}

	// Step 1: Find candidates for each observation
	candidates := m.findCandidates(coords)
	for _, c := range candidates {
		if len(c) == 0 {
			return MatchResult{MatchedWays: nil, Confidence: 0}
		}
	}

	// Step 2: Run Viterbi algorithm
	path, confidence := m.viterbi(coords, candidates)

	return MatchResult{
		MatchedWays: path,
		Confidence:  confidence,
	}
}

// Candidates returns the ways within MaxCandidateDist of c.
func (m *HMMMapMatcher) Candidates(c geom.Coordinate) []Candidate {
	out := make([]Candidate, 0)
	consider := func(way *osm.Way) {
		dist := way.DistanceTo(c)
		if dist >= 0 && dist <= m.MaxCandidateDist {
			out = append(out, Candidate{WayID: way.ID, Distance: dist})
		}
	}

	// Use the spatial index for fast lookup if available
	if m.Graph.Index != nil {
		for _, wayID := range m.Graph.Index.SearchNearPoint(c, m.MaxCandidateDist) {
			if way := m.Graph.Ways[wayID]; way != nil {
				consider(way)
			}
		}
		return out
	}
	// Fallback to brute force search
	for _, way := range m.Graph.Ways {
		consider(way)
	}
	return out
}

func (m *HMMMapMatcher) findCandidates(coords []geom.Coordinate) [][]Candidate {
	candidates := make([][]Candidate, len(coords))
	for i, coord := range coords {
		candidates[i] = m.Candidates(coord)
	}
	return candidates
}

// emissionProbability calculates P(observation | state) using Gaussian distribution
func (m *HMMMapMatcher) emissionProbability(distance float64) float64 {
	return math.Exp(-0.5 * math.Pow(distance/m.SigmaZ, 2))
}

// transitionProbability calculates P(state_t | state_{t-1}) from the great
// circle distance between the observations.
func (m *HMMMapMatcher) transitionProbability(fromWay, toWay osm.WayID, gcDist float64) float64 {
	if fromWay == toWay {
		return 1.0
	}
	if m.Graph.Ways[fromWay] == nil || m.Graph.Ways[toWay] == nil {
		return 0.001
	}
	if m.Graph.Connected(fromWay, toWay) {
		return math.Exp(-gcDist / (m.Beta * 100))
	}
	// Non-connected roads get lower probability based on distance
	return math.Exp(-gcDist/m.Beta) * 0.1
}

// viterbi runs the Viterbi algorithm to find the most likely path
func (m *HMMMapMatcher) viterbi(coords []geom.Coordinate, candidates [][]Candidate) ([]osm.WayID, float64) {
	n := len(coords)
	if n == 0 {
		return nil, 0
	}

	// V[t][i] = probability of most likely path ending in candidate i at time t
	V := make([][]float64, n)
	// backpointer[t][i] = index of previous candidate in most likely path
	backpointer := make([][]int, n)

	for t := 0; t < n; t++ {
		V[t] = make([]float64, len(candidates[t]))
		backpointer[t] = make([]int, len(candidates[t]))
	}

	for i, cand := range candidates[0] {
		V[0][i] = math.Log(m.emissionProbability(cand.Distance) + 1e-10)
		backpointer[0][i] = -1
	}

	for t := 1; t < n; t++ {
		gcDist := geom.GreatCircleDistance(coords[t-1], coords[t])

		for j, currCand := range candidates[t] {
			maxProb := math.Inf(-1)
			maxIdx := 0

			for i, prevCand := range candidates[t-1] {
				transProb := m.transitionProbability(prevCand.WayID, currCand.WayID, gcDist)
				prob := V[t-1][i] + math.Log(transProb+1e-10)

				if prob > maxProb {
					maxProb = prob
					maxIdx = i
				}
			}

			emitProb := m.emissionProbability(currCand.Distance)
			V[t][j] = maxProb + math.Log(emitProb+1e-10)
			backpointer[t][j] = maxIdx
		}
	}

	// Find best final state
	maxProb := math.Inf(-1)
	maxIdx := 0
	for i, prob := range V[n-1] {
		if prob > maxProb {
			maxProb = prob
			maxIdx = i
		}
	}

	path := make([]osm.WayID, n)
	idx := maxIdx
	for t := n - 1; t >= 0; t-- {
		path[t] = candidates[t][idx].WayID
		idx = backpointer[t][idx]
	}

	return path, calculateConfidence(V[n-1], maxIdx)
}

// calculateConfidence compares the best final log probability with the
// average over all final states and maps the gap onto [0, 1].
func calculateConfidence(final []float64, bestIdx int) float64 {
	if len(final) == 0 {
		return 0
	}
	bestLogProb := final[bestIdx]

	sumExp := 0.0
	for _, logP := range final {
		sumExp += math.Exp(logP - bestLogProb) // normalize to prevent overflow
	}
	avgLogProb := bestLogProb + math.Log(sumExp/float64(len(final)))

	confidence := 1.0 - math.Exp(-(bestLogProb - avgLogProb))
	return math.Max(0, math.Min(1, confidence))
}
