// Package osm loads OpenStreetMap extracts into a road graph whose edges are
// geom line strings, indexed for nearest-way lookups.
package osm

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"kuanb/gogeojson/geom"

	"github.com/qedus/osmpbf"
	"github.com/rs/zerolog/log"
)

// LoadFile reads a .osm.pbf file and builds the road graph.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	nodes, ways, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Build(nodes, ways), nil
}

// Read decodes every node and way of a PBF stream. Relations are skipped.
func Read(r io.Reader) (map[NodeID]*Node, map[WayID]*Way, error) {
	d := osmpbf.NewDecoder(r)

	// use more memory from the start, it is faster
	d.SetBufferSize(osmpbf.MaxBlobSize)

	// start decoding with several goroutines, it is faster
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, nil, err
	}

	var nc, wc, rc uint64
	nodes := make(map[NodeID]*Node)
	ways := make(map[WayID]*Way)

	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, err
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			nodes[NodeID(v.ID)] = &Node{
				ID:    NodeID(v.ID),
				Coord: geom.XY(v.Lon, v.Lat),
			}
			nc++
		case *osmpbf.Way:
			nodeIDs := make([]NodeID, len(v.NodeIDs))
			for i, id := range v.NodeIDs {
				nodeIDs[i] = NodeID(id)
			}
			ways[WayID(v.ID)] = &Way{
				ID:      WayID(v.ID),
				Highway: v.Tags["highway"],
				Nodes:   nodeIDs,
			}
			wc++
		case *osmpbf.Relation:
			// we ignore relations for now
			rc++
		default:
			return nil, nil, fmt.Errorf("unknown type %T", v)
		}
	}

	log.Info().
		Uint64("nodes", nc).
		Uint64("ways", wc).
		Uint64("relations", rc).
		Msg("Decoded PBF")
	return nodes, ways, nil
}
