package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"kuanb/gogeojson/geojson"
	"kuanb/gogeojson/geom"
	"kuanb/gogeojson/osm"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

type inputArgs struct {
	Input string `positional-arg-name:"FILE" description:"Input document, - for stdin" default:"-"`
}

type OutputOptions struct {
	Output string `short:"o" long:"output" description:"Output file, stdout when empty"`
	Pretty bool   `short:"p" long:"pretty" description:"Indent JSON output"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// NormalizeCommand decodes a document and encodes it again.
type NormalizeCommand struct {
	OutputOptions
	Args inputArgs `positional-args:"yes"`
}

func (c *NormalizeCommand) Execute(_ []string) error {
	codec, err := opts.Codec()
	if err != nil {
		return err
	}
	data, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}
	out, err := normalize(codec, data)
	if err != nil {
		return err
	}
	return c.write(out)
}

// BBoxCommand prints the envelope of a document.
type BBoxCommand struct {
	Args inputArgs `positional-args:"yes"`
}

func (c *BBoxCommand) Execute(_ []string) error {
	codec, err := opts.Codec()
	if err != nil {
		return err
	}
	data, err := readInput(c.Args.Input)
	if err != nil {
		return err
	}
	env, err := documentEnvelope(codec, data)
	if err != nil {
		return err
	}
	out, err := codec.EncodeEnvelope(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}

// ExportCommand writes the road graph of a PBF extract as GeoJSON.
type ExportCommand struct {
	OutputOptions
	Args struct {
		PBF string `positional-arg-name:"PBF" description:"OSM PBF extract" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ExportCommand) Execute(_ []string) error {
	codec, err := opts.Codec()
	if err != nil {
		return err
	}
	graph, err := osm.LoadFile(c.Args.PBF)
	if err != nil {
		return err
	}
	out, err := osm.NewWayCodec(codec).EncodeCollection(graph.Features())
	if err != nil {
		return err
	}
	log.Info().Int("features", len(graph.Ways)).Msg("Exported road graph")
	return c.write(out)
}

type rawCodec = geojson.FeatureCodec[geom.Geometry, json.RawMessage, json.RawMessage]

func newRawCodec(codec *geojson.Codec) *rawCodec {
	return geojson.NewFeatureCodec(codec, geojson.ReadGeometry, geojson.Raw(), geojson.Raw())
}

// normalize round-trips a geometry, Feature or FeatureCollection through
// the codec.
func normalize(codec *geojson.Codec, data []byte) ([]byte, error) {
	switch gjson.GetBytes(data, "type").Str {
	case "FeatureCollection":
		fc := newRawCodec(codec)
		col, err := fc.DecodeCollection(data)
		if err != nil {
			return nil, err
		}
		return fc.EncodeCollection(col)
	case "Feature":
		fc := newRawCodec(codec)
		f, err := fc.DecodeFeature(data)
		if err != nil {
			return nil, err
		}
		return fc.EncodeFeature(f)
	default:
		g, err := codec.Decode(data)
		if err != nil {
			return nil, err
		}
		return codec.Encode(g)
	}
}

var errNoCoordinates = errors.New("document has no coordinates")

// documentEnvelope returns the envelope covering every geometry of the
// document.
func documentEnvelope(codec *geojson.Codec, data []byte) (geom.Envelope, error) {
	var geoms []geom.Geometry
	switch gjson.GetBytes(data, "type").Str {
	case "FeatureCollection":
		col, err := newRawCodec(codec).DecodeCollection(data)
		if err != nil {
			return geom.Envelope{}, err
		}
		for _, f := range col.Features {
			if f.Geometry != nil {
				geoms = append(geoms, f.Geometry)
			}
		}
	case "Feature":
		f, err := newRawCodec(codec).DecodeFeature(data)
		if err != nil {
			return geom.Envelope{}, err
		}
		if f.Geometry != nil {
			geoms = append(geoms, f.Geometry)
		}
	default:
		g, err := codec.Decode(data)
		if err != nil {
			return geom.Envelope{}, err
		}
		geoms = append(geoms, g)
	}

	gc, err := geom.NewGeometryCollection(geoms...)
	if err != nil {
		return geom.Envelope{}, err
	}
	env, ok := gc.Envelope()
	if !ok {
		return geom.Envelope{}, errNoCoordinates
	}
	return env, nil
}

// toYAML re-emits a JSON document as block style YAML, keeping member
// order. Positions stay on one line.
func toYAML(data []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	return yaml.Marshal(&doc)
}

func blockStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			n.Style = 0
		}
		return
	case yaml.SequenceNode:
		if isPosition(n) {
			n.Style = yaml.FlowStyle
			return
		}
		n.Style = 0
	case yaml.MappingNode:
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func isPosition(n *yaml.Node) bool {
	if len(n.Content) == 0 {
		return false
	}
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode || (c.Tag != "!!int" && c.Tag != "!!float") {
			return false
		}
	}
	return true
}

func (o *OutputOptions) render(data []byte) ([]byte, error) {
	if o.Format == "yaml" {
		return toYAML(data)
	}
	if o.Pretty {
		return pretty.Pretty(data), nil
	}
	return append(data, '\n'), nil
}

func (o *OutputOptions) write(data []byte) error {
	out, err := o.render(data)
	if err != nil {
		return err
	}
	if o.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(o.Output, out, 0o644)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
