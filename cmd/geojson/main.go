package main

import (
	"os"

	"kuanb/gogeojson/geojson"
	"kuanb/gogeojson/logger"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	EnvelopeForm string `short:"e" long:"envelope-form" env:"ENVELOPE_FORM" description:"Envelope and bbox output form" choice:"array" choice:"object" default:"array"`
	MaxDepth     int    `long:"max-depth" description:"GeometryCollection nesting limit" default:"64"`
	ComputeBBox  bool   `long:"compute-bbox" description:"Write bbox members on features and collections"`
}

// Codec builds the codec the subcommands share.
func (o *Options) Codec() (*geojson.Codec, error) {
	var form geojson.EnvelopeForm
	if err := form.UnmarshalText([]byte(o.EnvelopeForm)); err != nil {
		return nil, err
	}
	return geojson.NewCodec(geojson.Options{
		EnvelopeForm: form,
		MaxDepth:     o.MaxDepth,
		ComputeBBox:  o.ComputeBBox,
	}), nil
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup("")
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.AddCommand("normalize",
		"Rewrite a GeoJSON document",
		"Decode a geometry, Feature or FeatureCollection and encode it again: rings are closed and unknown members dropped.",
		&NormalizeCommand{}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("bbox",
		"Print the bounding box of a GeoJSON document",
		"Print the envelope of every coordinate in a geometry, Feature or FeatureCollection.",
		&BBoxCommand{}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("export",
		"Export a road graph as GeoJSON",
		"Load an OSM PBF extract, build the road graph and write its edges as a FeatureCollection.",
		&ExportCommand{}); err != nil {
		panic(err)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
