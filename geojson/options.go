package geojson

import "fmt"

// EnvelopeForm selects the wire representation of bounding boxes.
type EnvelopeForm int

const (
	// EnvelopeArray writes [minx, miny, maxx, maxy], the order used by
	// OpenLayers extents and the GeoJSON bbox member.
	EnvelopeArray EnvelopeForm = iota
	// EnvelopeObject writes {"minx":..,"miny":..,"maxx":..,"maxy":..}.
	EnvelopeObject
)

func (f EnvelopeForm) String() string {
	switch f {
	case EnvelopeArray:
		return "array"
	case EnvelopeObject:
		return "object"
	default:
		return fmt.Sprintf("EnvelopeForm(%d)", int(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f EnvelopeForm) MarshalText() ([]byte, error) {
	switch f {
	case EnvelopeArray, EnvelopeObject:
		return []byte(f.String()), nil
	}
	return nil, fmt.Errorf("unknown envelope form %d", int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *EnvelopeForm) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "array":
		*f = EnvelopeArray
	case "object":
		*f = EnvelopeObject
	default:
		return fmt.Errorf("unknown envelope form %q (want array or object)", text)
	}
	return nil
}

// Options configures a Codec. The zero value is usable and equals
// DefaultOptions except for MaxDepth, where zero means the default cap.
type Options struct {
	// EnvelopeForm selects how envelopes and bbox members are written.
	// Decoding accepts both forms regardless.
	EnvelopeForm EnvelopeForm `yaml:"envelope_form" json:"envelope_form"`

	// MaxDepth caps GeometryCollection nesting on decode.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// ComputeBBox writes a bbox member on features and collections that
	// do not carry one, derived from their geometries.
	ComputeBBox bool `yaml:"compute_bbox" json:"compute_bbox"`
}

const defaultMaxDepth = 64

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		EnvelopeForm: EnvelopeArray,
		MaxDepth:     defaultMaxDepth,
		ComputeBBox:  false,
	}
}

// Codec converts between geom values and GeoJSON text. It holds only its
// options and is safe for concurrent use.
//
// Polygon rings are closed on output when their first and last positions
// differ in X or Y. Ring closure ignores Z: callers writing XYZ rings
// should store the closing position themselves if they need the ends to
// match in all three ordinates.
type Codec struct {
	opts Options
}

// NewCodec creates a codec.
func NewCodec(opts Options) *Codec {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	return &Codec{opts: opts}
}

// Options returns the codec's configuration.
func (c *Codec) Options() Options {
	return c.opts
}
