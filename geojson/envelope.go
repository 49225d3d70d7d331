package geojson

import (
	"strings"

	"kuanb/gogeojson/geom"

	"github.com/tidwall/gjson"
)

type envelopeObject struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
}

// EncodeEnvelope writes env in the codec's envelope form. The envelope is
// normalized first, so swapped corners come out ordered.
func (c *Codec) EncodeEnvelope(env geom.Envelope) ([]byte, error) {
	return marshal(c.envelopeDocument(env))
}

func (c *Codec) envelopeDocument(env geom.Envelope) any {
	env = geom.NewEnvelope(env.MinX, env.MinY, env.MaxX, env.MaxY)
	if c.opts.EnvelopeForm == EnvelopeObject {
		return envelopeObject{MinX: env.MinX, MinY: env.MinY, MaxX: env.MaxX, MaxY: env.MaxY}
	}
	return [4]float64{env.MinX, env.MinY, env.MaxX, env.MaxY}
}

// DecodeEnvelope reads either a four number array [x1, y1, x2, y2] or an
// object with minx, miny, maxx and maxy members (names matched without
// regard to case). The result is normalized.
func (c *Codec) DecodeEnvelope(data []byte) (geom.Envelope, error) {
	root, err := parse(data)
	if err != nil {
		return geom.Envelope{}, err
	}
	return readEnvelope(root, "")
}

var envelopeKeys = [4]string{"minx", "miny", "maxx", "maxy"}

func readEnvelope(node gjson.Result, path string) (geom.Envelope, error) {
	var vals [4]float64
	switch {
	case node.IsArray():
		items := node.Array()
		if len(items) != 4 {
			return geom.Envelope{}, newError(ErrMalformedEnvelope, path,
				"array form needs 4 numbers, found %d elements", len(items))
		}
		for i, item := range items {
			v, err := readNumber(item, join(path, i), ErrMalformedEnvelope)
			if err != nil {
				return geom.Envelope{}, err
			}
			vals[i] = v
		}
	case node.IsObject():
		var seen [4]bool
		var ferr error
		node.ForEach(func(key, value gjson.Result) bool {
			for i, name := range envelopeKeys {
				if !strings.EqualFold(key.Str, name) {
					continue
				}
				kpath := join(path, key.Str)
				if seen[i] {
					ferr = newError(ErrMalformedEnvelope, kpath, "duplicate member %q", name)
					return false
				}
				v, err := readNumber(value, kpath, ErrMalformedEnvelope)
				if err != nil {
					ferr = err
					return false
				}
				seen[i] = true
				vals[i] = v
			}
			return true
		})
		if ferr != nil {
			return geom.Envelope{}, ferr
		}
		for i, ok := range seen {
			if !ok {
				return geom.Envelope{}, newError(ErrMalformedEnvelope, join(path, envelopeKeys[i]),
					"required member is absent")
			}
		}
	default:
		return geom.Envelope{}, newError(ErrMalformedEnvelope, path,
			"expected an array or an object, found %s", describe(node))
	}
	return geom.NewEnvelope(vals[0], vals[1], vals[2], vals[3]), nil
}
