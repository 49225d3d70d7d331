package geojson

import (
	"encoding/json"

	"kuanb/gogeojson/geom"

	"github.com/tidwall/gjson"
)

// Feature pairs a geometry with caller-defined properties and an optional
// id. A nil ID is left out of the output entirely.
type Feature[G geom.Geometry, P, I any] struct {
	ID         *I
	Geometry   G
	Properties P
	BBox       *geom.Envelope
}

// FeatureCollection is an ordered list of features.
type FeatureCollection[G geom.Geometry, P, I any] struct {
	Features []Feature[G, P, I]
	BBox     *geom.Envelope
}

type featureDocument struct {
	Type       string          `json:"type"`
	ID         json.RawMessage `json:"id,omitempty"`
	Geometry   any             `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
	BBox       any             `json:"bbox,omitempty"`
}

type featureCollectionDocument struct {
	Type     string            `json:"type"`
	Features []featureDocument `json:"features"`
	BBox     any               `json:"bbox,omitempty"`
}

// FeatureCodec reads and writes features whose geometry is decoded by a
// GeometryReader and whose properties and id go through Payloads.
type FeatureCodec[G geom.Geometry, P, I any] struct {
	codec      *Codec
	geometry   GeometryReader[G]
	properties Payload[P]
	id         Payload[I]
}

// NewFeatureCodec creates a feature codec. The type arguments are inferred
// from the reader and payloads:
//
//	fc := NewFeatureCodec(codec, ReadPoint, JSON[Stop](), JSON[string]())
func NewFeatureCodec[G geom.Geometry, P, I any](c *Codec, geometry GeometryReader[G], properties Payload[P], id Payload[I]) *FeatureCodec[G, P, I] {
	return &FeatureCodec[G, P, I]{
		codec:      c,
		geometry:   geometry,
		properties: properties,
		id:         id,
	}
}

// EncodeFeature writes f with members in the order type, id, geometry,
// properties, bbox.
func (fc *FeatureCodec[G, P, I]) EncodeFeature(f Feature[G, P, I]) ([]byte, error) {
	doc, err := fc.featureDocument(f, "")
	if err != nil {
		return nil, err
	}
	return marshal(doc)
}

// EncodeCollection writes a FeatureCollection, features in slice order.
func (fc *FeatureCodec[G, P, I]) EncodeCollection(col FeatureCollection[G, P, I]) ([]byte, error) {
	doc := featureCollectionDocument{
		Type:     "FeatureCollection",
		Features: make([]featureDocument, 0, len(col.Features)),
	}
	var env geom.Envelope
	var ok bool
	for i, f := range col.Features {
		fd, err := fc.featureDocument(f, join("features", i))
		if err != nil {
			return nil, err
		}
		doc.Features = append(doc.Features, fd)
		if fe, fok := featureEnvelope(f); fok {
			if ok {
				env = env.Union(fe)
			} else {
				env, ok = fe, true
			}
		}
	}
	switch {
	case col.BBox != nil:
		doc.BBox = fc.codec.envelopeDocument(*col.BBox)
	case fc.codec.opts.ComputeBBox && ok:
		doc.BBox = fc.codec.envelopeDocument(env)
	}
	return marshal(doc)
}

func (fc *FeatureCodec[G, P, I]) featureDocument(f Feature[G, P, I], path string) (featureDocument, error) {
	doc := featureDocument{Type: "Feature"}
	if f.ID != nil {
		raw, err := fc.id.Marshal(*f.ID)
		if err != nil {
			return doc, wrapError(ErrPayload, join(path, "id"), err)
		}
		// An id payload that renders as null counts as absent.
		if string(raw) != "null" {
			doc.ID = raw
		}
	}
	g := geom.Geometry(f.Geometry)
	if !geom.IsNil(g) {
		gd, err := fc.codec.document(g, join(path, "geometry"))
		if err != nil {
			return doc, err
		}
		doc.Geometry = gd
	}
	props, err := fc.properties.Marshal(f.Properties)
	if err != nil {
		return doc, wrapError(ErrPayload, join(path, "properties"), err)
	}
	if len(props) > 0 {
		doc.Properties = props
	}
	switch {
	case f.BBox != nil:
		doc.BBox = fc.codec.envelopeDocument(*f.BBox)
	case fc.codec.opts.ComputeBBox && !geom.IsNil(g):
		if env, ok := g.Envelope(); ok {
			doc.BBox = fc.codec.envelopeDocument(env)
		}
	}
	return doc, nil
}

func featureEnvelope[G geom.Geometry, P, I any](f Feature[G, P, I]) (geom.Envelope, bool) {
	if f.BBox != nil {
		return *f.BBox, true
	}
	g := geom.Geometry(f.Geometry)
	if geom.IsNil(g) {
		return geom.Envelope{}, false
	}
	return g.Envelope()
}

// DecodeFeature parses a Feature object. The type member must be exactly
// "Feature".
func (fc *FeatureCodec[G, P, I]) DecodeFeature(data []byte) (Feature[G, P, I], error) {
	root, err := parse(data)
	if err != nil {
		return Feature[G, P, I]{}, err
	}
	return fc.readFeature(root, "")
}

// DecodeCollection parses a FeatureCollection. Decoding stops at the first
// feature that fails; its index is in the error path.
func (fc *FeatureCodec[G, P, I]) DecodeCollection(data []byte) (FeatureCollection[G, P, I], error) {
	var col FeatureCollection[G, P, I]
	root, err := parse(data)
	if err != nil {
		return col, err
	}
	if err := expectLiteral(root, "", "FeatureCollection"); err != nil {
		return col, err
	}
	features, path, err := member(root, "", "features")
	if err != nil {
		return col, err
	}
	items, err := readArray(features, path)
	if err != nil {
		return col, err
	}
	col.Features = make([]Feature[G, P, I], 0, len(items))
	for i, item := range items {
		f, err := fc.readFeature(item, join(path, i))
		if err != nil {
			return FeatureCollection[G, P, I]{}, err
		}
		col.Features = append(col.Features, f)
	}
	if col.BBox, err = optionalBBox(root, ""); err != nil {
		return FeatureCollection[G, P, I]{}, err
	}
	return col, nil
}

func (fc *FeatureCodec[G, P, I]) readFeature(node gjson.Result, path string) (Feature[G, P, I], error) {
	var f Feature[G, P, I]
	if err := expectLiteral(node, path, "Feature"); err != nil {
		return f, err
	}

	if id := node.Get("id"); id.Exists() && id.Type != gjson.Null {
		v, err := fc.id.Unmarshal([]byte(id.Raw))
		if err != nil {
			return f, wrapError(ErrPayload, join(path, "id"), err)
		}
		f.ID = &v
	}

	if g := node.Get("geometry"); g.Exists() && g.Type != gjson.Null {
		v, err := fc.geometry(fc.codec, g, join(path, "geometry"))
		if err != nil {
			return Feature[G, P, I]{}, err
		}
		f.Geometry = v
	}

	raw := "null"
	if p := node.Get("properties"); p.Exists() {
		raw = p.Raw
	}
	props, err := fc.properties.Unmarshal([]byte(raw))
	if err != nil {
		return Feature[G, P, I]{}, wrapError(ErrPayload, join(path, "properties"), err)
	}
	f.Properties = props

	if f.BBox, err = optionalBBox(node, path); err != nil {
		return Feature[G, P, I]{}, err
	}
	return f, nil
}

// expectLiteral checks that node is an object whose type member is want.
func expectLiteral(node gjson.Result, path, want string) error {
	if !node.IsObject() {
		return newError(ErrNotAnObject, path, "expected a %s object, found %s", want, describe(node))
	}
	t := node.Get("type")
	if !t.Exists() {
		return newError(ErrMissingField, join(path, "type"), "expected %q", want)
	}
	if t.Type != gjson.String || t.Str != want {
		return newError(ErrTypeMismatch, join(path, "type"), "expected %q, found %s", want, t.Raw)
	}
	return nil
}

func optionalBBox(node gjson.Result, path string) (*geom.Envelope, error) {
	b := node.Get("bbox")
	if !b.Exists() || b.Type == gjson.Null {
		return nil, nil
	}
	env, err := readEnvelope(b, join(path, "bbox"))
	if err != nil {
		return nil, err
	}
	return &env, nil
}
