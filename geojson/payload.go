package geojson

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Payload converts a feature's properties or id to and from JSON. Marshal
// returns a single JSON value; Unmarshal receives one, "null" included.
type Payload[T any] struct {
	Marshal   func(T) ([]byte, error)
	Unmarshal func([]byte) (T, error)
}

// JSON returns a payload backed by encoding/json.
func JSON[T any]() Payload[T] {
	return Payload[T]{
		Marshal: func(v T) ([]byte, error) {
			return json.Marshal(v)
		},
		Unmarshal: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
}

var errInvalidRaw = errors.New("raw value is not valid JSON")

// Raw returns a payload that passes JSON through untouched apart from
// whitespace, which is removed.
func Raw() Payload[json.RawMessage] {
	return Payload[json.RawMessage]{
		Marshal: func(v json.RawMessage) ([]byte, error) {
			if len(v) == 0 {
				return []byte("null"), nil
			}
			if !gjson.ValidBytes(v) {
				return nil, errInvalidRaw
			}
			return pretty.Ugly(v), nil
		},
		Unmarshal: func(data []byte) (json.RawMessage, error) {
			if !gjson.ValidBytes(data) {
				return nil, errInvalidRaw
			}
			return json.RawMessage(pretty.Ugly(data)), nil
		},
	}
}
