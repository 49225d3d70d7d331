package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"point", `{"type":"Point","coordinates":[1,2]}`, true},
		{"point z", `{"type":"Point","coordinates":[1,2,3]}`, true},
		{"polygon", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`, true},
		{"nested collection", `{"type":"GeometryCollection","geometries":[{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[0,0]}]}]}`, true},
		{"feature", `{"type":"Feature","id":"abc","geometry":null,"properties":{"a":1}}`, true},
		{"feature collection", `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}],"bbox":[0,0,1,1]}`, true},
		{"object bbox", `{"type":"FeatureCollection","features":[],"bbox":{"minx":0,"miny":0,"maxx":1,"maxy":1}}`, true},
		{"unknown type", `{"type":"Circle","coordinates":[0,0]}`, false},
		{"four ordinates", `{"type":"Point","coordinates":[1,2,3,4]}`, false},
		{"string ordinate", `{"type":"Point","coordinates":[1,"2"]}`, false},
		{"missing coordinates", `{"type":"LineString"}`, false},
		{"bad member", `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point"}}]}`, false},
		{"short bbox", `{"type":"FeatureCollection","features":[],"bbox":[0,0,1]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate([]byte(tt.doc))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.NotEmpty(t, ve.Problems)
		})
	}
}

func TestValidateNotJSON(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate([]byte(`{"type":`))
	require.Error(t, err)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestNewValidatorFromBytes(t *testing.T) {
	_, err := NewValidatorFromBytes([]byte(`{"type": 5}`))
	assert.Error(t, err)

	v, err := NewValidatorFromBytes([]byte(`{"type":"object","required":["type"]}`))
	require.NoError(t, err)
	assert.NoError(t, v.Validate([]byte(`{"type":"x"}`)))
	assert.Error(t, v.Validate([]byte(`{}`)))
}
