// Package schema checks the structure of GeoJSON documents against a JSON
// Schema before they reach the codec.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed geojson.schema.json
var geojsonSchema []byte

// Validator validates documents against the embedded GeoJSON schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	return NewValidatorFromBytes(geojsonSchema)
}

// NewValidatorFromBytes compiles a caller-supplied schema.
func NewValidatorFromBytes(schemaData []byte) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate validates raw JSON bytes. A document that is not JSON yields a
// plain error; a document that breaks the schema yields *ValidationError.
func (v *Validator) Validate(data []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}
