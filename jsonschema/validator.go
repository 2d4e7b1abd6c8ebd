// Package jsonschema validates finalized output documents against the JSON
// Schemas embedded in the binary.
package jsonschema

import (
	"embed"
	"fmt"
	"strings"

	"github.com/SACCSF/linkedin"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Ensure Validator implements linkedin.DocumentValidator at compile time.
var _ linkedin.DocumentValidator = (*Validator)(nil)

// Validator checks output documents against the schema of their kind.
type Validator struct {
	schemas map[linkedin.Kind]*gojsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[linkedin.Kind]*gojsonschema.Schema)}
	for _, kind := range []linkedin.Kind{linkedin.KindCompany, linkedin.KindPerson} {
		data, err := Schema(kind)
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", kind, err)
		}
		v.schemas[kind] = schema
	}
	return v, nil
}

// Schema returns the raw JSON Schema for kind.
func Schema(kind linkedin.Kind) ([]byte, error) {
	data, err := schemaFS.ReadFile("schemas/" + string(kind) + ".schema.json")
	if err != nil {
		return nil, linkedin.Errorf(linkedin.ENOTFOUND, "no schema for kind %q", kind)
	}
	return data, nil
}

// ValidateDocument returns EINVALID listing the first violations if data
// does not match the schema for kind.
func (v *Validator) ValidateDocument(kind linkedin.Kind, data []byte) error {
	schema, ok := v.schemas[kind]
	if !ok {
		return linkedin.Errorf(linkedin.EINVALID, "no schema for kind %q", kind)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return linkedin.Errorf(linkedin.EINVALID, "output is not valid JSON: %v", err)
	}
	if result.Valid() {
		return nil
	}

	const maxReported = 5
	var msgs []string
	for i, desc := range result.Errors() {
		if i == maxReported {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(result.Errors())-maxReported))
			break
		}
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		msgs = append(msgs, field+": "+desc.Description())
	}
	return linkedin.Errorf(linkedin.EINVALID, "output does not match %s schema: %s", kind, strings.Join(msgs, "; "))
}
