// Package yaml loads selector table overrides from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/SACCSF/linkedin"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a selector override file for kind.
// Returns EINVALID if the file cannot be read or parsed, or if it declares
// a different kind.
func LoadTable(path string, kind linkedin.Kind) (*linkedin.SelectorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, linkedin.Errorf(linkedin.EINVALID, "cannot read selector file: %v", err)
	}
	return ParseTable(data, kind)
}

// ParseTable decodes a selector override. Unknown keys are rejected so
// typos do not silently fall back to the defaults. A missing kind is taken
// from kind.
func ParseTable(data []byte, kind linkedin.Kind) (*linkedin.SelectorTable, error) {
	var table linkedin.SelectorTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil && !errors.Is(err, io.EOF) {
		return nil, linkedin.Errorf(linkedin.EINVALID, "parse selector file: %v", err)
	}

	switch table.Kind {
	case linkedin.KindUnknown:
		table.Kind = kind
	case kind:
	default:
		return nil, linkedin.Errorf(linkedin.EINVALID, "selector file is for %q pages, expected %q", table.Kind, kind)
	}
	return &table, nil
}
