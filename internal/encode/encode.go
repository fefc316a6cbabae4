// Package encode holds the document encoders shared by the json and yaml
// output formats.
package encode

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSON writes v as two-space indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a single YAML document with two-space indentation.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
