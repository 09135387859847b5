// Package beamfile reads beam definitions from JSON or YAML files.
//
// A definition names the span (or a length measured from 0), the support
// coordinates, and a list of loads:
//
//	span: [0, 9]
//	pinned: 2
//	rolling: 7
//	loads:
//	  - {type: distributed_v, expr: "-10", span: [3, 9]}
//	  - {type: point_v, force: -20, coord: 3, case: L}
//	  - {type: torque, torque: 30, coord: 4}
package beamfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the serialized form of a beam definition.
type File struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Span     []float64 `json:"span,omitempty" yaml:"span,omitempty"`     // [x0, x1]
	Length   float64   `json:"length,omitempty" yaml:"length,omitempty"` // shorthand for span [0, length]
	Pinned   *float64  `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Rolling  *float64  `json:"rolling,omitempty" yaml:"rolling,omitempty"`
	Variable string    `json:"variable,omitempty" yaml:"variable,omitempty"` // free variable of intensity expressions, default "x"
	Loads    []Load    `json:"loads" yaml:"loads"`
}

// Load is one serialized load.
type Load struct {
	// Type: "point_h", "point_v", "distributed_h", "distributed_v" or "torque"
	Type string `json:"type" yaml:"type"`

	Force  float64 `json:"force,omitempty" yaml:"force,omitempty"`   // point forces
	Torque float64 `json:"torque,omitempty" yaml:"torque,omitempty"` // clockwise positive
	Coord  float64 `json:"coord,omitempty" yaml:"coord,omitempty"`

	// Distributed loads
	Expr   string    `json:"expr,omitempty" yaml:"expr,omitempty"`
	Span   []float64 `json:"span,omitempty" yaml:"span,omitempty"`
	Origin string    `json:"origin,omitempty" yaml:"origin,omitempty"` // "local" (default) or "global"

	// Load case for NSCP combinations, default D
	Case string `json:"case,omitempty" yaml:"case,omitempty"`
}

// Format is a definition file encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%s: unknown beam definition format (use .json, .yaml or .yml)", path)
}

// Decode reads a File. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	}
	return &f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, f *File, format Format) error {
	if format == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// LoadFromFile loads and validates a beam definition.
func LoadFromFile(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def, err := f.Definition()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
