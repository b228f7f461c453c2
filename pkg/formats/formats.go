// Package formats provides parsers for the Wavefront OBJ and MTL text
// formats and the mesh data they produce.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a model file format.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatOBJ
)

func (f Format) String() string {
	switch f {
	case FormatOBJ:
		return "obj"
	default:
		return "unknown"
	}
}

// LoadFunc loads a model file into ModelData.
type LoadFunc func(path string, opts ...Option) (*ModelData, error)

var loaders = map[Format]LoadFunc{
	FormatOBJ: LoadOBJ,
}

// DetectFormat guesses the format of a model file from its extension.
// Files without an extension are treated as OBJ, the only text format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj", "":
		return FormatOBJ
	default:
		return FormatUnknown
	}
}

// Load loads a model file, choosing the parser from its extension.
func Load(path string, opts ...Option) (*ModelData, error) {
	return LoadAs(path, DetectFormat(path), opts...)
}

// LoadAs loads a model file with an explicit format.
func LoadAs(path string, format Format, opts ...Option) (*ModelData, error) {
	load, ok := loaders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, path, format)
	}
	return load(path, opts...)
}
