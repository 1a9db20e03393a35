package params

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a parameter file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatFromPath picks a format from the file extension. JSON is read with the
// YAML decoder.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".hcl", ".tfvars":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("params: unsupported parameter file %q", path)
	}
}

// LoadFile reads a parameter file from disk.
func LoadFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("params: read %s: %w", path, err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Set{}, err
	}
	return Decode(data, format, path)
}

// LoadFS reads a parameter file from fsys.
func LoadFS(fsys fs.FS, path string) (Set, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Set{}, fmt.Errorf("params: read %s: %w", path, err)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Set{}, err
	}
	return Decode(data, format, path)
}

// LoadFiles loads every path and merges them, later files winning.
func LoadFiles(paths ...string) (Set, error) {
	var merged Set
	for _, path := range paths {
		set, err := LoadFile(path)
		if err != nil {
			return Set{}, err
		}
		merged = merged.Merge(set)
	}
	return merged, nil
}

// Decode parses data in the given format. source names the input in errors.
func Decode(data []byte, format Format, source string) (Set, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data, source)
	case FormatHCL:
		return decodeHCL(data, source)
	default:
		return Set{}, fmt.Errorf("params: unknown format %q", format)
	}
}

func decodeYAML(data []byte, source string) (Set, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Set{}, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Set{}, fmt.Errorf("params: parse %s: %w", source, err)
	}

	set, err := New(raw)
	if err != nil {
		return Set{}, fmt.Errorf("params: %s: %w", source, err)
	}
	return set, nil
}
