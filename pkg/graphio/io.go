package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apgerrors "github.com/matzehuels/apg/pkg/errors"
	"github.com/matzehuels/apg/pkg/graph"
)

// Format selects the document encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	TOML Format = "toml"
)

// ErrUnknownFormat is returned for file extensions or format names that are
// neither JSON nor TOML.
var ErrUnknownFormat = apgerrors.New(apgerrors.ErrCodeInvalidFormat, "unknown document format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal encodes a graph in the given format.
func Marshal(g *graph.Graph, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, g, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a graph to w in the given format.
func Write(w io.Writer, g *graph.Graph, f Format) error {
	doc := FromGraph(g)
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case TOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	return nil
}

// Read decodes a graph from r.
// Returns validation errors for malformed documents or graph contract violations.
func Read(r io.Reader, f Format) (*graph.Graph, error) {
	var doc Document
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, apgerrors.Wrap(apgerrors.ErrCodeInvalidFormat, err, "decode json")
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, apgerrors.Wrap(apgerrors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, apgerrors.New(apgerrors.ErrCodeInvalidFormat, "decode toml: unknown keys %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("%q: %w", f, ErrUnknownFormat)
	}
	return ToGraph(doc)
}

// ReadFile reads a graph file, picking the format from its extension.
func ReadFile(path string) (*graph.Graph, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	g, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteFile writes a graph file, picking the format from its extension.
// The file is created with 0644 permissions.
func WriteFile(g *graph.Graph, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, g, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
