package topology

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// Format selects how a Graph is serialized.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "" (json).
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("topology: unsupported output format %q", raw)
	}
}

// ContentType is the HTTP media type for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Marshal renders g as a document with top-level "edges" and "nodes".
func Marshal(g Graph, f Format) ([]byte, error) {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}

	switch f {
	case FormatYAML:
		out, err := yaml.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("topology: marshal yaml: %w", err)
		}
		return out, nil
	case "", FormatJSON:
		out, err := json.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("topology: marshal json: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("topology: unsupported output format %q", f)
	}
}

// Write marshals g and writes it to w.
func Write(w io.Writer, g Graph, f Format) error {
	out, err := Marshal(g, f)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
