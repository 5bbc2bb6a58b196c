package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk envelope. A bare top-level array is accepted too.
type document struct {
	Items []Item `json:"items" yaml:"items"`
}

// LoadFile reads a catalog from a JSON, YAML or XLSX file, chosen by
// extension.
func LoadFile(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		res, err := ImportXLSX(DefaultXLSXConfig(path))
		if err != nil {
			return nil, err
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("import %s: %d bad rows, first: %s", path, len(res.Errors), res.Errors[0])
		}
		return New(res.Items)
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	items, err := Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return New(items)
}

// Decode parses items from r. format is a file extension such as ".json"
// or ".yaml".
func Decode(r io.Reader, format string) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		if data[0] == '[' {
			var items []Item
			if err := json.Unmarshal(data, &items); err != nil {
				return nil, err
			}
			return items, nil
		}
		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Items, nil
	case "yaml", "yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var items []Item
			if err := node.Decode(&items); err != nil {
				return nil, err
			}
			return items, nil
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Items, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, format)
	}
}

// WriteJSON writes the catalog in the envelope format read by LoadFile.
func WriteJSON(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Items: c.Items()})
}
