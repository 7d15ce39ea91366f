package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a catalog document of the form:
//
//	entries:
//	  "Φ:U(boundary)TRUE@1":
//	    label: First boundary
//	    category: structure
func FromYAML(data []byte) (*Catalog, error) {
	var doc struct {
		Entries map[string]Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	return New(doc.Entries), nil
}

// Load reads and parses a catalog document from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	cat, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}
