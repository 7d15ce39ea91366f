package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Get when the catalog has no entry for a token.
var ErrNotFound = errors.New("catalog entry not found")

// Entry is the descriptive metadata attached to one canonical token text.
// The catalog is advisory documentation: legality never consults it, and a
// partial catalog is normal.
type Entry struct {
	Label    string `json:"label" yaml:"label" mapstructure:"label"`
	Category string `json:"category" yaml:"category" mapstructure:"category"`
}

// Catalog is a read-only lookup from canonical token text to metadata.
// Safe for concurrent readers after construction.
type Catalog struct {
	entries map[string]Entry
}

// New builds a catalog from a prepared map. The map is copied; later caller
// mutations do not leak in.
func New(entries map[string]Entry) *Catalog {
	copied := make(map[string]Entry, len(entries))
	for text, e := range entries {
		copied[text] = e
	}
	return &Catalog{entries: copied}
}

// Lookup returns the entry for a canonical token text.
func (c *Catalog) Lookup(text string) (Entry, bool) {
	e, ok := c.entries[text]
	return e, ok
}

// Get returns the entry or ErrNotFound.
func (c *Catalog) Get(text string) (Entry, error) {
	e, ok := c.entries[text]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, text)
	}
	return e, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Tokens returns all catalogued token texts in sorted order.
func (c *Catalog) Tokens() []string {
	tokens := make([]string, 0, len(c.entries))
	for text := range c.entries {
		tokens = append(tokens, text)
	}
	sort.Strings(tokens)
	return tokens
}
