// Package loamcat loads the token catalog from a loam markdown repository.
// Each document carries the canonical token text and its metadata in
// frontmatter; the document body is free-form commentary and is ignored.
package loamcat

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/loam"

	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/token"
)

// EntryMetadata is the frontmatter shape of one catalog document.
type EntryMetadata struct {
	Token    string `mapstructure:"token" json:"token"`
	Label    string `mapstructure:"label" json:"label"`
	Category string `mapstructure:"category" json:"category"`
}

// Source implements ports.CatalogSource on a loam repository.
type Source struct {
	repo *loam.TypedRepository[EntryMetadata]
}

// New creates a source from an existing typed repository.
func New(repo *loam.TypedRepository[EntryMetadata]) *Source {
	return &Source{repo: repo}
}

// Open initializes a read-only loam repository at path. Strict mode keeps
// frontmatter numeric types consistent across loam's adapters.
func Open(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[EntryMetadata](repo)), nil
}

// Catalog lists every document and assembles the catalog. Documents whose
// token text does not parse are rejected; a document without a token field is
// skipped, since repositories often mix commentary files in.
func (s *Source) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	entries := make(map[string]catalog.Entry, len(docs))
	for _, doc := range docs {
		meta := doc.Data
		if meta.Token == "" {
			continue
		}
		if _, err := token.Parse(meta.Token); err != nil {
			return nil, fmt.Errorf("catalog document %s: %w", doc.ID, err)
		}
		entries[meta.Token] = catalog.Entry{
			Label:    meta.Label,
			Category: meta.Category,
		}
	}
	return catalog.New(entries), nil
}
