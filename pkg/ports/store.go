package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/domain"
)

// SessionStore persists generation sessions so a sequence can be stopped and
// resumed across process restarts.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}

// CatalogSource loads the token catalog from wherever it is kept.
type CatalogSource interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
}
