package ports

import (
	"context"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// DeckLoader reads a declarative deck file into a presentation
type DeckLoader interface {
	Load(ctx context.Context, path string) (*entities.Presentation, error)

	// Supports reports whether the loader understands the file's format
	Supports(path string) bool
}
