package ports

import (
	"context"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// DocumentRenderer turns a presentation into a complete WebSlides HTML document
type DocumentRenderer interface {
	// RenderPresentation returns the full document. On error no bytes are returned.
	RenderPresentation(ctx context.Context, presentation *entities.Presentation) ([]byte, error)
}

// MarkdownConverter renders markdown source to an HTML fragment
type MarkdownConverter interface {
	Convert(source []byte) (string, error)

	// Block wraps markdown source as a slide component
	Block(source string) entities.Component
}
