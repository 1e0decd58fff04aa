package ports

import (
	"context"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// Exporter writes a presentation and its template assets to disk
type Exporter interface {
	Export(ctx context.Context, presentation *entities.Presentation, opts entities.ExportOptions) (*entities.ExportResult, error)
}
