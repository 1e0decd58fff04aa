package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// IndexFile is the document the export writes into the template tree
const IndexFile = "index.html"

// ExportService materializes a presentation: the WebSlides template tree
// plus a generated index.html
type ExportService struct {
	renderer  ports.DocumentRenderer
	templates ports.TemplateStore
	fs        ports.FileSystem
	clock     ports.Clock
	logger    ports.Logger
}

// NewExportService creates a new export service
func NewExportService(
	renderer ports.DocumentRenderer,
	templates ports.TemplateStore,
	fs ports.FileSystem,
	clock ports.Clock,
	logger ports.Logger,
) *ExportService {
	if clock == nil {
		clock = ports.NewSystemClock()
	}
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &ExportService{
		renderer:  renderer,
		templates: templates,
		fs:        fs,
		clock:     clock,
		logger:    logger,
	}
}

// Destination returns the directory an export with opts would write to
func Destination(p *entities.Presentation, opts entities.ExportOptions) (string, error) {
	base := opts.Path
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving export path: %w", err)
	}

	folder := opts.FolderName
	if folder == "" {
		folder = p.FolderName()
	}
	if folder == "." || folder == ".." || filepath.Base(folder) != folder {
		return "", &entities.ExportError{
			Type:    entities.ErrorTypeValidation,
			Message: "folder name must be a single path element",
			Details: folder,
		}
	}

	return filepath.Join(abs, folder), nil
}

// Export renders the presentation, copies the template tree into the
// destination folder and overwrites its index.html. Nothing is written when
// rendering fails or when the destination exists and opts.Force is false.
func (s *ExportService) Export(ctx context.Context, p *entities.Presentation, opts entities.ExportOptions) (*entities.ExportResult, error) {
	start := s.clock.Now()

	if p == nil {
		return nil, &entities.ExportError{Type: entities.ErrorTypeValidation, Message: "presentation is nil"}
	}
	if err := p.Validate(); err != nil {
		return nil, &entities.ExportError{Type: entities.ErrorTypeValidation, Message: "invalid presentation", Cause: err}
	}

	destination, err := Destination(p, opts)
	if err != nil {
		return nil, err
	}

	document, err := s.renderer.RenderPresentation(ctx, p)
	if err != nil {
		return nil, &entities.ExportError{Type: entities.ErrorTypeRenderer, Message: "rendering presentation", Cause: err}
	}

	exists := s.fs.Exists(destination)
	if exists && !opts.Force {
		return nil, &entities.ExportError{
			Type:    entities.ErrorTypeFilesystem,
			Message: fmt.Sprintf("the path %s exists, to replace it export again with force enabled", destination),
			Code:    "destination_exists",
			Cause:   entities.ErrDestinationExists,
		}
	}

	// the template must be ready before a forced export removes anything
	templateDir, err := s.templates.Ensure(ctx)
	if err != nil {
		if entities.ErrorTypeOf(err) != "" {
			return nil, err
		}
		return nil, &entities.ExportError{Type: entities.ErrorTypeTemplate, Message: "preparing template", Cause: err}
	}

	if exists {
		s.logger.Debug("Removing existing export at %s", destination)
		if err := s.fs.RemoveAll(destination); err != nil {
			return nil, classifyFSError("removing existing destination", destination, err)
		}
	}

	s.logger.Debug("Copying template %s to %s", templateDir, destination)
	if err := s.fs.CopyTree(templateDir, destination); err != nil {
		return nil, classifyFSError("copying template", destination, err)
	}

	indexPath := filepath.Join(destination, IndexFile)
	if err := s.fs.WriteFile(indexPath, document, 0o644); err != nil {
		return nil, classifyFSError("writing index", indexPath, err)
	}

	result := &entities.ExportResult{
		Destination: destination,
		IndexPath:   indexPath,
		Slides:      p.SlideCount(),
		Bytes:       len(document),
		Replaced:    exists,
		Duration:    s.clock.Since(start),
	}

	s.logger.Info("Exported %q (%d slides) to %s", p.Title, result.Slides, destination)
	return result, nil
}

func classifyFSError(message, path string, err error) error {
	errType := entities.ErrorTypeFilesystem
	if errors.Is(err, fs.ErrPermission) {
		errType = entities.ErrorTypePermission
	}
	return &entities.ExportError{Type: errType, Message: message, Details: path, Cause: err}
}

// Ensure ExportService implements ports.Exporter
var _ ports.Exporter = (*ExportService)(nil)
