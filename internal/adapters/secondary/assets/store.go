package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

const (
	// DefaultArchiveURL is the WebSlides source archive
	DefaultArchiveURL = entities.DefaultTemplateArchiveURL

	archiveName = "webslides.zip"
	extractName = "webslides"
	markerFile  = "index.html"

	// pendingMarker holds the marker during the install copy so an
	// interrupted install never looks complete
	pendingMarker = markerFile + ".partial"
)

// maxArchiveSize bounds the downloaded archive
var maxArchiveSize int64 = 200 << 20

// DefaultInstallDir returns the "webslides" directory next to the running
// executable, falling back to the user cache directory
func DefaultInstallDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Join(filepath.Dir(exe), extractName)
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "ezprez", extractName)
	}
	return filepath.Join(os.TempDir(), "ezprez", extractName)
}

// DefaultDownloadDir returns the scratch directory used for downloads
func DefaultDownloadDir() string {
	return filepath.Join(os.TempDir(), "ezprez-download")
}

// NewDownloadClient returns the client used to fetch the template archive.
// Failed downloads are fatal, so it never retries.
func NewDownloadClient(cfg entities.TemplateConfig, userAgent string) ports.HTTPClient {
	return ports.NewRealHTTPClient(ports.HTTPClientConfig{
		Timeout:    cfg.GetDownloadTimeout(),
		MaxRetries: 0,
		UserAgent:  userAgent,
	})
}

// Store implements ports.TemplateStore. It installs the template tree once
// and reuses it for every export.
type Store struct {
	archiveURL  string
	installDir  string
	downloadDir string

	client    ports.HTTPClient
	fs        ports.FileSystem
	escalator ports.Escalator
	logger    ports.Logger
}

// NewStore creates a template store from configuration. A nil escalator
// makes permission errors during install fatal.
func NewStore(cfg entities.TemplateConfig, client ports.HTTPClient, fsys ports.FileSystem, escalator ports.Escalator, logger ports.Logger) *Store {
	s := &Store{
		archiveURL:  cfg.ArchiveURL,
		installDir:  cfg.InstallDir,
		downloadDir: cfg.DownloadDir,
		client:      client,
		fs:          fsys,
		escalator:   escalator,
		logger:      logger,
	}
	if s.archiveURL == "" {
		s.archiveURL = DefaultArchiveURL
	}
	if s.installDir == "" {
		s.installDir = DefaultInstallDir()
	}
	if s.downloadDir == "" {
		s.downloadDir = DefaultDownloadDir()
	}
	if s.logger == nil {
		s.logger = ports.NopLogger{}
	}
	return s
}

// InstallDir returns the template install directory
func (s *Store) InstallDir() string {
	return s.installDir
}

// Installed reports whether a usable template tree is present
func (s *Store) Installed() bool {
	return s.fs.Exists(filepath.Join(s.installDir, markerFile))
}

// Ensure returns the install directory, downloading and installing the
// template first if needed
func (s *Store) Ensure(ctx context.Context) (string, error) {
	if s.Installed() {
		return s.installDir, nil
	}

	s.logger.Info("WebSlides template not found in %s, downloading %s", s.installDir, s.archiveURL)

	if err := s.fs.MkdirAll(s.downloadDir, 0o750); err != nil {
		return "", &entities.ExportError{Type: entities.ErrorTypeFilesystem, Message: "creating download directory", Details: s.downloadDir, Cause: err}
	}

	archivePath := filepath.Join(s.downloadDir, archiveName)
	if err := s.download(ctx, archivePath); err != nil {
		return "", err
	}

	extracted := filepath.Join(s.downloadDir, extractName)
	if err := s.fs.RemoveAll(extracted); err != nil {
		return "", &entities.ExportError{Type: entities.ErrorTypeFilesystem, Message: "clearing extraction directory", Details: extracted, Cause: err}
	}
	if err := ExtractZip(archivePath, extracted); err != nil {
		return "", &entities.ExportError{Type: entities.ErrorTypeTemplate, Message: "extracting template archive", Details: archivePath, Cause: err}
	}
	if !s.fs.Exists(filepath.Join(extracted, markerFile)) {
		return "", &entities.ExportError{Type: entities.ErrorTypeTemplate, Message: "template archive has no " + markerFile, Details: s.archiveURL}
	}

	if err := s.fs.Rename(filepath.Join(extracted, markerFile), filepath.Join(extracted, pendingMarker)); err != nil {
		return "", &entities.ExportError{Type: entities.ErrorTypeFilesystem, Message: "staging template", Details: extracted, Cause: err}
	}

	if err := s.install(ctx, extracted); err != nil {
		return "", err
	}

	s.logger.Success("Installed WebSlides template to %s", s.installDir)
	return s.installDir, nil
}

func (s *Store) download(ctx context.Context, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.archiveURL, nil)
	if err != nil {
		return &entities.ExportError{Type: entities.ErrorTypeNetwork, Message: "creating download request", Cause: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &entities.ExportError{Type: entities.ErrorTypeNetwork, Message: "downloading template", Details: s.archiveURL, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &entities.ExportError{
			Type:    entities.ErrorTypeNetwork,
			Message: fmt.Sprintf("download failed: %d", resp.StatusCode),
			Details: s.archiveURL,
			Code:    fmt.Sprint(resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return &entities.ExportError{Type: entities.ErrorTypeNetwork, Message: "reading template archive", Cause: err}
	}
	if int64(len(data)) > maxArchiveSize {
		return &entities.ExportError{
			Type:    entities.ErrorTypeTemplate,
			Message: fmt.Sprintf("template archive is larger than %d bytes", maxArchiveSize),
			Details: s.archiveURL,
			Cause:   ErrArchiveTooLarge,
		}
	}

	if err := s.fs.WriteFile(dest, data, 0o640); err != nil {
		return &entities.ExportError{Type: entities.ErrorTypeFilesystem, Message: "saving template archive", Details: dest, Cause: err}
	}

	s.logger.Debug("Downloaded %d bytes to %s", len(data), dest)
	return nil
}

// install copies the extracted tree into the install directory. A
// permission error triggers one escalation and exactly one retry.
func (s *Store) install(ctx context.Context, extracted string) error {
	err := s.copyInto(extracted)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrPermission) {
		return &entities.ExportError{Type: entities.ErrorTypeFilesystem, Message: "installing template", Details: s.installDir, Cause: err}
	}

	if s.escalator == nil {
		return &entities.ExportError{
			Type:    entities.ErrorTypePermission,
			Message: "cannot write template install directory",
			Details: "enable template.allow_escalation or set template.install_dir to a writable path",
			Cause:   err,
		}
	}

	s.logger.Warn("No write access to %s, requesting elevated permissions", s.installDir)
	if escErr := s.escalator.Escalate(ctx, s.installDir); escErr != nil {
		return &entities.ExportError{Type: entities.ErrorTypePermission, Message: "escalating permissions", Details: s.installDir, Cause: escErr}
	}

	if err := s.copyInto(extracted); err != nil {
		return &entities.ExportError{Type: entities.ErrorTypePermission, Message: "installing template after escalation", Details: s.installDir, Cause: err}
	}
	return nil
}

// copyInto copies the staged tree and moves the marker into place last
func (s *Store) copyInto(extracted string) error {
	if err := s.fs.MkdirAll(s.installDir, 0o755); err != nil {
		return err
	}
	if err := s.fs.CopyTree(extracted, s.installDir); err != nil {
		return err
	}
	return s.fs.Rename(filepath.Join(s.installDir, pendingMarker), filepath.Join(s.installDir, markerFile))
}

// Ensure Store implements ports.TemplateStore
var _ ports.TemplateStore = (*Store)(nil)
