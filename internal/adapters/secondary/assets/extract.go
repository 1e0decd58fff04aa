package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrUnsafeArchivePath is returned for archive entries resolving outside
// the extraction directory
var ErrUnsafeArchivePath = errors.New("archive entry escapes destination")

// ErrArchiveTooLarge is returned when an archive or one of its entries
// exceeds the size limit
var ErrArchiveTooLarge = errors.New("archive exceeds size limit")

// maxEntrySize bounds a single extracted file
var maxEntrySize int64 = 100 << 20

// ExtractZip extracts the archive at src into dest. When every entry lives
// under one top-level directory (as in GitHub source archives) that
// directory is stripped.
func ExtractZip(src, dest string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer func() { _ = reader.Close() }()

	prefix := commonRoot(reader.File)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}

	for _, file := range reader.File {
		name := strings.TrimPrefix(file.Name, prefix)
		if name == "" {
			continue
		}

		target, err := safeJoin(dest, name)
		if err != nil {
			return err
		}

		if err := extractFile(file, target); err != nil {
			return fmt.Errorf("extracting %s: %w", file.Name, err)
		}
	}

	return nil
}

// commonRoot returns "<dir>/" when all entries share a single top-level
// directory, "" otherwise
func commonRoot(files []*zip.File) string {
	root := ""
	for _, file := range files {
		first, _, found := strings.Cut(file.Name, "/")
		if !found || first == "" || first == "." || first == ".." {
			return ""
		}
		if root == "" {
			root = first
		} else if first != root {
			return ""
		}
	}
	if root == "" {
		return ""
	}
	return root + "/"
}

func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeArchivePath, name)
	}

	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeArchivePath, name)
	}
	return target, nil
}

func extractFile(file *zip.File, target string) error {
	info := file.FileInfo()
	if info.IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if !info.Mode().IsRegular() {
		// symlinks are not needed by the template
		return nil
	}
	if file.UncompressedSize64 > uint64(maxEntrySize) {
		return fmt.Errorf("%w: %d bytes", ErrArchiveTooLarge, file.UncompressedSize64)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	reader, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	// #nosec G304 - target is checked by safeJoin
	writer, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	// the header size can lie, so the stream is bounded too
	n, err := io.Copy(writer, io.LimitReader(reader, maxEntrySize+1))
	if err != nil {
		_ = writer.Close()
		return err
	}
	if n > maxEntrySize {
		_ = writer.Close()
		return fmt.Errorf("%w: more than %d bytes", ErrArchiveTooLarge, maxEntrySize)
	}
	return writer.Close()
}
