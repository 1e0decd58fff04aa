package ports

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts the file operations used by export and the template store
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Exists(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error

	// CopyTree copies the directory src into dst, creating dst. Existing
	// files in dst are overwritten.
	CopyTree(src, dst string) error
}

// RealFileSystem implements FileSystem using actual OS operations
type RealFileSystem struct{}

// NewRealFileSystem creates a new real file system implementation
func NewRealFileSystem() FileSystem {
	return &RealFileSystem{}
}

// Stat returns file information
func (fsys *RealFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Exists checks if a file or directory exists
func (fsys *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MkdirAll creates a directory and all parent directories
func (fsys *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes a directory and all its contents
func (fsys *RealFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// ReadFile reads the entire file content
func (fsys *RealFileSystem) ReadFile(filename string) ([]byte, error) {
	// #nosec G304 - paths come from the CLI user or the template store
	return os.ReadFile(filename)
}

// WriteFile writes data to a file
func (fsys *RealFileSystem) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}

// Rename moves oldpath to newpath
func (fsys *RealFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// CopyTree copies the directory src into dst
func (fsys *RealFileSystem) CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("copy tree: %s is not a directory", src)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			// symlinks and devices are not part of the template tree
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	// #nosec G304 - src is inside a tree the caller chose to copy
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
