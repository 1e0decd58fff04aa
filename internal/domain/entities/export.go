package entities

import "time"

// ExportOptions controls where an export is written
type ExportOptions struct {
	// Path is the parent directory; relative paths resolve against the
	// working directory
	Path string

	// FolderName is the destination folder inside Path; empty uses the
	// presentation title
	FolderName string

	// Force replaces an existing destination
	Force bool
}

// ExportResult describes a finished export
type ExportResult struct {
	Destination string        `json:"destination"`
	IndexPath   string        `json:"index_path"`
	Slides      int           `json:"slides"`
	Bytes       int           `json:"bytes"`
	Replaced    bool          `json:"replaced"`
	Duration    time.Duration `json:"duration"`
}
