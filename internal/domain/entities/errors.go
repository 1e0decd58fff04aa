package entities

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors shared by the domain and its adapters
var (
	// ErrInvalidNavItem is returned when a navbar or footer holds something
	// other than a Link or a SocialLink
	ErrInvalidNavItem = errors.New("navigation items must be a Link or a SocialLink")

	// ErrUnsupportedContent is returned for slide content of an unknown shape
	ErrUnsupportedContent = errors.New("unsupported slide content")

	// ErrUnknownSocialKind is returned when parsing an unknown social network name
	ErrUnknownSocialKind = errors.New("unknown social link kind")

	// ErrEmptyTitle is returned when a presentation has no title
	ErrEmptyTitle = errors.New("presentation title is required")

	// ErrDestinationExists is returned by export when the destination folder
	// is already present and force was not requested
	ErrDestinationExists = fmt.Errorf("destination already exists: %w", fs.ErrExist)
)

// ExportErrorType categorizes export failures
type ExportErrorType string

const (
	ErrorTypeValidation ExportErrorType = "validation"
	ErrorTypeRenderer   ExportErrorType = "renderer"
	ErrorTypeTemplate   ExportErrorType = "template"
	ErrorTypeFilesystem ExportErrorType = "filesystem"
	ErrorTypePermission ExportErrorType = "permission"
	ErrorTypeNetwork    ExportErrorType = "network"
)

// ExportError provides detailed error information with categorization
type ExportError struct {
	Type    ExportErrorType `json:"type"`
	Message string          `json:"message"`
	Details string          `json:"details,omitempty"`
	Code    string          `json:"code,omitempty"`
	Cause   error           `json:"-"`
}

func (e *ExportError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// ErrorTypeOf returns the category of err, or "" if err is not an ExportError
func ErrorTypeOf(err error) ExportErrorType {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Type
	}
	return ""
}
