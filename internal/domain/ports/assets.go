package ports

import "context"

// TemplateStore guarantees a local copy of the WebSlides asset tree
type TemplateStore interface {
	// Ensure returns the directory holding the template tree, downloading
	// and installing it first when it is missing
	Ensure(ctx context.Context) (string, error)

	// InstallDir returns where the template tree is (or will be) installed
	InstallDir() string
}

// Escalator grants the current process write access to a directory it
// could not write to. It is tried at most once per install.
type Escalator interface {
	Escalate(ctx context.Context, dir string) error
}
