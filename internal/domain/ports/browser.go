package ports

import "context"

// BrowserLauncher opens preview URLs for the user
type BrowserLauncher interface {
	// Open opens url in the platform's default browser without waiting for it
	Open(ctx context.Context, url string) error
}
