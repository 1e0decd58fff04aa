package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	httpserver "github.com/fredcamaral/ezprez/internal/adapters/primary/http"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/browser"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// previewFolder is the folder name used inside the scratch directory
const previewFolder = "preview"

// reloadNotifier pushes rebuild outcomes to connected browsers
type reloadNotifier interface {
	BroadcastFileChange(path, change string) error
	BroadcastReload(source string) error
	BroadcastError(err error) error
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <deck>",
		Short: "Preview a deck with live reload",
		Long: `Serve exports the deck to a scratch directory, serves it over HTTP and
re-exports whenever the deck file changes. Open tabs reload automatically.

Example:
  ezprez serve talk.yaml
  ezprez serve talk.yaml --port 8080 --no-browser`,
		Args: cobra.ExactArgs(1),
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "Host to bind to (overrides config)")
	cmd.Flags().IntP("port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().Bool("no-browser", false, "Don't open the browser automatically")
	addTemplateFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckPath := args[0]

	cfg, err := loadConfig(cmd, deckPath)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	scratch, err := os.MkdirTemp("", "ezprez-serve-*")
	if err != nil {
		return fmt.Errorf("creating preview directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	rebuild := func(ctx context.Context) error {
		_, err := a.exportDeck(ctx, deckPath, entities.ExportOptions{
			Path:       scratch,
			FolderName: previewFolder,
			Force:      true,
		})
		return err
	}

	if err := rebuild(ctx); err != nil {
		return err
	}

	server := httpserver.NewServer(filepath.Join(scratch, previewFolder), cfg.Server, a.logger)
	if err := server.Start(ctx); err != nil {
		return err
	}
	defer func() {
		// ctx is already canceled here
		if err := server.Stop(context.Background()); err != nil {
			a.logger.Warn("Error during shutdown: %v", err)
		}
	}()

	printServeBanner(cmd.OutOrStdout(), server.URL(), deckPath)

	if cfg.Browser.AutoOpen {
		if err := browser.NewLauncher().Open(ctx, server.URL()); err != nil {
			a.logger.Warn("Failed to open browser: %v", err)
		}
	}

	w := watcher.NewPollingWatcher(cfg.Watcher.GetInterval(), cfg.Watcher.GetDebounce(), a.logger)
	events, err := w.Watch(ctx, deckPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", deckPath, err)
	}
	defer func() { _ = w.Stop() }()

	watchAndReload(ctx, events, rebuild, server, a.logger)

	a.logger.Info("Shutting down preview server")
	return nil
}

// watchAndReload rebuilds on every change event and notifies clients until
// ctx is done or events closes. Rebuild failures keep the last good export.
func watchAndReload(
	ctx context.Context,
	events <-chan ports.FileChangeEvent,
	rebuild func(context.Context) error,
	notifier reloadNotifier,
	logger ports.Logger,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			if event.Type == ports.Deleted {
				logger.Warn("%s was deleted, waiting for it to come back", event.Path)
				continue
			}

			logger.Info("%s %s, rebuilding", event.Path, event.Type)
			if err := notifier.BroadcastFileChange(event.Path, event.Type.String()); err != nil {
				logger.Debug("notify: %v", err)
			}

			if err := rebuild(ctx); err != nil {
				logger.Error("Rebuild failed: %v", err)
				if nerr := notifier.BroadcastError(err); nerr != nil {
					logger.Debug("notify: %v", nerr)
				}
				continue
			}

			if err := notifier.BroadcastReload(event.Path); err != nil {
				logger.Debug("notify: %v", err)
				continue
			}
			logger.Success("Reloaded %s", event.Path)
		}
	}
}
