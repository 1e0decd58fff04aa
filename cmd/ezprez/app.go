package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fredcamaral/ezprez/internal/adapters/secondary/assets"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/config"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/deck"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/logging"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/ezprez/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
	"github.com/fredcamaral/ezprez/internal/domain/services"
)

// app holds the wired components shared by export and serve
type app struct {
	config    *entities.Config
	logger    ports.Logger
	decks     *deck.Loader
	templates *assets.Store
	exporter  *services.ExportService
}

// changedFlags collects the flags the user set explicitly, keyed by name,
// so unset flags never override config files
func changedFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "bool":
			v, err := cmd.Flags().GetBool(f.Name)
			if err == nil {
				flags[f.Name] = v
			}
		case "int":
			v, err := cmd.Flags().GetInt(f.Name)
			if err == nil {
				flags[f.Name] = v
			}
		default:
			flags[f.Name] = f.Value.String()
		}
	})
	return flags
}

// loadConfig resolves the configuration for a deck and applies the log
// level to the context logger
func loadConfig(cmd *cobra.Command, deckPath string) (*entities.Config, error) {
	ctx := cmd.Context()
	svc := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())

	cfg, err := svc.LoadConfig(ctx, filepath.Dir(deckPath), changedFlags(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if l, ok := logging.FromContext(ctx).(*logging.Logger); ok {
		l.SetLevel(cfg.Logging.GetLevel())
	}
	return cfg, nil
}

// newApp wires the renderer, markdown converter, template store and export
// service from cfg
func newApp(ctx context.Context, cfg *entities.Config) (*app, error) {
	logger := logging.FromContext(ctx)
	fsys := ports.NewRealFileSystem()
	clock := ports.NewSystemClock()

	docRenderer, err := renderer.NewDocumentRenderer(clock)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	var mdOpts []markdown.Option
	if cfg.Render.SanitizeMarkdown {
		mdOpts = append(mdOpts, markdown.WithSanitizer())
	}

	client := assets.NewDownloadClient(cfg.Template, "ezprez/"+Version)

	var escalator ports.Escalator
	if cfg.Template.AllowEscalation {
		escalator = assets.NewSudoEscalator()
	}

	templates := assets.NewStore(cfg.Template, client, fsys, escalator, logger)

	return &app{
		config:    cfg,
		logger:    logger,
		decks:     deck.NewLoader(fsys, markdown.NewConverter(mdOpts...)),
		templates: templates,
		exporter:  services.NewExportService(docRenderer, templates, fsys, clock, logger),
	}, nil
}

// exportDeck loads deckPath and exports it with opts
func (a *app) exportDeck(ctx context.Context, deckPath string, opts entities.ExportOptions) (*entities.ExportResult, error) {
	p, err := a.decks.Load(ctx, deckPath)
	if err != nil {
		return nil, err
	}
	return a.exporter.Export(ctx, p, opts)
}
