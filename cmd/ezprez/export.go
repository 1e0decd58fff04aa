package main

import (
	"github.com/spf13/cobra"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

func newExportCmd() *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "export <deck>",
		Short: "Export a deck to a static WebSlides folder",
		Long: `Export renders the deck and writes <out>/<folder>/ containing the
WebSlides template and the generated index.html. The folder name defaults to
the presentation title. An existing folder is only replaced with --force.

Example:
  ezprez export talk.yaml
  ezprez export talk.toml --out ~/Desktop --name my-talk --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deckPath := args[0]

			cfg, err := loadConfig(cmd, deckPath)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			result, err := a.exportDeck(cmd.Context(), deckPath, entities.ExportOptions{
				Path:       cfg.Export.GetOutputDir(),
				FolderName: folder,
				Force:      cfg.Export.Force,
			})
			if err != nil {
				return err
			}

			printExportSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Directory to create the presentation folder in (overrides config)")
	cmd.Flags().StringVarP(&folder, "name", "n", "", "Presentation folder name (default: the title)")
	cmd.Flags().BoolP("force", "f", false, "Replace the presentation folder if it exists")
	addTemplateFlags(cmd)

	return cmd
}

// addTemplateFlags registers the flags shared by commands that export
func addTemplateFlags(cmd *cobra.Command) {
	cmd.Flags().String("template-dir", "", "Absolute WebSlides install directory (overrides config)")
	cmd.Flags().Bool("allow-escalation", false, "Use sudo to create the install directory if it is not writable")
	cmd.Flags().Bool("sanitize", false, "Sanitize HTML produced from markdown content")
}
