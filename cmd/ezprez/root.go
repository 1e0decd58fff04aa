package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/ezprez/internal/adapters/secondary/logging"
	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// newRootCmd builds the command tree. Output goes to out, logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "ezprez",
		Short: "Build WebSlides presentations from YAML or TOML decks",
		Long: `ezprez turns a deck file describing slides, navigation and
components into a static WebSlides site: a folder holding the WebSlides
template and a generated index.html you can open or host anywhere.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := entities.LogLevelInfo
			if verbose {
				level = entities.LogLevelDebug
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(errOut, level)))
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().StringP("config", "c", "", "Config file (default: ezprez.toml next to the deck)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")

	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitConfigCmd())

	return root
}
