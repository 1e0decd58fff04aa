package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/ezprez/internal/adapters/secondary/config"
	"github.com/fredcamaral/ezprez/internal/domain/services"
)

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default global configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewTOMLLoader()
			path := loader.GetGlobalPath()

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite: %w", path, fs.ErrExist)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("checking %s: %w", path, err)
			}

			svc := services.NewConfigService(loader, config.NewConfigMerger())
			if err := svc.CreateGlobalConfig(cmd.Context()); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Wrote default configuration to %s", styleTitle.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}
