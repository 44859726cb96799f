package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/config"
	catalogrepo "github.com/kailas-cloud/catalogai/internal/repository/catalog"
)

func newSeedCmd(opts *globalOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog into the configured redis or sql catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Catalog.Driver == config.CatalogMemory {
				return fmt.Errorf("catalog.driver is %q: the memory catalog loads %s at startup",
					config.CatalogMemory, a.cfg.Catalog.SeedPath)
			}
			if path == "" {
				path = a.cfg.Catalog.SeedPath
			}
			if path == "" {
				return fmt.Errorf("no seed file: pass --file or set catalog.seed_path")
			}

			items, err := catalogrepo.LoadSeed(path)
			if err != nil {
				return err
			}
			if err := a.catalog.Upsert(cmd.Context(), items); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}

			a.logger.Info("Catalog seeded", zap.String("file", path), zap.Int("items", len(items)))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d items into the %s catalog\n", len(items), a.cfg.Catalog.Driver)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "seed YAML (defaults to catalog.seed_path)")
	return cmd
}
