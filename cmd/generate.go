package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/woodruff-gallery/cataloggen/internal/catalog"
	"github.com/woodruff-gallery/cataloggen/internal/config"
)

func newGenerateCmd() *cobra.Command {
	var settingsPath string
	var reportPath string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "generate <config_file.json>",
		Short: "Generate a static HTML catalog from a SeaTable view",
		Long: `Generate fetches every row of the configured view, downloads the referenced
images into the shared content-addressed images directory, and writes the
catalog HTML page. The output file is fully regenerated on every run; the
images directory is additive and shared across all catalogs.`,
		Example: `  # Generate the available-works catalog
  cataloggen generate config_available_works.json

  # Generate with a YAML settings file and parallel downloads
  cataloggen generate config_sold_works.json --settings settings.yaml --concurrency 4

  # Keep a YAML summary of the run
  cataloggen generate config_available_works.json --report last_run.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Catalog config is validated before any connection setup, so a
			// bad config never triggers a network call.
			cat, err := config.LoadCatalog(args[0])
			if err != nil {
				return err
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}

			gen := catalog.New(settings, cat)
			gen.Concurrency = concurrency

			report, err := gen.Run(cmd.Context())
			if err != nil {
				return err
			}

			if reportPath != "" {
				if err := report.Save(reportPath); err != nil {
					return err
				}
				slog.Info("Run report written", "path", reportPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Path to YAML connection settings file (env vars override)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML run report to this path")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Parallel image downloads")

	return cmd
}
