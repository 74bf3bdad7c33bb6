package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/woodruff-gallery/cataloggen/internal/catalog"
	"github.com/woodruff-gallery/cataloggen/internal/config"
	"github.com/woodruff-gallery/cataloggen/internal/export"
	"github.com/woodruff-gallery/cataloggen/internal/seatable"
)

func newExportCmd() *cobra.Command {
	var settingsPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <config_file.json>",
		Short: "Snapshot a view's rows to a Parquet file",
		Long: `Export fetches the same rows the generate command would render and writes
them to a Parquet file instead, for offline inspection or archival. No
images are downloaded and no HTML is written.`,
		Example: `  # Archive the available-works view
  cataloggen export config_available_works.json --output available_works.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := config.LoadCatalog(args[0])
			if err != nil {
				return err
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}

			client := seatable.NewClient(settings.ServerURL, settings.APIToken)
			_, imageColumn, rows, err := catalog.FetchRows(cmd.Context(), client, settings.TableName, cat.ViewName)
			if err != nil {
				return err
			}

			records := export.Flatten(rows, imageColumn.Name)
			if err := export.Write(outputPath, records); err != nil {
				return err
			}

			slog.Info("View exported", "view", cat.ViewName, "rows", len(records), "output", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Path to YAML connection settings file (env vars override)")
	cmd.Flags().StringVar(&outputPath, "output", "view_rows.parquet", "Output Parquet file path")

	return cmd
}
