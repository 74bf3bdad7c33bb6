package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cataloggen",
		Short: "Static HTML catalog generator backed by SeaTable",
		Long: `Cataloggen pulls artwork rows from a SeaTable view, downloads the referenced
images into a shared content-addressed directory, and renders a static HTML
catalog page ready to commit to version control.

Connection settings (server URL, API token, table name) come from environment
variables, a .env file, or an optional YAML settings file. Each catalog is
described by its own JSON config file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
