package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/buildinfo"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose bool
	config  string
	sink    string // backend override: memory|file|redis|mongo
}

// Execute runs the tiler CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The root command wires the persistent flags (--verbose, --config,
// --sink), attaches a logger to the context, and registers all
// subcommands.
func Execute(ctx context.Context) error {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "tiler",
		Short:        "Tiler is a tile grid dashboard for your terminal",
		Long:         `Tiler lets you place, move, and resize content tiles on a responsive column grid. Layouts persist automatically and round-trip through JSON export/import.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default ~/.config/tiler/config.toml)")
	root.PersistentFlags().StringVar(&flags.sink, "sink", "", "persistence backend: memory|file|redis|mongo (overrides config)")

	root.AddCommand(newDashboardCmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newWatchCmd(flags))

	return root.ExecuteContext(ctx)
}
