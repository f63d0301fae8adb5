package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored layout to JSON or SVG",
		Long: `Export writes the persisted layout to stdout or a file. The JSON form
is a versioned envelope that import accepts back; the SVG form is a
visual snapshot of the grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			s, err := openSink(ctx, flags, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			store, saver, err := openStore(ctx, flags, cfg, s)
			if err != nil {
				return err
			}
			defer saver.Close()

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				return layoutio.Export(out, store.Snapshot())
			case "svg":
				layoutio.WriteSVG(out, store.Snapshot(), store.Config())
				return nil
			default:
				return fmt.Errorf("unknown format %q (want json or svg)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json|svg")
	return cmd
}
