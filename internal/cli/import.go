package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a layout from a JSON file",
		Long: `Import reads a layout file, validates it, and replaces the persisted
layout. Both the raw layout document and the versioned export envelope
are accepted. An invalid file leaves the stored layout untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

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

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			layout, err := layoutio.Import(f)
			if err != nil {
				return err
			}
			if err := store.ReplaceLayout(layout); err != nil {
				return err
			}

			saver.Close()
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := saver.Flush(flushCtx); err != nil {
				return err
			}

			logger.Info("layout imported", "name", layout.Name, "tiles", len(layout.Tiles))
			return nil
		},
	}
	return cmd
}
