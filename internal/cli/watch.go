package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/persist"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Watch a layout file and mirror it into the store",
		Long: `Watch monitors a layout JSON file and re-imports it on every change,
persisting the result through the configured sink. Edits that fail
validation are logged and skipped; the stored layout keeps its last
good state. Runs until interrupted.`,
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

			w, err := persist.WatchFile(store, args[0], cfg.Dashboard.Debounce())
			if err != nil {
				return err
			}
			w.OnReload = func(l *grid.Layout) {
				logger.Info("layout reloaded", "name", l.Name, "tiles", len(l.Tiles))
			}
			w.OnError = func(err error) {
				logger.Warn("reload skipped", "err", err)
			}

			logger.Info("watching", "file", args[0])
			<-ctx.Done()

			_ = w.Close()
			saver.Close()
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return saver.Flush(flushCtx)
		},
	}
	return cmd
}
