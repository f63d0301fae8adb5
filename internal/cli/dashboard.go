package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive tile dashboard",
		Long: `Dashboard opens the full-screen tile grid. Tiles are dragged with the
mouse by grabbing their body, and resized by grabbing the right edge,
bottom edge, or bottom-right corner. The keyboard moves the selected
tile with the arrow keys and resizes it with shift+arrows.`,
		Args: cobra.NoArgs,
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

			p := tea.NewProgram(newModel(store, cfg, newRegistry(cfg)),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			_, runErr := p.Run()

			saver.Close()
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := saver.Flush(flushCtx); err != nil {
				logger.Warn("final save failed", "err", err)
			}
			return runErr
		},
	}
}
