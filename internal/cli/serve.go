package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout over an HTTP API",
		Long: `Serve exposes the layout as a JSON API. The layout, tiles, and the
operation log are readable; tiles can be created, moved, resized,
updated, and deleted. Mutations autosave through the configured sink.`,
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

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(store),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Info("listening", "addr", addr)

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}

			saver.Close()
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return saver.Flush(flushCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8420", "listen address")
	return cmd
}

// api is the HTTP handler set over one store.
type api struct {
	store *grid.Store
}

func newRouter(store *grid.Store) http.Handler {
	a := &api{store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.health)
	r.Get("/layout", a.getLayout)
	r.Put("/layout", a.putLayout)
	r.Get("/export", a.export)
	r.Get("/operations", a.operations)

	r.Route("/tiles", func(r chi.Router) {
		r.Post("/", a.createTile)
		r.Patch("/{id}", a.patchTile)
		r.Delete("/{id}", a.deleteTile)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tiles":  a.store.TileCount(),
	})
}

func (a *api) getLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

// putLayout replaces the whole layout. The incoming document is validated
// before the swap, so a malformed body leaves the current layout untouched.
func (a *api) putLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := layoutio.Read(r.Body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := a.store.ReplaceLayout(layout); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, a.store.Snapshot())
}

func (a *api) export(w http.ResponseWriter, r *http.Request) {
	switch format := r.URL.Query().Get("format"); format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		layoutio.WriteSVG(w, a.store.Snapshot(), a.store.Config())
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		if err := layoutio.Export(w, a.store.Snapshot()); err != nil {
			writeError(w, http.StatusInternalServerError, err)
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown export format %q", format))
	}
}

func (a *api) operations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Operations())
}

type createTileRequest struct {
	Title     string           `json:"title"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	MinWidth  int              `json:"minWidth"`
	MinHeight int              `json:"minHeight"`
	MaxWidth  int              `json:"maxWidth"`
	MaxHeight int              `json:"maxHeight"`
	Content   *content.Content `json:"content"`
}

func (a *api) createTile(w http.ResponseWriter, r *http.Request) {
	var req createTileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Content != nil {
		if err := req.Content.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}
	tile := a.store.CreateTile(grid.TileSpec{
		Title:     req.Title,
		Width:     req.Width,
		Height:    req.Height,
		MinWidth:  req.MinWidth,
		MinHeight: req.MinHeight,
		MaxWidth:  req.MaxWidth,
		MaxHeight: req.MaxHeight,
		Content:   req.Content,
	})
	writeJSON(w, http.StatusCreated, tile)
}

// patchTileRequest is a partial tile edit. Position and size changes go
// through the collision rules; nil fields are left unchanged.
type patchTileRequest struct {
	Title   *string          `json:"title"`
	X       *int             `json:"x"`
	Y       *int             `json:"y"`
	Width   *int             `json:"width"`
	Height  *int             `json:"height"`
	Content *content.Content `json:"content"`
}

func (a *api) patchTile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tile, ok := a.store.Tile(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no tile %q", id))
		return
	}

	var req patchTileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Content != nil {
		if err := req.Content.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	if req.X != nil || req.Y != nil {
		x, y := tile.X, tile.Y
		if req.X != nil {
			x = *req.X
		}
		if req.Y != nil {
			y = *req.Y
		}
		if !a.store.MoveTile(id, x, y) {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Errorf("position (%d, %d) out of bounds or occupied", x, y))
			return
		}
	}

	if req.Width != nil || req.Height != nil {
		width, height := tile.Width, tile.Height
		if req.Width != nil {
			width = *req.Width
		}
		if req.Height != nil {
			height = *req.Height
		}
		if !a.store.ResizeTile(id, width, height) {
			writeError(w, http.StatusUnprocessableEntity,
				fmt.Errorf("size %dx%d collides with another tile", width, height))
			return
		}
	}

	if req.Title != nil || req.Content != nil {
		a.store.UpdateTile(id, grid.TileUpdate{Title: req.Title, Content: req.Content})
	}

	updated, _ := a.store.Tile(id)
	writeJSON(w, http.StatusOK, updated)
}

func (a *api) deleteTile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.store.DeleteTile(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("no tile %q", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
