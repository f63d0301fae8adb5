package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/persist"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/sink"
)

// openSink constructs the persistence backend selected by the --sink flag
// or, failing that, the config file.
func openSink(ctx context.Context, flags *rootFlags, cfg Config) (sink.Sink, error) {
	backend := flags.sink
	if backend == "" {
		backend = cfg.Sink.Backend
	}
	switch backend {
	case "", "memory":
		return sink.NewMemory(), nil
	case "file":
		return sink.NewFile(cfg.Sink.FileDir)
	case "redis":
		return sink.NewRedis(ctx, sink.RedisConfig{
			Addr:     cfg.Sink.RedisAddr,
			Password: cfg.Sink.RedisPassword,
			DB:       cfg.Sink.RedisDB,
		})
	case "mongo":
		return sink.NewMongo(ctx, sink.MongoConfig{
			URI:        cfg.Sink.MongoURI,
			Database:   cfg.Sink.MongoDatabase,
			Collection: cfg.Sink.MongoCollection,
		})
	default:
		return nil, fmt.Errorf("unknown sink backend %q", backend)
	}
}

// openStore loads the persisted layout from the sink (or starts a fresh
// one) and wires the store with an attached autosaver. The caller owns the
// returned saver and should Flush it on shutdown.
func openStore(ctx context.Context, flags *rootFlags, cfg Config, s sink.Sink) (*grid.Store, *persist.Saver, error) {
	logger := loggerFromContext(ctx)

	layout, found, err := persist.Load(ctx, s, cfg.Dashboard.Key)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		layout = grid.NewLayout(cfg.Dashboard.Name, cfg.Grid.Columns(grid.BreakpointDesktop))
		logger.Debug("no stored layout, starting fresh", "name", layout.Name)
	} else {
		logger.Debug("loaded layout", "name", layout.Name, "tiles", len(layout.Tiles))
	}

	store := grid.NewStore(layout, cfg.Grid)
	saver := persist.NewSaver(store, s, cfg.Dashboard.Key, cfg.Dashboard.Debounce())
	saver.OnError = func(err error) {
		logger.Warn("autosave failed; in-memory layout remains authoritative", "err", err)
	}
	saver.Attach()
	return store, saver, nil
}

// newRegistry builds the content provider dispatch table from config.
func newRegistry(cfg Config) *content.Registry {
	client := &http.Client{Timeout: 10 * time.Second}
	r := content.NewRegistry()
	r.Register(content.KindEquityQuote, &content.QuoteProvider{
		Client: client,
		URL:    cfg.Content.QuoteURL,
		Mock:   cfg.Content.Mock,
	})
	r.Register(content.KindNews, &content.NewsProvider{
		Client: client,
		Mock:   cfg.Content.Mock,
	})
	r.Register(content.KindPlaceholder, content.PlaceholderProvider{})
	return r
}
