// Package persist couples a grid store to a persistence sink: layouts are
// saved on every mutation (debounced) and restored at startup, and an
// exported layout file can be watched for live reload.
//
// Persistence is fire-and-forget by design: a failed save is reported
// through the saver's error hook and the in-memory layout stays
// authoritative for the rest of the session. The engine never blocks on
// the sink.
package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/sink"
)

// DefaultKey is the sink key the dashboard layout is stored under.
const DefaultKey = "layout"

// saveTimeout bounds a single sink write.
const saveTimeout = 5 * time.Second

// Saver autosaves a store's layout to a sink. Every store mutation
// triggers a debounced serialize-and-write of a layout snapshot. The
// source system wrote synchronously on every mutation with no debounce;
// coalescing is a deliberate difference, and a zero debounce window keeps
// per-mutation writes while staying off the mutation path.
type Saver struct {
	store *grid.Store
	sink  sink.Sink
	key   string
	deb   *debouncer

	// OnError is called with save failures. Set it before Attach; nil
	// discards errors.
	OnError func(error)
}

// NewSaver creates a saver writing the store's layout to s under key.
// An empty key uses DefaultKey; a negative debounce disables autosave
// (Flush still works).
func NewSaver(store *grid.Store, s sink.Sink, key string, debounce time.Duration) *Saver {
	if key == "" {
		key = DefaultKey
	}
	sv := &Saver{store: store, sink: s, key: key}
	if debounce >= 0 {
		sv.deb = newDebouncer(debounce)
	}
	return sv
}

// Attach registers the saver on the store's mutation hook. The hook only
// schedules the debounced save; serialization happens off the mutation
// path, on a snapshot.
func (sv *Saver) Attach() {
	sv.store.OnMutate(func(grid.Op) {
		if sv.deb != nil {
			sv.deb.Trigger(sv.save)
		}
	})
}

// Flush cancels any pending debounced save and writes the current layout
// now. Unlike autosave it returns the write error; shutdown paths use it
// to guarantee the final state is persisted.
func (sv *Saver) Flush(ctx context.Context) error {
	if sv.deb != nil {
		sv.deb.Cancel()
	}
	data, err := layoutio.Marshal(sv.store.Snapshot())
	if err != nil {
		return err
	}
	if err := sv.sink.Set(ctx, sv.key, data); err != nil {
		return fmt.Errorf("persist layout: %w", err)
	}
	return nil
}

// Close stops pending saves. It does not flush.
func (sv *Saver) Close() {
	if sv.deb != nil {
		sv.deb.Cancel()
	}
}

func (sv *Saver) save() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := sv.Flush(ctx); err != nil && sv.OnError != nil {
		sv.OnError(err)
	}
}

// Load restores a layout from the sink. A missing key is (nil, false, nil)
// so callers can fall back to a fresh layout; a present but unparsable
// value is an error, since silently discarding a stored dashboard would
// lose user state.
func Load(ctx context.Context, s sink.Sink, key string) (*grid.Layout, bool, error) {
	if key == "" {
		key = DefaultKey
	}
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load layout: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	l, err := layoutio.Unmarshal(data)
	if err != nil {
		return nil, false, fmt.Errorf("load layout: %w", err)
	}
	return l, true, nil
}
