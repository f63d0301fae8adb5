package persist

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
)

// Watcher reloads a layout file into a store whenever the file changes,
// so an exported layout can be edited externally and reflected live.
// Reloads go through the store's import validation; an invalid edit is
// reported via OnError and the current layout stays up.
type Watcher struct {
	store *grid.Store
	path  string
	fsw   *fsnotify.Watcher
	deb   *debouncer
	done  chan struct{}

	// OnReload is called after a successful reload with the new layout.
	OnReload func(*grid.Layout)
	// OnError is called with watch or reload failures; nil discards them.
	OnError func(error)
}

// WatchFile starts watching path and reloading it into store on change.
// Events are debounced because editors produce bursts of writes and
// rename-replace sequences. The watcher runs until Close.
func WatchFile(store *grid.Store, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	// Watch the directory, not the file: editors that write via
	// rename-replace would otherwise drop the watch on first save.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		store: store,
		path:  abs,
		fsw:   fsw,
		deb:   newDebouncer(debounce),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	w.deb.Cancel()
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.deb.Trigger(w.reload)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

func (w *Watcher) reload() {
	l, err := layoutio.ImportFile(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	if err := w.store.ReplaceLayout(l); err != nil {
		w.fail(err)
		return
	}
	if w.OnReload != nil {
		w.OnReload(l)
	}
}

func (w *Watcher) fail(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
