package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio"
)

func writeLayoutFile(t *testing.T, path string, l *grid.Layout) {
	t.Helper()
	data, err := layoutio.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	initial := grid.NewLayout("initial", 12)
	writeLayoutFile(t, path, initial)

	store := newTestStore()
	w, err := WatchFile(store, path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() = %v", err)
	}
	defer w.Close()

	updated := grid.NewLayout("updated", 12)
	updated.Tiles = []*grid.Tile{
		{ID: "tile-1", Title: "From file", X: 0, Y: 0, Width: 4, Height: 2},
	}
	writeLayoutFile(t, path, updated)

	ok := waitFor(t, 2*time.Second, func() bool {
		return store.TileCount() == 1
	})
	if !ok {
		t.Fatal("store never picked up the file change")
	}
	tile, _ := store.Tile("tile-1")
	if tile.Title != "From file" {
		t.Errorf("Title = %q, want %q", tile.Title, "From file")
	}
}

func TestWatcher_InvalidEditKeepsLastGoodState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")

	good := grid.NewLayout("good", 12)
	good.Tiles = []*grid.Tile{
		{ID: "tile-1", X: 0, Y: 0, Width: 4, Height: 2},
	}
	writeLayoutFile(t, path, good)

	store := newTestStore()
	w, err := WatchFile(store, path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() = %v", err)
	}
	defer w.Close()

	errCh := make(chan error, 1)
	w.OnError = func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}

	// Load the good state first.
	writeLayoutFile(t, path, good)
	if !waitFor(t, 2*time.Second, func() bool { return store.TileCount() == 1 }) {
		t.Fatal("good layout never loaded")
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("OnError never fired for the broken file")
	}
	if store.TileCount() != 1 {
		t.Error("broken edit replaced the last good layout")
	}
}

func TestWatcher_RenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	writeLayoutFile(t, path, grid.NewLayout("initial", 12))

	store := newTestStore()
	w, err := WatchFile(store, path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() = %v", err)
	}
	defer w.Close()

	// Editors save via temp file + rename; the watcher must survive it.
	next := grid.NewLayout("renamed in", 12)
	next.Tiles = []*grid.Tile{
		{ID: "tile-1", X: 0, Y: 0, Width: 2, Height: 2},
	}
	tmp := filepath.Join(dir, "layout.json.tmp")
	writeLayoutFile(t, tmp, next)
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("Rename() = %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return store.TileCount() == 1 }) {
		t.Fatal("store never picked up the rename-replace")
	}
}
