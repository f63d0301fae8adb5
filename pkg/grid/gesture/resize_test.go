package gesture

import (
	"errors"
	"testing"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

func TestResize_SoutheastGrowsBothAxes(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)

	if err := r.Start("tile-1", HandleSoutheast, 200, 200); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	w, h, ok := r.Move(410, 310, testViewport)
	if !ok || w != 4 || h != 3 {
		t.Errorf("Move(+210, +110) = (%d, %d, %v), want (4, 3, true)", w, h, ok)
	}
}

func TestResize_SingleAxisHandles(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)

	r.Start("tile-1", HandleEast, 200, 200)
	w, h, _ := r.Move(400, 500, testViewport)
	if w != 4 || h != 2 {
		t.Errorf("east handle = %dx%d, want 4x2 (height untouched)", w, h)
	}
	r.End(false)

	r.Start("tile-1", HandleSouth, 200, 200)
	w, h, _ = r.Move(500, 400, testViewport)
	if w != 2 || h != 4 {
		t.Errorf("south handle = %dx%d, want 2x4 (width untouched)", w, h)
	}
}

func TestResize_SubCellMovementSnaps(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleEast, 200, 200)

	// 49px is under the half-cell threshold, 51px is over it.
	if w, _, _ := r.Move(249, 200, testViewport); w != 2 {
		t.Errorf("Move(+49px) width = %d, want 2", w)
	}
	if w, _, _ := r.Move(251, 200, testViewport); w != 3 {
		t.Errorf("Move(+51px) width = %d, want 3", w)
	}
}

func TestResize_PreviewClampedAtGridEdge(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	s.MoveTile("tile-1", 10, 0)
	r := NewResize(s, nil)
	r.Start("tile-1", HandleEast, 1000, 0)

	w, _, _ := r.Move(1800, 0, testViewport)
	if w != 2 {
		t.Errorf("preview width = %d at x=10 on 12 columns, want 2", w)
	}
}

func TestResize_PreviewClampedToConstraints(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{MinWidth: 2, MaxWidth: 4})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleEast, 200, 0)

	if w, _, _ := r.Move(1200, 0, testViewport); w != 4 {
		t.Errorf("preview width = %d, want 4 (max constraint)", w)
	}
	if w, _, _ := r.Move(-800, 0, testViewport); w != 2 {
		t.Errorf("preview width = %d, want 2 (min constraint)", w)
	}
}

func TestResize_MoveIsPurePreview(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleSoutheast, 200, 200)
	r.Move(600, 600, testViewport)

	tile, _ := s.Tile("tile-1")
	if tile.Width != 2 || tile.Height != 2 {
		t.Errorf("preview resized the store to %dx%d, want 2x2", tile.Width, tile.Height)
	}
}

func TestResize_CommitAppliesSize(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleSoutheast, 200, 200)
	r.Move(500, 400, testViewport)

	if !r.End(true) {
		t.Fatal("End(true) = false, want true")
	}
	tile, _ := s.Tile("tile-1")
	if tile.Width != 5 || tile.Height != 4 {
		t.Errorf("size = %dx%d after commit, want 5x4", tile.Width, tile.Height)
	}
}

func TestResize_CancelLeavesStoreUntouched(t *testing.T) {
	s := newTestStore(t, 12, grid.TileSpec{})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleSoutheast, 200, 200)
	r.Move(800, 800, testViewport)
	opsBefore := len(s.Operations())

	if r.End(false) {
		t.Error("End(false) = true, want false")
	}
	tile, _ := s.Tile("tile-1")
	if tile.Width != 2 || tile.Height != 2 {
		t.Errorf("cancel resized the tile to %dx%d, want 2x2", tile.Width, tile.Height)
	}
	if got := len(s.Operations()); got != opsBefore {
		t.Error("cancel recorded an operation")
	}
}

func TestResize_CommitIntoNeighborFails(t *testing.T) {
	// tile-2 sits directly right of tile-1; growing tile-1 eastward beyond
	// the gap must be rejected at commit.
	s := newTestStore(t, 12, grid.TileSpec{}, grid.TileSpec{})
	r := NewResize(s, nil)
	r.Start("tile-1", HandleEast, 200, 0)
	r.Move(400, 0, testViewport)

	if r.End(true) {
		t.Fatal("End(true) into neighbor = true, want false")
	}
	tile, _ := s.Tile("tile-1")
	if tile.Width != 2 {
		t.Errorf("failed commit changed width to %d, want 2", tile.Width)
	}
}

func TestResize_StartUnknownTile(t *testing.T) {
	r := NewResize(newTestStore(t, 12), nil)

	if err := r.Start("tile-99", HandleEast, 0, 0); !errors.Is(err, ErrTileNotFound) {
		t.Errorf("Start(tile-99) = %v, want ErrTileNotFound", err)
	}
}
