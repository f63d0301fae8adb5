package gesture

import (
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// Drag converts a pointer drag into a validated tile move. States are Idle
// and Dragging; Start enters Dragging, End returns to Idle. Between them,
// Move updates the preview position without touching the store.
type Drag struct {
	store *grid.Store
	guard *Guard

	active   bool
	tileID   string
	tileW    int
	tileH    int
	originX  int
	originY  int
	currentX int
	currentY int
}

// NewDrag creates a drag controller over the store, sharing guard with any
// resize controller. A nil guard gets a private one.
func NewDrag(store *grid.Store, guard *Guard) *Drag {
	if guard == nil {
		guard = &Guard{}
	}
	return &Drag{store: store, guard: guard}
}

// Start begins dragging the tile, capturing its position as both origin and
// current preview. Returns ErrGestureActive while another gesture runs, or
// ErrTileNotFound for an unknown tile ID.
func (d *Drag) Start(tileID string) error {
	if d.guard.Busy() {
		return ErrGestureActive
	}
	t, ok := d.store.Tile(tileID)
	if !ok {
		return ErrTileNotFound
	}
	d.guard.beginDrag()
	d.active = true
	d.tileID = tileID
	d.tileW, d.tileH = t.Width, t.Height
	d.originX, d.originY = t.X, t.Y
	d.currentX, d.currentY = t.X, t.Y
	return nil
}

// Move updates the preview position from the pointer location. The cell is
// clamped so the tile's footprint stays on-grid: 0 ≤ x ≤ columns−width and
// y ≥ 0. Move is a pure preview (the store is not mutated) and reports
// ok=false when no drag is active.
//
// The returned cell may still conflict with another tile; frontends check
// [grid.Allocator.HasConflict] on a snapshot to color the drop indicator.
func (d *Drag) Move(px, py float64, vp Viewport) (x, y int, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	gx, gy := vp.Cell(px, py)
	gx = min(max(gx, 0), d.store.Columns()-d.tileW)
	gy = max(gy, 0)
	d.currentX, d.currentY = gx, gy
	return gx, gy, true
}

// Position returns the current preview cell, with ok=false when idle.
func (d *Drag) Position() (x, y int, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	return d.currentX, d.currentY, true
}

// TileID returns the ID of the tile being dragged, or "" when idle.
func (d *Drag) TileID() string {
	if !d.active {
		return ""
	}
	return d.tileID
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// End finishes the gesture. With commit set and a preview position that
// differs from the origin, the move is applied through the store; a
// validation failure leaves the tile at its original position and is
// surfaced only as the returned false. End(false) cancels: the store was
// never touched, so there is nothing to revert.
func (d *Drag) End(commit bool) bool {
	if !d.active {
		return false
	}
	d.active = false
	d.guard.endDrag()

	if !commit || (d.currentX == d.originX && d.currentY == d.originY) {
		return false
	}
	return d.store.MoveTile(d.tileID, d.currentX, d.currentY)
}
