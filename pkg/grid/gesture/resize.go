package gesture

import (
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// Handle identifies which resize handle the gesture grabbed, which decides
// the axes the resize affects.
type Handle string

// Resize handles.
const (
	// HandleSoutheast adjusts both width and height.
	HandleSoutheast Handle = "southeast"
	// HandleEast adjusts width only.
	HandleEast Handle = "east"
	// HandleSouth adjusts height only.
	HandleSouth Handle = "south"
)

// Resize converts a pointer drag on a resize handle into a validated tile
// resize. Like [Drag] it is a pure preview until End(true).
type Resize struct {
	store *grid.Store
	guard *Guard

	active   bool
	tileID   string
	handle   Handle
	startPX  float64
	startPY  float64
	startW   int
	startH   int
	currentW int
	currentH int
}

// NewResize creates a resize controller over the store, sharing guard with
// any drag controller. A nil guard gets a private one.
func NewResize(store *grid.Store, guard *Guard) *Resize {
	if guard == nil {
		guard = &Guard{}
	}
	return &Resize{store: store, guard: guard}
}

// Start begins resizing the tile via the given handle, recording the start
// pointer position and the tile's starting size. Returns ErrGestureActive
// while a drag or another resize runs, or ErrTileNotFound for an unknown
// tile ID.
func (r *Resize) Start(tileID string, handle Handle, px, py float64) error {
	if r.guard.Busy() {
		return ErrGestureActive
	}
	t, ok := r.store.Tile(tileID)
	if !ok {
		return ErrTileNotFound
	}
	r.guard.beginResize()
	r.active = true
	r.tileID = tileID
	r.handle = handle
	r.startPX, r.startPY = px, py
	r.startW, r.startH = t.Width, t.Height
	r.currentW, r.currentH = t.Width, t.Height
	return nil
}

// Move updates the preview size from the pointer location. Pixel deltas
// from the start pointer convert to grid units rounding to nearest, so
// sub-cell movement has no effect until it crosses a half-cell threshold.
// The handle decides the affected axes; the result is clamped to the
// tile's constraints and the grid's right edge. Pure preview; ok=false
// when no resize is active.
func (r *Resize) Move(px, py float64, vp Viewport) (w, h int, ok bool) {
	if !r.active {
		return 0, 0, false
	}

	w, h = r.startW, r.startH
	switch r.handle {
	case HandleSoutheast:
		w += deltaCells(px-r.startPX, vp.CellWidth)
		h += deltaCells(py-r.startPY, vp.CellHeight)
	case HandleEast:
		w += deltaCells(px-r.startPX, vp.CellWidth)
	case HandleSouth:
		h += deltaCells(py-r.startPY, vp.CellHeight)
	}

	if cw, ch, found := r.store.ClampSize(r.tileID, w, h); found {
		w, h = cw, ch
	}
	r.currentW, r.currentH = w, h
	return w, h, true
}

// Size returns the current preview size, with ok=false when idle.
func (r *Resize) Size() (w, h int, ok bool) {
	if !r.active {
		return 0, 0, false
	}
	return r.currentW, r.currentH, true
}

// TileID returns the ID of the tile being resized, or "" when idle.
func (r *Resize) TileID() string {
	if !r.active {
		return ""
	}
	return r.tileID
}

// Active reports whether a resize is in progress.
func (r *Resize) Active() bool { return r.active }

// End finishes the gesture. With commit set the last computed size is
// applied through the store; a conflict or bound failure leaves the tile
// unchanged and returns false. End(false) cancels without mutation.
func (r *Resize) End(commit bool) bool {
	if !r.active {
		return false
	}
	r.active = false
	r.guard.endResize()

	if !commit || (r.currentW == r.startW && r.currentH == r.startH) {
		return false
	}
	return r.store.ResizeTile(r.tileID, r.currentW, r.currentH)
}
