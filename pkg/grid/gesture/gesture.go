package gesture

import (
	"errors"
	"math"
)

var (
	// ErrGestureActive is returned by Start when another gesture already
	// holds the guard. The caller should ignore the initiation.
	ErrGestureActive = errors.New("another gesture is active")

	// ErrTileNotFound is returned by Start when the tile ID does not exist
	// in the store.
	ErrTileNotFound = errors.New("tile not found")
)

// Viewport maps pointer coordinates onto the grid: the container's top-left
// corner in pointer space and the pixel size of one grid cell. Frontends
// derive CellWidth from the container width divided by the column count and
// CellHeight from the grid config's row height.
type Viewport struct {
	OriginX    float64
	OriginY    float64
	CellWidth  float64
	CellHeight float64
}

// Cell floors the pointer position (px, py) into a grid cell. Results may
// lie outside the grid; callers clamp against the gesturing tile's
// footprint.
func (v Viewport) Cell(px, py float64) (x, y int) {
	if v.CellWidth <= 0 || v.CellHeight <= 0 {
		return 0, 0
	}
	return int(math.Floor((px - v.OriginX) / v.CellWidth)),
		int(math.Floor((py - v.OriginY) / v.CellHeight))
}

// deltaCells converts a pixel delta to whole cells, rounding to nearest.
func deltaCells(deltaPx, cellPx float64) int {
	if cellPx <= 0 {
		return 0
	}
	return int(math.Round(deltaPx / cellPx))
}

// Guard enforces gesture exclusivity: at most one drag and one resize may
// be logically active, and neither may start while the other runs. The
// zero value is ready to use.
//
// Guard assumes the single-threaded event loop the controllers live in;
// it is not safe for concurrent use.
type Guard struct {
	dragging bool
	resizing bool
}

// IsDragging reports whether a drag gesture is in progress.
func (g *Guard) IsDragging() bool { return g.dragging }

// IsResizing reports whether a resize gesture is in progress.
func (g *Guard) IsResizing() bool { return g.resizing }

// Busy reports whether any gesture is in progress. Frontends use this to
// disable initiating a second gesture.
func (g *Guard) Busy() bool { return g.dragging || g.resizing }

func (g *Guard) beginDrag() bool {
	if g.Busy() {
		return false
	}
	g.dragging = true
	return true
}

func (g *Guard) beginResize() bool {
	if g.Busy() {
		return false
	}
	g.resizing = true
	return true
}

func (g *Guard) endDrag()   { g.dragging = false }
func (g *Guard) endResize() { g.resizing = false }
