package grid

// allocScanRows bounds the row-major free-slot scan. If no slot is found
// within this many rows the allocator falls back to appending below every
// existing tile, so placement can never fail.
const allocScanRows = 1000

// Allocator answers placement questions over a layout's tile set: whether a
// candidate rectangle conflicts with an existing tile, and where the first
// free slot for a given size is. It holds references into the layout, so it
// is cheap to construct and must not outlive the mutation it serves.
type Allocator struct {
	Columns int
	Tiles   []*Tile
}

// NewAllocator creates an allocator over the layout's current tiles.
func NewAllocator(l *Layout) Allocator {
	return Allocator{Columns: l.GridColumns, Tiles: l.Tiles}
}

// HasConflict reports whether any tile other than excludeID intersects the
// candidate rectangle (x, y, w, h). excludeID may be empty to test against
// every tile. The check is O(n) in tile count and allocation-free; it runs
// on every drag-move and resize-move tick.
func (a Allocator) HasConflict(x, y, w, h int, excludeID string) bool {
	for _, t := range a.Tiles {
		if t.ID == excludeID {
			continue
		}
		if t.Overlaps(x, y, w, h) {
			return true
		}
	}
	return false
}

// InBounds reports whether the rectangle (x, y, w, h) lies on the grid:
// non-negative origin and x+w within the column count. There is no lower
// row bound; the grid grows downward.
func (a Allocator) InBounds(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && w >= 1 && h >= 1 && x+w <= a.Columns
}

// FirstFree returns the first position whose full w×h footprint is free,
// scanning rows from 0 upward and columns left to right within each row.
// The scan order is a deliberate tie-break: new tiles always prefer the
// topmost, then leftmost, gap.
//
// If no slot exists within the bounded scan (or w exceeds the grid width),
// FirstFree returns (0, maxY): the row below every existing tile. Placement
// therefore always succeeds.
func (a Allocator) FirstFree(w, h int) (x, y int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > a.Columns {
		return 0, a.maxY()
	}

	occupied := make(map[cell]struct{})
	for _, t := range a.Tiles {
		for cy := t.Y; cy < t.Y+t.Height; cy++ {
			for cx := t.X; cx < t.X+t.Width; cx++ {
				occupied[cell{cx, cy}] = struct{}{}
			}
		}
	}

	for y := 0; y < allocScanRows; y++ {
		for x := 0; x <= a.Columns-w; x++ {
			if footprintFree(occupied, x, y, w, h) {
				return x, y
			}
		}
	}
	return 0, a.maxY()
}

type cell struct{ x, y int }

func footprintFree(occupied map[cell]struct{}, x, y, w, h int) bool {
	for cy := y; cy < y+h; cy++ {
		for cx := x; cx < x+w; cx++ {
			if _, taken := occupied[cell{cx, cy}]; taken {
				return false
			}
		}
	}
	return true
}

func (a Allocator) maxY() int {
	maxY := 0
	for _, t := range a.Tiles {
		maxY = max(maxY, t.Y+t.Height)
	}
	return maxY
}
