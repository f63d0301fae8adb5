// Package grid implements the tile grid layout engine at the heart of Tiler.
//
// # Overview
//
// A dashboard is a [Layout]: an ordered collection of rectangular [Tile]
// values placed on an integer column grid. Tiles occupy axis-aligned
// rectangles of grid cells and must never overlap. The [Store] owns exactly
// one layout and is the single writer: every mutation (create, move, resize,
// update, delete, clear) is validated against the no-overlap and bounds
// invariants before it is applied, and rejected mutations leave the layout
// untouched.
//
// # Basic Usage
//
// Create a store with [NewStore], then mutate it through its API:
//
//	s := grid.NewStore(grid.NewLayout("My Dashboard", 12), grid.DefaultConfig())
//	tile := s.CreateTile(grid.TileSpec{Title: "Quotes"})
//	ok := s.MoveTile(tile.ID, 4, 0)   // false if the target overlaps or is out of bounds
//	ok = s.ResizeTile(tile.ID, 3, 2)  // size is clamped to tile and grid limits first
//
// Placement of new tiles is handled by [Allocator.FirstFree], which scans
// rows top to bottom and columns left to right, so new tiles always take the
// topmost, then leftmost, free slot. [Allocator.HasConflict] answers whether
// a candidate rectangle intersects any existing tile and is cheap enough to
// call on every pointer-move tick of a gesture.
//
// # Breakpoints
//
// The grid is responsive: [Resolve] maps a viewport width in pixels to a
// [Breakpoint], and [Config.Columns] maps a breakpoint to a column count.
// When the column count shrinks, [Store.ApplyColumns] clamps and re-places
// tiles so the invariants keep holding on the narrower grid.
//
// # Operation Log
//
// The store records every applied mutation in a bounded ring buffer of
// [Operation] entries (most recent 100). The log is informational only; it
// is never replayed.
//
// # Concurrency
//
// Store methods are safe for concurrent use; a single mutex serializes all
// reads and writes. Gesture controllers in the gesture subpackage preview
// candidate positions without touching the store and commit through the
// store API, so a rejected commit is a no-op rather than a rollback.
package grid
