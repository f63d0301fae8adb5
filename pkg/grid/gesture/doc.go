// Package gesture implements the drag and resize state machines that turn
// continuous pointer movement into discrete, validated grid coordinates.
//
// # Model
//
// Both controllers are pure-preview state machines over a [grid.Store]
// passed at construction. A gesture is Start → zero or more Move → exactly
// one End. Move never mutates the store: it computes the candidate cell or
// size so the frontend can render a drop indicator. Only End(true) commits,
// through [grid.Store.MoveTile] or [grid.Store.ResizeTile], whose rejection
// silently leaves the tile where it was. End(false) is a no-op rather than
// a rollback, because the store was never touched during the gesture.
//
// # Coordinates
//
// Frontends supply a [Viewport] describing the grid container: its origin
// in pointer coordinates and the size of one cell. [Viewport.Cell] floors a
// pointer position into a cell; resize deltas round to the nearest cell so
// sub-cell movement has no effect until it crosses a half-cell threshold,
// which produces the snap-to-grid feel.
//
// # Exclusivity
//
// A shared [Guard] allows one drag and one resize dashboard-wide and
// refuses to start either while the other is active, so the controllers
// never have to arbitrate concurrent gestures.
package gesture
