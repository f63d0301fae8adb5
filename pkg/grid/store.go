package grid

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
)

var (
	// ErrDuplicateTileID is returned by [ValidateLayout] when two tiles in
	// a layout share an ID. Tile IDs must be unique within a layout.
	ErrDuplicateTileID = errors.New("duplicate tile ID")

	// ErrTileOutOfBounds is returned by [ValidateLayout] when a tile's
	// rectangle leaves the grid (negative origin, zero size, or x+width
	// beyond the column count).
	ErrTileOutOfBounds = errors.New("tile out of grid bounds")

	// ErrTileOverlap is returned by [ValidateLayout] when two tiles'
	// rectangles intersect.
	ErrTileOverlap = errors.New("tiles overlap")
)

// Op identifies a store mutation for the operation log.
type Op string

// Operations recorded by the store.
const (
	OpCreate Op = "create"
	OpDelete Op = "delete"
	OpUpdate Op = "update"
	OpMove   Op = "move"
	OpResize Op = "resize"
	OpClear  Op = "clear"
	OpImport Op = "import"
	OpReflow Op = "reflow"
)

// OperationLogSize is the number of entries the store retains. Older
// entries are discarded; the log is informational and never replayed.
const OperationLogSize = 100

// Operation is one entry in the store's audit log.
type Operation struct {
	Op     Op             `json:"operation"`
	TileID string         `json:"tileId,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
	Time   time.Time      `json:"timestamp"`
}

// TileSpec describes a tile to create. Zero-value fields use defaults: a
// 2×2 tile with no per-tile constraints and no content. Position is never
// specified; the allocator assigns the first free slot.
type TileSpec struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	Content   *content.Content
}

// TileUpdate is a partial tile mutation with no positional semantics, used
// for title, content, and constraint edits. Nil fields are left unchanged.
type TileUpdate struct {
	Title     *string
	Content   *content.Content
	MinWidth  *int
	MinHeight *int
	MaxWidth  *int
	MaxHeight *int
}

// Store owns a [Layout] and is its single writer. All mutations validate
// the no-overlap and bounds invariants and report success as a boolean;
// a rejected mutation leaves the layout exactly as it was.
//
// Store methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	layout   *Layout
	cfg      Config
	ops      []Operation
	onMutate func(Op)
}

// NewStore creates a store owning the given layout. A nil layout gets a
// fresh empty one at the desktop column count.
func NewStore(l *Layout, cfg Config) *Store {
	if l == nil {
		l = NewLayout("Dashboard", cfg.Columns(BreakpointDesktop))
	}
	return &Store{layout: l, cfg: cfg}
}

// OnMutate registers fn to run after every applied mutation, while the
// store lock is held. Persistence uses this to trigger a (debounced) save;
// fn should grab a [Store.Snapshot] asynchronously rather than block.
func (s *Store) OnMutate(fn func(Op)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutate = fn
}

// Config returns the grid configuration.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Columns returns the current layout's column count.
func (s *Store) Columns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.GridColumns
}

// Snapshot returns a deep copy of the layout, safe to serialize or render
// while the store keeps mutating.
func (s *Store) Snapshot() *Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Clone()
}

// Tile returns a copy of the tile with the given ID.
func (s *Store) Tile(id string) (Tile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.layout.Tile(id); t != nil {
		return *t.clone(), true
	}
	return Tile{}, false
}

// TileCount returns the number of tiles in the layout.
func (s *Store) TileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.layout.Tiles)
}

// Operations returns a copy of the operation log, oldest first.
func (s *Store) Operations() []Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ops)
}

// CreateTile places a new tile at the first free slot and returns a copy of
// it. Size defaults to 2×2 when the spec leaves it zero, clamped to the
// spec's constraints and the grid width. The tile ID is "tile-N" where N is
// one above the highest numeric suffix among existing tile IDs. CreateTile
// cannot fail: the allocator falls back to appending below all tiles.
func (s *Store) CreateTile(spec TileSpec) Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	t := &Tile{
		ID:        s.nextTileID(),
		Title:     spec.Title,
		Width:     spec.Width,
		Height:    spec.Height,
		MinWidth:  spec.MinWidth,
		MinHeight: spec.MinHeight,
		MaxWidth:  spec.MaxWidth,
		MaxHeight: spec.MaxHeight,
		Content:   spec.Content,
		Created:   now,
		Modified:  now,
	}
	if t.Width <= 0 {
		t.Width = DefaultTileWidth
	}
	if t.Height <= 0 {
		t.Height = DefaultTileHeight
	}
	minW, minH, maxW, maxH := t.Limits(s.layout.GridColumns)
	t.Width = clamp(t.Width, minW, maxW)
	t.Height = clamp(t.Height, minH, maxH)

	t.X, t.Y = NewAllocator(s.layout).FirstFree(t.Width, t.Height)
	s.layout.Tiles = append(s.layout.Tiles, t)
	s.commit(OpCreate, t.ID, map[string]any{"x": t.X, "y": t.Y, "width": t.Width, "height": t.Height})
	return *t.clone()
}

// DeleteTile removes the tile with the given ID. Remaining tiles are not
// compacted or reflowed. Returns false if the tile does not exist.
func (s *Store) DeleteTile(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.layout.Tiles)
	s.layout.Tiles = slices.DeleteFunc(s.layout.Tiles, func(t *Tile) bool { return t.ID == id })
	if len(s.layout.Tiles) == n {
		return false
	}
	s.commit(OpDelete, id, nil)
	return true
}

// UpdateTile merges the non-nil fields of upd into the tile and bumps its
// Modified timestamp. Returns false if the tile does not exist. UpdateTile
// carries no positional semantics; use MoveTile and ResizeTile for those.
func (s *Store) UpdateTile(id string, upd TileUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.layout.Tile(id)
	if t == nil {
		return false
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Content != nil {
		c := *upd.Content
		t.Content = &c
	}
	if upd.MinWidth != nil {
		t.MinWidth = *upd.MinWidth
	}
	if upd.MinHeight != nil {
		t.MinHeight = *upd.MinHeight
	}
	if upd.MaxWidth != nil {
		t.MaxWidth = *upd.MaxWidth
	}
	if upd.MaxHeight != nil {
		t.MaxHeight = *upd.MaxHeight
	}
	t.Modified = time.Now()
	s.commit(OpUpdate, id, nil)
	return true
}

// MoveTile moves the tile to (x, y). The move is rejected, returning false
// and leaving the tile untouched, when the tile does not exist, the target
// footprint leaves the grid, or it conflicts with another tile.
func (s *Store) MoveTile(id string, x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.layout.Tile(id)
	if t == nil {
		return false
	}
	a := NewAllocator(s.layout)
	if !a.InBounds(x, y, t.Width, t.Height) || a.HasConflict(x, y, t.Width, t.Height, id) {
		return false
	}
	t.X, t.Y = x, y
	t.Modified = time.Now()
	s.commit(OpMove, id, map[string]any{"x": x, "y": y})
	return true
}

// ResizeTile resizes the tile to w×h. The requested size is first clamped
// to the tile's constraints and to the grid's right edge (so a tile at
// x=10 on a 12-column grid can grow to at most width 2); the resize is then
// rejected only if the clamped size still conflicts with another tile.
func (s *Store) ResizeTile(id string, w, h int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.layout.Tile(id)
	if t == nil {
		return false
	}
	w, h = s.clampSize(t, w, h)
	a := NewAllocator(s.layout)
	if !a.InBounds(t.X, t.Y, w, h) || a.HasConflict(t.X, t.Y, w, h, id) {
		return false
	}
	t.Width, t.Height = w, h
	t.Modified = time.Now()
	s.commit(OpResize, id, map[string]any{"width": w, "height": h})
	return true
}

// ClampSize resolves the size a resize of the tile to w×h would actually
// apply: clamped to the tile's min/max constraints and to the grid's right
// edge. Gesture controllers use this to preview honest resize candidates.
func (s *Store) ClampSize(id string, w, h int) (int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.layout.Tile(id)
	if t == nil {
		return 0, 0, false
	}
	w, h = s.clampSize(t, w, h)
	return w, h, true
}

// Clear removes every tile and logs a single bulk operation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.layout.Tiles)
	s.layout.Tiles = nil
	s.commit(OpClear, "", map[string]any{"removed": n})
}

// ReplaceLayout swaps in a new layout wholesale, as done on import. The
// candidate is validated first; an invalid layout is rejected with an error
// and the current layout stays untouched. The store takes ownership of l.
func (s *Store) ReplaceLayout(l *Layout) error {
	if err := ValidateLayout(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = l
	s.commit(OpImport, "", map[string]any{"tiles": len(l.Tiles)})
	return nil
}

// ApplyColumns changes the layout's column count, typically after a
// breakpoint change. Tiles are reconciled in insertion order: each tile's
// width is clamped to the new column count, and a tile that now overflows
// the grid or collides with an already-reconciled tile is re-placed at its
// first free slot. The no-overlap and bounds invariants hold afterward.
//
// ApplyColumns with the current column count is a no-op.
func (s *Store) ApplyColumns(columns int) {
	if columns < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if columns == s.layout.GridColumns {
		return
	}

	s.layout.GridColumns = columns
	now := time.Now()
	placed := make([]*Tile, 0, len(s.layout.Tiles))
	for _, t := range s.layout.Tiles {
		if t.Width > columns {
			t.Width = columns
			t.Modified = now
		}
		a := Allocator{Columns: columns, Tiles: placed}
		if !a.InBounds(t.X, t.Y, t.Width, t.Height) || a.HasConflict(t.X, t.Y, t.Width, t.Height, t.ID) {
			t.X, t.Y = a.FirstFree(t.Width, t.Height)
			t.Modified = now
		}
		placed = append(placed, t)
	}
	s.commit(OpReflow, "", map[string]any{"columns": columns})
}

// ValidateLayout checks the layout invariants: unique tile IDs, every tile
// inside the grid, and no two tiles overlapping. The first violation found
// is returned, wrapped with the offending tile IDs.
func ValidateLayout(l *Layout) error {
	seen := make(map[string]struct{}, len(l.Tiles))
	a := Allocator{Columns: l.GridColumns, Tiles: l.Tiles}
	for i, t := range l.Tiles {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("tile %s: %w", t.ID, ErrDuplicateTileID)
		}
		seen[t.ID] = struct{}{}
		if !a.InBounds(t.X, t.Y, t.Width, t.Height) {
			return fmt.Errorf("tile %s at (%d,%d) %dx%d on %d columns: %w",
				t.ID, t.X, t.Y, t.Width, t.Height, l.GridColumns, ErrTileOutOfBounds)
		}
		for _, other := range l.Tiles[i+1:] {
			if other.Overlaps(t.X, t.Y, t.Width, t.Height) {
				return fmt.Errorf("tiles %s and %s: %w", t.ID, other.ID, ErrTileOverlap)
			}
		}
	}
	return nil
}

// clampSize applies the tile's constraints and the grid's right edge.
// Callers must hold s.mu.
func (s *Store) clampSize(t *Tile, w, h int) (int, int) {
	minW, minH, maxW, maxH := t.Limits(s.layout.GridColumns)
	maxW = min(maxW, s.layout.GridColumns-t.X)
	if maxW < minW {
		minW = maxW
	}
	return clamp(w, minW, maxW), clamp(h, minH, maxH)
}

// nextTileID returns "tile-N" with N one above the highest numeric suffix
// among existing tile IDs. IDs without a numeric suffix are ignored, so
// imported layouts with arbitrary IDs still get fresh non-colliding IDs.
// Callers must hold s.mu.
func (s *Store) nextTileID() string {
	maxN := 0
	for _, t := range s.layout.Tiles {
		if i := strings.LastIndexByte(t.ID, '-'); i >= 0 {
			if n, err := strconv.Atoi(t.ID[i+1:]); err == nil {
				maxN = max(maxN, n)
			}
		}
	}
	return "tile-" + strconv.Itoa(maxN+1)
}

// commit records an applied mutation: bumps the layout's Modified time,
// appends to the bounded operation log, and fires the mutation hook.
// Callers must hold s.mu.
func (s *Store) commit(op Op, tileID string, data map[string]any) {
	s.layout.Modified = time.Now()
	s.ops = append(s.ops, Operation{Op: op, TileID: tileID, Data: data, Time: s.layout.Modified})
	if len(s.ops) > OperationLogSize {
		s.ops = s.ops[len(s.ops)-OperationLogSize:]
	}
	if s.onMutate != nil {
		s.onMutate(op)
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
