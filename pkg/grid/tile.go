package grid

import (
	"time"

	"github.com/google/uuid"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
)

// Default tile geometry. New tiles are 2×2 cells unless the caller overrides
// the size, and tiles without explicit constraints may span the full grid
// width and up to DefaultMaxHeight rows.
const (
	DefaultTileWidth  = 2
	DefaultTileHeight = 2
	DefaultMaxHeight  = 20
)

// Tile is a placed rectangle on the grid. X and Y are the 0-based cell
// origin (column, row); Width and Height are the span in cells, both ≥ 1.
//
// MinWidth, MinHeight, MaxWidth and MaxHeight are optional per-tile
// constraints; zero means "unset" and falls back to the defaults (minimum 1,
// maximum grid width for columns and DefaultMaxHeight for rows). Use
// [Tile.Limits] to resolve the effective constraints.
//
// Content describes what the tile renders. The engine never inspects it
// beyond presence; rendering is dispatched by the content package.
type Tile struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	MinWidth  int `json:"minWidth,omitempty"`
	MinHeight int `json:"minHeight,omitempty"`
	MaxWidth  int `json:"maxWidth,omitempty"`
	MaxHeight int `json:"maxHeight,omitempty"`

	Content *content.Content `json:"content,omitempty"`

	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// Limits returns the tile's effective size constraints on a grid with the
// given column count, resolving unset fields to their defaults. The returned
// values satisfy 1 ≤ min ≤ max for both axes.
func (t *Tile) Limits(columns int) (minW, minH, maxW, maxH int) {
	minW, minH = max(t.MinWidth, 1), max(t.MinHeight, 1)
	maxW, maxH = t.MaxWidth, t.MaxHeight
	if maxW <= 0 || maxW > columns {
		maxW = columns
	}
	if maxH <= 0 {
		maxH = DefaultMaxHeight
	}
	maxW = max(maxW, minW)
	maxH = max(maxH, minH)
	return minW, minH, maxW, maxH
}

// Overlaps reports whether the tile's rectangle intersects the rectangle
// (x, y, w, h) using the standard axis-aligned overlap test.
func (t *Tile) Overlaps(x, y, w, h int) bool {
	return t.X < x+w && t.X+t.Width > x && t.Y < y+h && t.Y+t.Height > y
}

// clone returns a deep copy of the tile. Content values are copied so that
// snapshots handed to persistence never alias live store state.
func (t *Tile) clone() *Tile {
	c := *t
	if t.Content != nil {
		cc := *t.Content
		c.Content = &cc
	}
	return &c
}

// Layout is a dashboard: an ordered tile collection plus its column count.
// Tiles keep insertion order (creation order, not spatial order); the layout
// exclusively owns its tiles. A layout is the unit of persistence.
type Layout struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tiles       []*Tile   `json:"tiles"`
	GridColumns int       `json:"gridColumns"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// NewLayout creates an empty layout with a fresh UUID and the given column
// count. A non-positive column count falls back to the desktop default.
func NewLayout(name string, columns int) *Layout {
	if columns <= 0 {
		columns = DesktopColumns
	}
	now := time.Now()
	return &Layout{
		ID:          uuid.NewString(),
		Name:        name,
		GridColumns: columns,
		Created:     now,
		Modified:    now,
	}
}

// Tile returns the tile with the given ID, or nil if it does not exist.
func (l *Layout) Tile(id string) *Tile {
	for _, t := range l.Tiles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// MaxY returns the first row below every tile, i.e. max(tile.Y+tile.Height)
// over all tiles, or 0 for an empty layout. This is the append row used by
// the allocator's fallback placement.
func (l *Layout) MaxY() int {
	maxY := 0
	for _, t := range l.Tiles {
		maxY = max(maxY, t.Y+t.Height)
	}
	return maxY
}

// Clone returns a deep copy of the layout, including all tiles.
func (l *Layout) Clone() *Layout {
	c := *l
	c.Tiles = make([]*Tile, len(l.Tiles))
	for i, t := range l.Tiles {
		c.Tiles[i] = t.clone()
	}
	return &c
}
