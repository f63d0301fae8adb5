package layoutio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

var (
	// ErrInvalidLayout is returned by [Read] and [Import] when the input is
	// not a valid layout document: malformed JSON, a missing or mistyped
	// field, or a tile set violating the grid invariants.
	ErrInvalidLayout = errors.New("invalid layout document")

	// ErrUnsupportedVersion is returned by [Import] when an export envelope
	// declares a format version this build does not understand.
	ErrUnsupportedVersion = errors.New("unsupported export version")
)

// layoutDoc is the wire form of a layout. Field names and types are the
// external contract; decoding into the typed struct is what enforces the
// "correct types" part of import validation.
type layoutDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GridColumns int       `json:"gridColumns"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Tiles       []tileDoc `json:"tiles"`
}

type tileDoc struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	X         int              `json:"x"`
	Y         int              `json:"y"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	MinWidth  int              `json:"minWidth,omitempty"`
	MinHeight int              `json:"minHeight,omitempty"`
	MaxWidth  int              `json:"maxWidth,omitempty"`
	MaxHeight int              `json:"maxHeight,omitempty"`
	Content   *content.Content `json:"content,omitempty"`
	Created   time.Time        `json:"created"`
	Modified  time.Time        `json:"modified"`
}

func docFromLayout(l *grid.Layout) layoutDoc {
	doc := layoutDoc{
		ID:          l.ID,
		Name:        l.Name,
		GridColumns: l.GridColumns,
		Created:     l.Created,
		Modified:    l.Modified,
		Tiles:       make([]tileDoc, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		doc.Tiles[i] = tileDoc{
			ID:        t.ID,
			Title:     t.Title,
			X:         t.X,
			Y:         t.Y,
			Width:     t.Width,
			Height:    t.Height,
			MinWidth:  t.MinWidth,
			MinHeight: t.MinHeight,
			MaxWidth:  t.MaxWidth,
			MaxHeight: t.MaxHeight,
			Content:   t.Content,
			Created:   t.Created,
			Modified:  t.Modified,
		}
	}
	return doc
}

// layoutFromDoc validates the decoded document and converts it. Geometry
// invariants (bounds, overlap, duplicate IDs) are checked via
// grid.ValidateLayout so import and live mutation enforce the same rules.
func layoutFromDoc(doc layoutDoc) (*grid.Layout, error) {
	if doc.GridColumns < 1 {
		return nil, fmt.Errorf("gridColumns %d: %w", doc.GridColumns, ErrInvalidLayout)
	}
	l := &grid.Layout{
		ID:          doc.ID,
		Name:        doc.Name,
		GridColumns: doc.GridColumns,
		Created:     doc.Created,
		Modified:    doc.Modified,
		Tiles:       make([]*grid.Tile, len(doc.Tiles)),
	}
	for i, td := range doc.Tiles {
		if td.ID == "" {
			return nil, fmt.Errorf("tile %d: missing id: %w", i, ErrInvalidLayout)
		}
		if td.Width < 1 || td.Height < 1 {
			return nil, fmt.Errorf("tile %s: size %dx%d: %w", td.ID, td.Width, td.Height, ErrInvalidLayout)
		}
		if td.Content != nil {
			if err := td.Content.Validate(); err != nil {
				return nil, fmt.Errorf("tile %s: %w: %w", td.ID, err, ErrInvalidLayout)
			}
		}
		l.Tiles[i] = &grid.Tile{
			ID:        td.ID,
			Title:     td.Title,
			X:         td.X,
			Y:         td.Y,
			Width:     td.Width,
			Height:    td.Height,
			MinWidth:  td.MinWidth,
			MinHeight: td.MinHeight,
			MaxWidth:  td.MaxWidth,
			MaxHeight: td.MaxHeight,
			Content:   td.Content,
			Created:   td.Created,
			Modified:  td.Modified,
		}
	}
	if err := grid.ValidateLayout(l); err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrInvalidLayout)
	}
	return l, nil
}

// Write encodes the layout as an indented JSON document.
func Write(w io.Writer, l *grid.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docFromLayout(l)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// Read decodes and validates a bare layout document from r.
func Read(r io.Reader) (*grid.Layout, error) {
	var doc layoutDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, ErrInvalidLayout)
	}
	return layoutFromDoc(doc)
}

// Marshal returns the layout's JSON document as bytes, the form the
// persistence sink stores.
func Marshal(l *grid.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and validates a layout from its JSON document bytes.
func Unmarshal(data []byte) (*grid.Layout, error) {
	return Read(bytes.NewReader(data))
}
