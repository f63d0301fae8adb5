package layoutio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content"
	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

func sampleLayout() *grid.Layout {
	l := grid.NewLayout("Sample", 12)
	l.Tiles = []*grid.Tile{
		{ID: "tile-1", Title: "Quote", X: 0, Y: 0, Width: 4, Height: 2,
			MinWidth: 2, MaxWidth: 6, Content: content.EquityQuote("AAPL")},
		{ID: "tile-2", Title: "News", X: 4, Y: 0, Width: 8, Height: 4,
			Content: content.News("https://example.com/feed.xml", 5)},
		{ID: "tile-3", Title: "Note", X: 0, Y: 2, Width: 4, Height: 2,
			Content: content.Placeholder("hello")},
	}
	return l
}

func TestWriteRead_RoundTrip(t *testing.T) {
	orig := sampleLayout()

	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		t.Fatalf("Write() = %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() = %v", err)
	}

	if got.ID != orig.ID || got.Name != orig.Name || got.GridColumns != orig.GridColumns {
		t.Errorf("layout header = (%s, %s, %d), want (%s, %s, %d)",
			got.ID, got.Name, got.GridColumns, orig.ID, orig.Name, orig.GridColumns)
	}
	if len(got.Tiles) != len(orig.Tiles) {
		t.Fatalf("len(Tiles) = %d, want %d", len(got.Tiles), len(orig.Tiles))
	}
	for i, want := range orig.Tiles {
		tile := got.Tiles[i]
		if tile.ID != want.ID || tile.X != want.X || tile.Y != want.Y ||
			tile.Width != want.Width || tile.Height != want.Height {
			t.Errorf("tile %s geometry changed in round trip", want.ID)
		}
		if tile.MinWidth != want.MinWidth || tile.MaxWidth != want.MaxWidth {
			t.Errorf("tile %s constraints changed in round trip", want.ID)
		}
	}
	if got.Tiles[0].Content == nil || got.Tiles[0].Content.Symbol != "AAPL" {
		t.Error("quote content lost in round trip")
	}
	if got.Tiles[1].Content == nil || got.Tiles[1].Content.Limit != 5 {
		t.Error("news content lost in round trip")
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"id": "x", "tiles": [`},
		{"wrong field type", `{"id": "x", "gridColumns": "twelve", "tiles": []}`},
		{"tiles not an array", `{"id": "x", "gridColumns": 12, "tiles": "not-an-array"}`},
		{"missing columns", `{"id": "x", "name": "y", "tiles": []}`},
		{"tile without id", `{"id": "x", "gridColumns": 12, "tiles": [{"title": "a", "x": 0, "y": 0, "width": 2, "height": 2}]}`},
		{"zero tile size", `{"id": "x", "gridColumns": 12, "tiles": [{"id": "t", "x": 0, "y": 0, "width": 0, "height": 2}]}`},
		{"tile out of bounds", `{"id": "x", "gridColumns": 4, "tiles": [{"id": "t", "x": 2, "y": 0, "width": 4, "height": 2}]}`},
		{"overlapping tiles", `{"id": "x", "gridColumns": 12, "tiles": [
			{"id": "a", "x": 0, "y": 0, "width": 4, "height": 2},
			{"id": "b", "x": 2, "y": 1, "width": 4, "height": 2}]}`},
		{"duplicate tile ids", `{"id": "x", "gridColumns": 12, "tiles": [
			{"id": "a", "x": 0, "y": 0, "width": 2, "height": 2},
			{"id": "a", "x": 4, "y": 0, "width": 2, "height": 2}]}`},
		{"bad content kind", `{"id": "x", "gridColumns": 12, "tiles": [
			{"id": "a", "x": 0, "y": 0, "width": 2, "height": 2, "content": {"type": "widget"}}]}`},
		{"quote without symbol", `{"id": "x", "gridColumns": 12, "tiles": [
			{"id": "a", "x": 0, "y": 0, "width": 2, "height": 2, "content": {"type": "equity-quote"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Read() = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	data, err := Marshal(sampleLayout())
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if len(got.Tiles) != 3 {
		t.Errorf("len(Tiles) = %d, want 3", len(got.Tiles))
	}
}

func TestWrite_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleLayout()); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	out := buf.String()
	for _, field := range []string{`"gridColumns"`, `"tiles"`, `"minWidth"`, `"maxWidth"`, `"feedUrl"`} {
		if !strings.Contains(out, field) {
			t.Errorf("output missing field %s", field)
		}
	}
	// Unset constraints must be omitted, not zero-filled.
	if strings.Contains(out, `"minHeight"`) {
		t.Error("output contains minHeight although no tile sets it")
	}
}
