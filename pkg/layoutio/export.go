package layoutio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// ExportVersion is the current export envelope format version.
const ExportVersion = 1

// Envelope wraps a layout document for download files: a format version,
// the export timestamp, and summary metadata a consumer can show without
// parsing the whole layout.
type Envelope struct {
	Version    int            `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	Metadata   ExportMetadata `json:"metadata"`
	Layout     layoutDoc      `json:"layout"`
}

// ExportMetadata summarizes the wrapped layout.
type ExportMetadata struct {
	TileCount   int `json:"tileCount"`
	GridColumns int `json:"gridColumns"`
}

// Export writes the layout to w wrapped in the export envelope.
func Export(w io.Writer, l *grid.Layout) error {
	env := Envelope{
		Version:    ExportVersion,
		ExportDate: time.Now(),
		Metadata:   ExportMetadata{TileCount: len(l.Tiles), GridColumns: l.GridColumns},
		Layout:     docFromLayout(l),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ExportFile writes the export envelope to the file at path, creating or
// truncating it.
func ExportFile(path string, l *grid.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Export(f, l); err != nil {
		return err
	}
	return f.Close()
}
