package layoutio

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportImport_RoundTrip(t *testing.T) {
	orig := sampleLayout()

	var buf bytes.Buffer
	if err := Export(&buf, orig); err != nil {
		t.Fatalf("Export() = %v", err)
	}
	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import() = %v", err)
	}

	if got.ID != orig.ID || len(got.Tiles) != len(orig.Tiles) {
		t.Errorf("round trip = (%s, %d tiles), want (%s, %d tiles)",
			got.ID, len(got.Tiles), orig.ID, len(orig.Tiles))
	}
}

func TestExport_Envelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleLayout()); err != nil {
		t.Fatalf("Export() = %v", err)
	}

	var env struct {
		Version  int `json:"version"`
		Metadata struct {
			TileCount   int `json:"tileCount"`
			GridColumns int `json:"gridColumns"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("envelope not valid JSON: %v", err)
	}
	if env.Version != ExportVersion {
		t.Errorf("version = %d, want %d", env.Version, ExportVersion)
	}
	if env.Metadata.TileCount != 3 || env.Metadata.GridColumns != 12 {
		t.Errorf("metadata = %+v, want 3 tiles on 12 columns", env.Metadata)
	}
}

func TestImport_BareLayout(t *testing.T) {
	data, err := Marshal(sampleLayout())
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}

	got, err := Import(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Import(bare) = %v", err)
	}
	if len(got.Tiles) != 3 {
		t.Errorf("len(Tiles) = %d, want 3", len(got.Tiles))
	}
}

func TestImport_UnsupportedVersion(t *testing.T) {
	input := `{"version": 7, "layout": {"id": "x", "gridColumns": 12, "tiles": []}}`

	_, err := Import(strings.NewReader(input))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Import(version 7) = %v, want ErrUnsupportedVersion", err)
	}
}

func TestImport_EnvelopeWithoutLayout(t *testing.T) {
	_, err := Import(strings.NewReader(`{"version": 1}`))
	if !errors.Is(err, ErrInvalidLayout) {
		t.Errorf("Import() = %v, want ErrInvalidLayout", err)
	}
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	orig := sampleLayout()

	if err := ExportFile(path, orig); err != nil {
		t.Fatalf("ExportFile() = %v", err)
	}
	got, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() = %v", err)
	}
	if got.ID != orig.ID {
		t.Errorf("ID = %q, want %q", got.ID, orig.ID)
	}
}

func TestImportFile_Missing(t *testing.T) {
	if _, err := ImportFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportFile(missing) = nil, want error")
	}
}
