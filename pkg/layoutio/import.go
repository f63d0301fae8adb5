package layoutio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// Import decodes a layout from r, accepting either a bare layout document
// or an export envelope, so exported files import directly. The result is
// fully validated; on any error the caller's current layout is untouched
// because nothing is mutated here.
func Import(r io.Reader) (*grid.Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	// An envelope is recognized by its version field; a bare layout
	// document has none.
	var probe struct {
		Version *int            `json:"version"`
		Layout  json.RawMessage `json:"layout"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, ErrInvalidLayout)
	}
	if probe.Version == nil {
		return Read(bytes.NewReader(data))
	}

	if *probe.Version != ExportVersion {
		return nil, fmt.Errorf("version %d: %w", *probe.Version, ErrUnsupportedVersion)
	}
	if len(probe.Layout) == 0 {
		return nil, fmt.Errorf("envelope without layout: %w", ErrInvalidLayout)
	}
	return Read(bytes.NewReader(probe.Layout))
}

// ImportFile reads and validates a layout (bare or enveloped) from the
// file at path.
func ImportFile(path string) (*grid.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f)
}
