// Package pkg provides the core libraries for the Tiler grid dashboard.
//
// # Overview
//
// Tiler places content tiles on a responsive column grid. Tiles are moved
// and resized with drag gestures, collisions are rejected rather than
// resolved, and the whole layout round-trips through JSON. The pkg
// directory is organized into five areas:
//
//  1. [grid] - Domain logic (tiles, layouts, placement, breakpoints)
//  2. [grid/gesture] - Drag and resize controllers over a grid store
//  3. [layoutio] - Layout serialization (JSON documents, export envelopes, SVG)
//  4. [sink] + [persist] - Persistence backends and autosave plumbing
//  5. [content] - Tile content providers (quotes, news, placeholders)
//
// # Architecture
//
// The typical data flow through Tiler:
//
//	pointer / keyboard events
//	         ↓
//	    [grid/gesture] package (preview, snap, validate)
//	         ↓
//	    [grid] package (store mutations, collision rules)
//	         ↓
//	    [persist] package (debounced autosave)
//	         ↓
//	    [sink] backends (memory, file, Redis, MongoDB)
//
// # Quick Start
//
// Create a store, place tiles, and export the layout:
//
//	store := grid.NewStore(grid.NewLayout("Desk", 12), grid.DefaultConfig())
//	store.CreateTile(grid.TileSpec{Title: "Quotes", Width: 4, Height: 2,
//	    Content: content.EquityQuote("AAPL")})
//
//	var buf bytes.Buffer
//	layoutio.Export(&buf, store.Snapshot())
//
// # Main Packages
//
// [grid] - The tile data model and its single-writer store. Placement goes
// through a row-major first-fit allocator; every mutation enforces the
// no-overlap and bounds invariants.
//
// [grid/gesture] - Pure-preview drag and resize state machines. Nothing
// touches the store until the gesture commits, so cancel is a no-op.
//
// [layoutio] - The JSON wire format, the versioned export envelope import
// accepts back, and a static SVG snapshot renderer.
//
// [sink] - The key/value persistence interface with memory, file
// (atomic-rename), Redis, and MongoDB backends.
//
// [persist] - Debounced autosave on store mutations, startup restore, and
// a file watcher that live-reloads exported layouts.
//
// [content] - The tagged content union tiles carry and the provider
// registry that renders it, size-aware, with offline mock data by default.
//
// [httputil] - Retry/backoff HTTP helpers shared by the content providers.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/grid/...       # Specific package
//	go test -run Example ./...   # Examples only
//
// [grid]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid
// [grid/gesture]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid/gesture
// [layoutio]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/layoutio
// [sink]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/sink
// [persist]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/persist
// [content]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/content
// [httputil]: https://pkg.go.dev/github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/httputil
package pkg
