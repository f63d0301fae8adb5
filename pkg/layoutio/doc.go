// Package layoutio serializes dashboard layouts to and from JSON, and
// renders layout snapshots as SVG.
//
// # Formats
//
// The persisted layout document is a JSON object with the layout's
// identity, column count, timestamps (RFC 3339 strings) and tile array.
// [Write] and [Read] handle this bare document; it is what the persistence
// sink stores under the layout key.
//
// [Export] wraps the same document in an envelope carrying a format
// version, the export date and summary metadata (tile count, grid columns)
// for download files. [Import] accepts either form, so an exported file can
// be imported directly.
//
// # Validation
//
// Import validates shape before anything reaches the store: tiles must be
// an array, every tile needs a non-empty ID and positive integer size, and
// the whole layout must satisfy the grid invariants (unique IDs, in
// bounds, no overlap). Invalid input is rejected with a wrapped
// [ErrInvalidLayout] and the caller's current layout stays untouched.
package layoutio
