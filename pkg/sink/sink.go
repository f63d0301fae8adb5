// Package sink defines the key-value persistence sink layouts are saved
// to, with implementations for different backends:
//   - memory: in-process storage for tests and scratch sessions
//   - file: JSON files in a directory, the CLI default
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage, one document per key
//
// # Contract
//
// A Sink is a plain key-value store: Get reports a miss rather than an
// error when the key is absent, and Set overwrites unconditionally. The
// engine stores the serialized layout document under a single key and
// treats the sink as fire-and-forget: a write failure is logged by the
// caller and never propagates into the in-memory layout, which stays
// authoritative for the session.
//
// # Usage
//
//	s, err := sink.NewFile("")            // ~/.local/share/tiler
//	s, err := sink.NewRedis(ctx, sink.RedisConfig{Addr: "localhost:6379"})
//	s, err := sink.NewMongo(ctx, sink.MongoConfig{URI: "mongodb://localhost"})
//	s := sink.NewMemory()
//
//	err = s.Set(ctx, "layout", data)
//	data, ok, err := s.Get(ctx, "layout")
package sink

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when a backend cannot be reached. Callers at
// the persistence boundary log it and continue with in-memory state.
var ErrUnavailable = errors.New("sink unavailable")

// Sink is a key-value store for serialized layout documents.
type Sink interface {
	// Get retrieves the value for key. A missing key is (nil, false, nil),
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
