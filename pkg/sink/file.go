package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is a directory-backed sink: one file per key. It is the CLI default
// so a dashboard survives restarts without any external service.
type File struct {
	dir string
}

// NewFile creates a file sink rooted at dir, creating it if needed.
// An empty dir defaults to ~/.local/share/tiler.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "tiler")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the sink's root directory.
func (f *File) Dir() string { return f.dir }

// Get reads the value stored for key. A missing file is a miss, not an
// error.
func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the value for key. The write goes through a temp file and
// rename so a crash mid-write never leaves a truncated layout behind.
func (f *File) Set(ctx context.Context, key string, data []byte) error {
	path := f.path(key)
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key if it exists.
func (f *File) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file sink.
func (f *File) Close() error { return nil }

// path maps a key to a file inside the sink directory. Characters that are
// unsafe in filenames are replaced so arbitrary keys cannot escape the dir.
func (f *File) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(f.dir, safe+".json")
}

// Ensure File implements Sink.
var _ Sink = (*File)(nil)
