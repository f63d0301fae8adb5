package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// Config is the application configuration read from the TOML config file.
// Every field has a usable default; a missing config file is not an error.
type Config struct {
	Dashboard DashboardConfig `toml:"dashboard"`
	Grid      grid.Config     `toml:"grid"`
	Sink      SinkConfig      `toml:"sink"`
	Content   ContentConfig   `toml:"content"`
}

// DashboardConfig names the dashboard and tunes persistence cadence.
type DashboardConfig struct {
	Name string `toml:"name"`
	Key  string `toml:"key"` // sink key the layout is stored under
	// DebounceMS is the autosave debounce window in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns the autosave window as a duration.
func (d DashboardConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

// SinkConfig selects and configures the persistence backend.
type SinkConfig struct {
	Backend string `toml:"backend"` // memory|file|redis|mongo

	FileDir string `toml:"file_dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// ContentConfig configures tile content providers.
type ContentConfig struct {
	// Mock serves canned quote and news data instead of fetching. On by
	// default so the dashboard works offline.
	Mock     bool   `toml:"mock"`
	QuoteURL string `toml:"quote_url"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Dashboard: DashboardConfig{
			Name:       "Dashboard",
			Key:        "layout",
			DebounceMS: 250,
		},
		Grid: grid.DefaultConfig(),
		Sink: SinkConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Content: ContentConfig{Mock: true},
	}
}

// loadConfig reads the TOML config at path. An empty path falls back to
// $TILER_CONFIG, then ~/.config/tiler/config.toml. A missing file yields
// the defaults; a malformed file is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("TILER_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "tiler", "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
