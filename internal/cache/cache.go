// Package cache persists the most recent primary snapshot to disk so the
// explorer can start without a network round trip.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ratcrate/ratcrate-tui/internal/registry"
)

// MaxAge is the freshness window: cache files older than this are ignored
// and the primary fetch path runs again.
const MaxAge = 7 * 24 * time.Hour

const (
	dirName  = "ratcrate"
	fileName = "ratcrate.json"
)

// DefaultPath returns the cache file location under the user cache
// directory, creating the parent directory when missing.
func DefaultPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}

// Stale reports whether the cache file is missing or older than maxAge.
func Stale(path string, maxAge time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return time.Since(info.ModTime()) > maxAge
}

// Load reads a snapshot from the cache file. It does not consult the
// freshness window; callers combine it with Stale.
func Load(path string) (registry.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("read cache file: %w", err)
	}
	var snap registry.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return registry.Snapshot{}, fmt.Errorf("parse cache file: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot to the cache file, replacing any previous copy.
func Save(path string, snap registry.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
