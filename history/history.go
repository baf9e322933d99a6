// Copyright (c) 2025 BVK Chaitanya

// Package history records observed product prices in an append-only JSON file
// keyed by product URL.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pricemon/pricemon/api"
	"github.com/shopspring/decimal"
)

// Store keeps the full price history in memory and flushes it to disk on
// demand. Appends are buffered so a sweep over many products costs a single
// file write.
type Store struct {
	mu sync.Mutex

	fpath string

	history map[string][]*api.PricePoint

	dirty bool
}

// Open loads the history file at fpath. A missing file starts an empty
// history.
func Open(fpath string) (*Store, error) {
	s := &Store{
		fpath:   fpath,
		history: make(map[string][]*api.PricePoint),
	}
	data, err := os.ReadFile(fpath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("could not read history file: %w", err)
	}
	if err := json.Unmarshal(data, &s.history); err != nil {
		// History is derived data; an unreadable file starts over instead
		// of blocking the daemon.
		slog.Warn("could not parse history file; starting empty (ignored)", "file", fpath, "error", err)
		s.history = make(map[string][]*api.PricePoint)
	}
	return s, nil
}

// Append records a price observation for the given product URL. Existing
// entries for the URL are never modified or removed.
func (s *Store) Append(url string, price decimal.Decimal, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[url] = append(s.history[url], &api.PricePoint{
		Price:     price,
		Timestamp: at.UTC(),
	})
	s.dirty = true
}

// Flush writes buffered appends to disk. Flush is a no-op when nothing has
// changed since the last flush.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("could not json-encode history: %w", err)
	}
	tmp := s.fpath + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("could not write history file: %w", err)
	}
	if err := os.Rename(tmp, s.fpath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace history file: %w", err)
	}
	s.dirty = false
	return nil
}

// Snapshot returns a deep copy of the recorded history. When url is non-empty
// only that product's entries are included. When limit is positive only the
// most recent limit entries per url are included.
func (s *Store) Snapshot(url string, limit int) map[string][]*api.PricePoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]*api.PricePoint)
	for u, points := range s.history {
		if len(url) != 0 && u != url {
			continue
		}
		if limit > 0 && len(points) > limit {
			points = points[len(points)-limit:]
		}
		copied := make([]*api.PricePoint, len(points))
		for i, p := range points {
			cp := *p
			copied[i] = &cp
		}
		result[u] = copied
	}
	return result
}

// DefaultPath returns the history file path under the data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "price_history.json")
}
