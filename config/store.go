// Copyright (c) 2025 BVK Chaitanya

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store manages the config file on disk. Every successful mutation is
// validated first and then written out atomically, so the on-disk file never
// holds an invalid configuration.
type Store struct {
	mu sync.Mutex

	fpath string

	current *Config
}

// Open loads the config file at fpath, creating it with defaults when it
// doesn't exist. A file with unparseable or invalid content is an error; it
// is never silently replaced.
func Open(fpath string) (*Store, error) {
	s := &Store{fpath: fpath}

	data, err := os.ReadFile(fpath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		s.current = Default()
		if err := s.writeFile(s.current); err != nil {
			return nil, err
		}
		return s, nil
	}

	c := new(Config)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", fpath, err)
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("config file %q is invalid: %w", fpath, err)
	}
	s.current = c
	return s, nil
}

// Current returns a deep copy of the current configuration.
func (s *Store) Current() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Save validates the input and replaces the current configuration on disk.
// The in-memory and on-disk state are unchanged when validation or the write
// fails.
func (s *Store) Save(c *Config) error {
	if err := c.Check(); err != nil {
		return err
	}
	clone := c.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeFile(clone); err != nil {
		return err
	}
	s.current = clone
	return nil
}

func (s *Store) writeFile(c *Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("could not json-encode config: %w", err)
	}
	tmp := s.fpath + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	if err := os.Rename(tmp, s.fpath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace config file: %w", err)
	}
	return nil
}

// DefaultPath returns the config file path under the data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "config.json")
}
