package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the snapshot in memory and mirrors every mutation into
// a single pretty-printed JSON document on disk. Writes go through a
// temp file and rename so a crash mid-write never corrupts the document.
type FileStore struct {
	path string

	mu      sync.RWMutex
	current *Snapshot
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.current = Seed()
		if err := s.write(s.current); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read store file: %w", err)
	default:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse store file: %w", err)
		}
		s.current = &snap
	}

	return s, nil
}

func (s *FileStore) View(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.current)
}

func (s *FileStore) Update(ctx context.Context, fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := clone(s.current)
	if err != nil {
		return err
	}

	if err := fn(next); err != nil {
		return err
	}

	if err := s.write(next); err != nil {
		return err
	}

	s.current = next
	return nil
}

func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) write(snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}
