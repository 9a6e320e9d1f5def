package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/younginvestor"
)

// File keeps each slot as one file <slot><ext> within a base directory.
type File struct {
	baseDir string
	codec   codec
	mu      sync.RWMutex
}

var _ Store = (*File)(nil)

func NewFile(baseDir string, c codec) *File {
	return &File{baseDir: baseDir, codec: c}
}

func (s *File) Load(ctx context.Context, slot string) (younginvestor.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return younginvestor.Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.pathFor(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return younginvestor.Snapshot{}, fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	if err != nil {
		return younginvestor.Snapshot{}, err
	}
	return s.codec.unmarshal(data)
}

// Save writes the slot through a temporary file so a crash never leaves a
// truncated save behind.
func (s *File) Save(ctx context.Context, slot string, snap younginvestor.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	data, err := s.codec.marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode slot %q: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return err
	}
	path := s.pathFor(slot)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *File) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), s.codec.ext); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *File) Delete(ctx context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(slot)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
		}
		return err
	}
	return nil
}

func (s *File) Close() error { return nil }

func (s *File) pathFor(slot string) string {
	return filepath.Join(s.baseDir, slot+s.codec.ext)
}
