package store

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"

	"github.com/etnz/younginvestor"
)

// Memory keeps snapshots in memory. Useful for tests or ephemeral runs.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Load returns a copy of the snapshot in slot.
func (m *Memory) Load(ctx context.Context, slot string) (younginvestor.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return younginvestor.Snapshot{}, err
	}
	m.mu.RLock()
	data, ok := m.slots[slot]
	m.mu.RUnlock()
	if !ok {
		return younginvestor.Snapshot{}, fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	// snapshots are kept encoded so callers never share maps with the store
	return jsonCodec.unmarshal(data)
}

func (m *Memory) Save(ctx context.Context, slot string, s younginvestor.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	data, err := jsonCodec.marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = data
	return nil
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.slots)), nil
}

func (m *Memory) Delete(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[slot]; !ok {
		return fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	delete(m.slots, slot)
	return nil
}

func (m *Memory) Close() error { return nil }
