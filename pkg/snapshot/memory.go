package snapshot

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"sync"
)

// Memory is an in-memory Store. Snapshots are kept msgpack-encoded, like
// Badger keeps them, so stored values never alias the caller's.
// It is safe for concurrent use and intended primarily for testing.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, s *Snapshot) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[s.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	data, ok := m.data[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("snapshot: %s: %w", id, ErrNotFound)
	}
	return decode(data)
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.data, id)
	m.mu.Unlock()
	return nil
}

func (m *Memory) List(_ context.Context) iter.Seq2[Info, error] {
	m.mu.RLock()
	ids := make([]string, 0, len(m.data))
	values := make(map[string][]byte, len(m.data))
	for id, v := range m.data {
		ids = append(ids, id)
		values[id] = v
	}
	m.mu.RUnlock()
	sort.Strings(ids)

	return func(yield func(Info, error) bool) {
		for _, id := range ids {
			s, err := decode(values[id])
			if err != nil {
				if !yield(Info{}, err) {
					return
				}
				continue
			}
			if !yield(s.Info(), nil) {
				return
			}
		}
	}
}

func (m *Memory) Close() error {
	return nil
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*Badger)(nil)
)
