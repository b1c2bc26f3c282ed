// Package snapshot captures FlexBuffer state and persists it.
//
// A Snapshot holds a buffer's configuration, content and cursor position.
// Snapshots are msgpack-encoded and kept in a Store, either BadgerDB-backed
// (on disk or in memory) or a plain in-memory map for tests.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// ErrNotFound is returned when a snapshot does not exist in the store.
var ErrNotFound = errors.New("snapshot: not found")

// Snapshot is the saved state of a FlexBuffer.
type Snapshot struct {
	ID        string        `msgpack:"id" json:"id" yaml:"id"`
	Name      string        `msgpack:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	CreatedAt time.Time     `msgpack:"created_at" json:"created_at" yaml:"created_at"`
	Config    buffer.Config `msgpack:"config" json:"config" yaml:"config"`
	Position  int           `msgpack:"position" json:"position" yaml:"position"`
	Data      []byte        `msgpack:"data" json:"-" yaml:"-"`
}

// Info describes a stored snapshot without its content.
type Info struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Size      int       `json:"size" yaml:"size"`
	Position  int       `json:"position" yaml:"position"`
}

// Info returns the snapshot's metadata.
func (s *Snapshot) Info() Info {
	return Info{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		Size:      len(s.Data),
		Position:  s.Position,
	}
}

// Take captures the configuration, content and position of b. IDs are
// UUIDv7, so they sort by creation time.
func Take(name string, b *buffer.FlexBuffer) (*Snapshot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("snapshot: new id: %w", err)
	}
	cfg := b.Config()
	cfg.Logger = nil
	return &Snapshot{
		ID:        id.String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
		Position:  b.Position(),
		Data:      append([]byte(nil), b.Bytes()...),
	}, nil
}

// Restore builds a new FlexBuffer with the snapshot's configuration,
// content and position. logger may be nil.
func (s *Snapshot) Restore(logger *slog.Logger) (*buffer.FlexBuffer, error) {
	cfg := s.Config
	cfg.Logger = logger
	b := buffer.NewFlex(&cfg)
	if _, err := b.WriteBytes(s.Data); err != nil {
		b.Close()
		return nil, fmt.Errorf("snapshot: restore %s: %w", s.ID, err)
	}
	b.MoveTo(s.Position)
	return b, nil
}

func encode(s *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &s, nil
}

// Store persists snapshots by ID.
type Store interface {
	// Save stores s, replacing any snapshot with the same ID.
	Save(ctx context.Context, s *Snapshot) error

	// Load returns the snapshot with the given ID, or ErrNotFound.
	Load(ctx context.Context, id string) (*Snapshot, error)

	// Delete removes a snapshot. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List iterates over stored snapshots in ID order, which is creation
	// order for IDs made by Take.
	List(ctx context.Context) iter.Seq2[Info, error]

	// Close releases any resources held by the store.
	Close() error
}

// Find resolves ref as a snapshot ID, falling back to the most recent
// snapshot whose name is ref.
func Find(ctx context.Context, st Store, ref string) (*Snapshot, error) {
	s, err := st.Load(ctx, ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return s, err
	}

	var match string
	for info, err := range st.List(ctx) {
		if err != nil {
			return nil, err
		}
		if info.Name == ref {
			match = info.ID
		}
	}
	if match == "" {
		return nil, fmt.Errorf("snapshot: %q: %w", ref, ErrNotFound)
	}
	return st.Load(ctx, match)
}
