package snapshot_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/snapshot"
)

func newBadgerStore(t *testing.T) snapshot.Store {
	t.Helper()
	s, err := snapshot.NewBadger(snapshot.BadgerOptions{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func stores(t *testing.T) map[string]snapshot.Store {
	return map[string]snapshot.Store{
		"memory": snapshot.NewMemory(),
		"badger": newBadgerStore(t),
	}
}

func newBuffer(t *testing.T) *buffer.FlexBuffer {
	t.Helper()
	b := buffer.NewFlex(&buffer.Config{PageSize: 64, MaxLength: 1024, HouseKeep: time.Minute})
	t.Cleanup(func() { b.Close() })
	_, err := b.WriteString("hello, snapshot", buffer.UTF8)
	require.NoError(t, err)
	b.MoveTo(7)
	return b
}

func TestTakeRestore(t *testing.T) {
	b := newBuffer(t)

	s, err := snapshot.Take("greeting", b)
	require.NoError(t, err)
	assert.Equal(t, "greeting", s.Name)
	assert.Equal(t, 7, s.Position)
	assert.Equal(t, []byte("hello, snapshot"), s.Data)
	assert.Equal(t, 64, s.Config.PageSize)
	assert.Nil(t, s.Config.Logger)
	assert.NotEmpty(t, s.ID)

	// The snapshot owns its data.
	b.MoveTo(0)
	b.WriteString("J", buffer.UTF8)
	assert.Equal(t, byte('h'), s.Data[0])

	r, err := s.Restore(nil)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, []byte("hello, snapshot"), r.Bytes())
	assert.Equal(t, 7, r.Position())
	assert.Equal(t, 64, r.PageSize())
	assert.Equal(t, 1024, r.MaxSize())
	assert.Equal(t, time.Minute, r.HouseKeep())
}

func TestRestore_LimitExceeded(t *testing.T) {
	s := &snapshot.Snapshot{
		ID:     "x",
		Config: buffer.Config{PageSize: 4, MaxLength: 8},
		Data:   make([]byte, 9),
	}
	_, err := s.Restore(nil)
	require.ErrorIs(t, err, buffer.ErrLimitExceeded)
}

func TestStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Load(ctx, "missing")
			require.ErrorIs(t, err, snapshot.ErrNotFound)

			s, err := snapshot.Take("first", newBuffer(t))
			require.NoError(t, err)
			require.NoError(t, st.Save(ctx, s))

			got, err := st.Load(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.Equal(t, s.Name, got.Name)
			assert.Equal(t, s.Data, got.Data)
			assert.Equal(t, s.Position, got.Position)
			assert.Equal(t, s.Config, got.Config)
			assert.True(t, s.CreatedAt.Equal(got.CreatedAt))

			require.NoError(t, st.Delete(ctx, s.ID))
			_, err = st.Load(ctx, s.ID)
			require.ErrorIs(t, err, snapshot.ErrNotFound)

			require.NoError(t, st.Delete(ctx, "never-existed"))
		})
	}
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b := newBuffer(t)
			var ids []string
			for i := range 3 {
				s, err := snapshot.Take(fmt.Sprintf("snap-%d", i), b)
				require.NoError(t, err)
				require.NoError(t, st.Save(ctx, s))
				ids = append(ids, s.ID)
			}

			var got []string
			for info, err := range st.List(ctx) {
				require.NoError(t, err)
				assert.Equal(t, 15, info.Size)
				got = append(got, info.ID)
			}
			assert.Equal(t, ids, got)

			// Early break.
			n := 0
			for range st.List(ctx) {
				n++
				break
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b := newBuffer(t)
			first, err := snapshot.Take("tagged", b)
			require.NoError(t, err)
			require.NoError(t, st.Save(ctx, first))

			b.MoveTo(1)
			second, err := snapshot.Take("tagged", b)
			require.NoError(t, err)
			require.NoError(t, st.Save(ctx, second))

			got, err := snapshot.Find(ctx, st, first.ID)
			require.NoError(t, err)
			assert.Equal(t, first.ID, got.ID)

			got, err = snapshot.Find(ctx, st, "tagged")
			require.NoError(t, err)
			assert.Equal(t, second.ID, got.ID)
			assert.Equal(t, 1, got.Position)

			_, err = snapshot.Find(ctx, st, "nope")
			require.ErrorIs(t, err, snapshot.ErrNotFound)
		})
	}
}

func TestBadger_RequiresDir(t *testing.T) {
	_, err := snapshot.NewBadger(snapshot.BadgerOptions{})
	require.Error(t, err)
}

func TestBadger_OnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := snapshot.NewBadger(snapshot.BadgerOptions{Dir: dir})
	require.NoError(t, err)
	s, err := snapshot.Take("disk", newBuffer(t))
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, s))
	require.NoError(t, st.Close())

	st, err = snapshot.NewBadger(snapshot.BadgerOptions{Dir: dir})
	require.NoError(t, err)
	defer st.Close()
	got, err := st.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Data, got.Data)
}
