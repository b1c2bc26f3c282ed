package buffer

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// FlexBuffer is a growable byte buffer with a read/write cursor.
//
// Capacity grows in whole pages whenever a size change needs more pages
// than are allocated, and never beyond the configured maximum. After a
// period without growth (Config.HouseKeep) the buffer drops its content and
// shrinks back to MinPages. Every capacity change replaces the backing store
// with a freshly allocated one.
//
// Writes past the logical size extend it by exactly the overrun. Reads are
// bounds-checked against the logical size.
//
// All methods are safe for concurrent use; the house-keeping timer runs on
// its own goroutine and takes the same lock. Slices returned by ReadBytes,
// ReadRest and Bytes are borrowed views into the backing store. They are
// only valid until the next mutating call, which may reallocate the store.
type FlexBuffer struct {
	mu sync.Mutex

	// c.buf is the backing store; its length is the capacity.
	c cursor

	pageSize  int
	minPages  int
	maxSize   int
	houseKeep time.Duration
	logger    *slog.Logger

	timer  idleTimer
	closed bool
}

// NewFlex creates a FlexBuffer with MinPages pages allocated.
// Pass nil for the default configuration.
func NewFlex(cfg *Config) *FlexBuffer {
	c := cfg.WithDefaults()
	return &FlexBuffer{
		c:         cursor{buf: make([]byte, c.PageSize*c.MinPages)},
		pageSize:  c.PageSize,
		minPages:  c.MinPages,
		maxSize:   c.MaxLength,
		houseKeep: c.HouseKeep,
		logger:    c.Logger,
	}
}

// Config returns the effective configuration of the buffer.
func (b *FlexBuffer) Config() Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Config{
		PageSize:  b.pageSize,
		MinPages:  b.minPages,
		MaxLength: b.maxSize,
		HouseKeep: b.houseKeep,
		Logger:    b.logger,
	}
}

// PageSize returns the growth granularity in bytes.
func (b *FlexBuffer) PageSize() int { return b.pageSize }

// MinPages returns the floor capacity in pages.
func (b *FlexBuffer) MinPages() int { return b.minPages }

// MaxSize returns the ceiling on the logical size in bytes.
func (b *FlexBuffer) MaxSize() int { return b.maxSize }

// Capacity returns the number of bytes allocated for the backing store.
func (b *FlexBuffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.c.buf)
}

// Size returns the logical size.
func (b *FlexBuffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.size
}

// Position returns the cursor offset.
func (b *FlexBuffer) Position() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.pos
}

// EOF reports whether the cursor is at or past the logical size.
func (b *FlexBuffer) EOF() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.eof()
}

// MoveTo sets the cursor, clamped into [0, Size()].
func (b *FlexBuffer) MoveTo(pos int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.c.moveTo(pos)
}

// MoveBy moves the cursor by delta, clamped into [0, Size()].
func (b *FlexBuffer) MoveBy(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.c.moveBy(delta)
}

// SetSize sets the logical size to n, allocating more pages when n needs
// them. Content in [0, old size) is preserved. If n needs more than the
// maximum size, SetSize returns an error wrapping ErrLimitExceeded and
// changes nothing. The cursor is clamped to the new size. Negative values
// are treated as zero.
func (b *FlexBuffer) SetSize(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.setSizeLocked(n)
}

// GrowSize changes the logical size by delta. See SetSize.
func (b *FlexBuffer) GrowSize(delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if delta > b.maxSize-b.c.size {
		return b.limitError(delta)
	}
	return b.setSizeLocked(b.c.size + delta)
}

func (b *FlexBuffer) setSizeLocked(n int) error {
	n = max(n, 0)
	if n > b.maxSize || ceilDiv(n, b.pageSize) > b.maxSize/b.pageSize {
		return fmt.Errorf("buffer: size %d exceeds max size %d: %w", n, b.maxSize, ErrLimitExceeded)
	}

	pages := ceilDiv(n, b.pageSize)
	if pages > len(b.c.buf)/b.pageSize {
		store := make([]byte, pages*b.pageSize)
		copy(store, b.c.buf[:b.c.size])
		b.c.buf = store
		b.logger.Debug("buffer: grow", "capacity", len(store), "size", n)
		b.scheduleLocked(true)
	} else {
		b.scheduleLocked(false)
	}

	b.c.size = n
	if b.c.pos > n {
		b.c.pos = n
	}
	return nil
}

// ensureSizeLocked extends the logical size so that extra bytes fit at the
// cursor.
func (b *FlexBuffer) ensureSizeLocked(extra int) error {
	if extra > b.maxSize-b.c.pos {
		return b.limitError(extra)
	}
	if need := b.c.pos + extra - b.c.size; need > 0 {
		return b.setSizeLocked(b.c.size + need)
	}
	return nil
}

// Reset sets the size and position to zero. With shrink set the backing
// store is immediately reduced to its floor, as the idle timer would.
func (b *FlexBuffer) Reset(shrink bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.c.size = 0
	b.c.pos = 0
	if shrink {
		b.houseKeepLocked()
	}
}

// Bytes returns exactly the logical content [0, Size()). It never includes
// unused capacity. The slice is borrowed; callers must not modify it or keep
// it across mutations.
func (b *FlexBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.buf[:b.c.size:b.c.size]
}

func (b *FlexBuffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

func (b *FlexBuffer) ReadUint8() (uint8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.uint8()
}

func (b *FlexBuffer) ReadInt16BE() (int16, error) {
	v, err := b.readUint16(binary.BigEndian)
	return int16(v), err
}

func (b *FlexBuffer) ReadInt16LE() (int16, error) {
	v, err := b.readUint16(binary.LittleEndian)
	return int16(v), err
}

func (b *FlexBuffer) ReadUint16BE() (uint16, error) { return b.readUint16(binary.BigEndian) }
func (b *FlexBuffer) ReadUint16LE() (uint16, error) { return b.readUint16(binary.LittleEndian) }

func (b *FlexBuffer) ReadInt32BE() (int32, error) {
	v, err := b.readUint32(binary.BigEndian)
	return int32(v), err
}

func (b *FlexBuffer) ReadInt32LE() (int32, error) {
	v, err := b.readUint32(binary.LittleEndian)
	return int32(v), err
}

func (b *FlexBuffer) ReadUint32BE() (uint32, error) { return b.readUint32(binary.BigEndian) }
func (b *FlexBuffer) ReadUint32LE() (uint32, error) { return b.readUint32(binary.LittleEndian) }

func (b *FlexBuffer) ReadInt64BE() (int64, error) {
	v, err := b.readUint64(binary.BigEndian)
	return int64(v), err
}

func (b *FlexBuffer) ReadInt64LE() (int64, error) {
	v, err := b.readUint64(binary.LittleEndian)
	return int64(v), err
}

func (b *FlexBuffer) ReadUint64BE() (uint64, error) { return b.readUint64(binary.BigEndian) }
func (b *FlexBuffer) ReadUint64LE() (uint64, error) { return b.readUint64(binary.LittleEndian) }

func (b *FlexBuffer) ReadFloat32BE() (float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.float32(binary.BigEndian)
}

func (b *FlexBuffer) ReadFloat32LE() (float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.float32(binary.LittleEndian)
}

func (b *FlexBuffer) ReadFloat64BE() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.float64(binary.BigEndian)
}

func (b *FlexBuffer) ReadFloat64LE() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.float64(binary.LittleEndian)
}

// ReadBytes returns a borrowed view of the next n bytes and advances past
// them.
func (b *FlexBuffer) ReadBytes(n int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.next(n)
}

// ReadRest returns a borrowed view from the cursor to the logical end and
// moves the cursor there.
func (b *FlexBuffer) ReadRest() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.rest()
}

// ReadString decodes the next n bytes with cs. A negative n returns ""
// without consuming anything.
func (b *FlexBuffer) ReadString(n int, cs Charset) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.str(n, cs)
}

func (b *FlexBuffer) readUint16(order binary.ByteOrder) (uint16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.uint16(order)
}

func (b *FlexBuffer) readUint32(order binary.ByteOrder) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.uint32(order)
}

func (b *FlexBuffer) readUint64(order binary.ByteOrder) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.c.uint64(order)
}

// limitError reports a growth by delta bytes that cannot fit under maxSize.
// Callers check against maxSize before adding so huge deltas never wrap.
func (b *FlexBuffer) limitError(delta int) error {
	return fmt.Errorf("buffer: %d more bytes exceed max size %d: %w", delta, b.maxSize, ErrLimitExceeded)
}

func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}
