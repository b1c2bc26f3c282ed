package buffer

import (
	"encoding/binary"
	"fmt"
	"math"
)

var (
	_ Cursor = (*Reader)(nil)
	_ Cursor = (*FlexBuffer)(nil)
)

// Cursor is a decodable cursor over a byte region. It is implemented by the
// fixed-size Reader and by the growable FlexBuffer.
//
// Every fixed-width read checks that position+width <= Size() before
// decoding. When the check fails the read returns an error wrapping
// ErrOutOfBounds and the position does not move.
type Cursor interface {
	Size() int
	Position() int
	EOF() bool
	MoveTo(pos int)
	MoveBy(delta int)

	ReadInt8() (int8, error)
	ReadUint8() (uint8, error)
	ReadInt16BE() (int16, error)
	ReadInt16LE() (int16, error)
	ReadUint16BE() (uint16, error)
	ReadUint16LE() (uint16, error)
	ReadInt32BE() (int32, error)
	ReadInt32LE() (int32, error)
	ReadUint32BE() (uint32, error)
	ReadUint32LE() (uint32, error)
	ReadInt64BE() (int64, error)
	ReadInt64LE() (int64, error)
	ReadUint64BE() (uint64, error)
	ReadUint64LE() (uint64, error)
	ReadFloat32BE() (float32, error)
	ReadFloat32LE() (float32, error)
	ReadFloat64BE() (float64, error)
	ReadFloat64LE() (float64, error)

	// ReadBytes returns a borrowed view of the next n bytes.
	ReadBytes(n int) ([]byte, error)
	// ReadRest returns a borrowed view from the position to the end.
	ReadRest() []byte
	// ReadString decodes the next n bytes with cs. A negative n returns ""
	// without consuming anything.
	ReadString(n int, cs Charset) (string, error)
}

// cursor holds the read/write position over buf[:size]. It is shared by
// Reader and FlexBuffer; callers are responsible for locking.
//
// Invariant: 0 <= pos <= size <= len(buf).
type cursor struct {
	buf  []byte
	size int
	pos  int
}

func (c *cursor) moveTo(pos int) {
	c.pos = min(max(pos, 0), c.size)
}

// moveBy saturates at both ends instead of wrapping on huge deltas.
func (c *cursor) moveBy(delta int) {
	switch {
	case delta > c.size-c.pos:
		c.pos = c.size
	case delta < -c.pos:
		c.pos = 0
	default:
		c.pos += delta
	}
}

func (c *cursor) eof() bool {
	return c.pos >= c.size
}

// next returns the n bytes at the cursor and advances past them. The
// returned slice has its capacity clipped so appends never reach the store.
func (c *cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.size-c.pos {
		return nil, fmt.Errorf("buffer: read %d bytes at %d of %d: %w", n, c.pos, c.size, ErrOutOfBounds)
	}
	p := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return p, nil
}

func (c *cursor) rest() []byte {
	p := c.buf[c.pos:c.size:c.size]
	c.pos = c.size
	return p
}

func (c *cursor) str(n int, cs Charset) (string, error) {
	if n < 0 {
		return "", nil
	}
	p, err := c.next(n)
	if err != nil {
		return "", err
	}
	return cs.Decode(p), nil
}

func (c *cursor) uint8() (uint8, error) {
	p, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (c *cursor) uint16(order binary.ByteOrder) (uint16, error) {
	p, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(p), nil
}

func (c *cursor) uint32(order binary.ByteOrder) (uint32, error) {
	p, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(p), nil
}

func (c *cursor) uint64(order binary.ByteOrder) (uint64, error) {
	p, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(p), nil
}

func (c *cursor) float32(order binary.ByteOrder) (float32, error) {
	v, err := c.uint32(order)
	return math.Float32frombits(v), err
}

func (c *cursor) float64(order binary.ByteOrder) (float64, error) {
	v, err := c.uint64(order)
	return math.Float64frombits(v), err
}
