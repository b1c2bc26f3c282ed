package buffer

import (
	"encoding/binary"
	"io"
)

// Reader is a cursor over a fixed byte region. Its size is the length of
// the region and never changes.
//
// Reader is not safe for concurrent use. Slices returned by ReadBytes and
// ReadRest alias the region passed to NewReader.
type Reader struct {
	c cursor
}

// NewReader returns a Reader positioned at the start of p.
func NewReader(p []byte) *Reader {
	return &Reader{c: cursor{buf: p, size: len(p)}}
}

// Reset points the Reader at p and rewinds it.
func (r *Reader) Reset(p []byte) {
	r.c = cursor{buf: p, size: len(p)}
}

// Size returns the length of the underlying region.
func (r *Reader) Size() int { return r.c.size }

// Position returns the current read offset.
func (r *Reader) Position() int { return r.c.pos }

// EOF reports whether the cursor is at the end of the region.
func (r *Reader) EOF() bool { return r.c.eof() }

// MoveTo sets the position, clamped into [0, Size()].
func (r *Reader) MoveTo(pos int) { r.c.moveTo(pos) }

// MoveBy moves the position by delta, clamped into [0, Size()].
func (r *Reader) MoveBy(delta int) { r.c.moveBy(delta) }

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.c.uint8()
	return int8(v), err
}

func (r *Reader) ReadUint8() (uint8, error) { return r.c.uint8() }

func (r *Reader) ReadInt16BE() (int16, error) {
	v, err := r.c.uint16(binary.BigEndian)
	return int16(v), err
}

func (r *Reader) ReadInt16LE() (int16, error) {
	v, err := r.c.uint16(binary.LittleEndian)
	return int16(v), err
}

func (r *Reader) ReadUint16BE() (uint16, error) { return r.c.uint16(binary.BigEndian) }
func (r *Reader) ReadUint16LE() (uint16, error) { return r.c.uint16(binary.LittleEndian) }

func (r *Reader) ReadInt32BE() (int32, error) {
	v, err := r.c.uint32(binary.BigEndian)
	return int32(v), err
}

func (r *Reader) ReadInt32LE() (int32, error) {
	v, err := r.c.uint32(binary.LittleEndian)
	return int32(v), err
}

func (r *Reader) ReadUint32BE() (uint32, error) { return r.c.uint32(binary.BigEndian) }
func (r *Reader) ReadUint32LE() (uint32, error) { return r.c.uint32(binary.LittleEndian) }

func (r *Reader) ReadInt64BE() (int64, error) {
	v, err := r.c.uint64(binary.BigEndian)
	return int64(v), err
}

func (r *Reader) ReadInt64LE() (int64, error) {
	v, err := r.c.uint64(binary.LittleEndian)
	return int64(v), err
}

func (r *Reader) ReadUint64BE() (uint64, error) { return r.c.uint64(binary.BigEndian) }
func (r *Reader) ReadUint64LE() (uint64, error) { return r.c.uint64(binary.LittleEndian) }

func (r *Reader) ReadFloat32BE() (float32, error) { return r.c.float32(binary.BigEndian) }
func (r *Reader) ReadFloat32LE() (float32, error) { return r.c.float32(binary.LittleEndian) }
func (r *Reader) ReadFloat64BE() (float64, error) { return r.c.float64(binary.BigEndian) }
func (r *Reader) ReadFloat64LE() (float64, error) { return r.c.float64(binary.LittleEndian) }

// ReadBytes returns the next n bytes and advances past them. A zero n is
// valid anywhere, including at the end.
func (r *Reader) ReadBytes(n int) ([]byte, error) { return r.c.next(n) }

// ReadRest returns everything from the position to the end and moves the
// position to the end.
func (r *Reader) ReadRest() []byte { return r.c.rest() }

// ReadString decodes the next n bytes using cs. A negative n returns an
// empty string and leaves the position alone.
func (r *Reader) ReadString(n int, cs Charset) (string, error) { return r.c.str(n, cs) }

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.c.eof() {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, r.c.buf[r.c.pos:r.c.size])
	r.c.pos += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.c.eof() {
		return 0, io.EOF
	}
	return r.c.uint8()
}
