package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// put extends the logical size so that n bytes fit at the cursor, returns
// the n-byte window there and advances past it.
func (b *FlexBuffer) put(n int) ([]byte, error) {
	if err := b.ensureSizeLocked(n); err != nil {
		return nil, err
	}
	p := b.c.buf[b.c.pos : b.c.pos+n]
	b.c.pos += n
	return p, nil
}

func (b *FlexBuffer) WriteInt8(v int8) (int, error) { return b.WriteUint8(uint8(v)) }

func (b *FlexBuffer) WriteUint8(v uint8) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(1)
	if err != nil {
		return 0, err
	}
	p[0] = v
	return 1, nil
}

func (b *FlexBuffer) WriteInt16BE(v int16) (int, error) {
	return b.writeUint16(binary.BigEndian, uint16(v))
}

func (b *FlexBuffer) WriteInt16LE(v int16) (int, error) {
	return b.writeUint16(binary.LittleEndian, uint16(v))
}

func (b *FlexBuffer) WriteUint16BE(v uint16) (int, error) { return b.writeUint16(binary.BigEndian, v) }
func (b *FlexBuffer) WriteUint16LE(v uint16) (int, error) { return b.writeUint16(binary.LittleEndian, v) }

func (b *FlexBuffer) WriteInt32BE(v int32) (int, error) {
	return b.writeUint32(binary.BigEndian, uint32(v))
}

func (b *FlexBuffer) WriteInt32LE(v int32) (int, error) {
	return b.writeUint32(binary.LittleEndian, uint32(v))
}

func (b *FlexBuffer) WriteUint32BE(v uint32) (int, error) { return b.writeUint32(binary.BigEndian, v) }
func (b *FlexBuffer) WriteUint32LE(v uint32) (int, error) { return b.writeUint32(binary.LittleEndian, v) }

func (b *FlexBuffer) WriteInt64BE(v int64) (int, error) {
	return b.writeUint64(binary.BigEndian, uint64(v))
}

func (b *FlexBuffer) WriteInt64LE(v int64) (int, error) {
	return b.writeUint64(binary.LittleEndian, uint64(v))
}

func (b *FlexBuffer) WriteUint64BE(v uint64) (int, error) { return b.writeUint64(binary.BigEndian, v) }
func (b *FlexBuffer) WriteUint64LE(v uint64) (int, error) { return b.writeUint64(binary.LittleEndian, v) }

func (b *FlexBuffer) WriteFloat32BE(v float32) (int, error) {
	return b.writeUint32(binary.BigEndian, math.Float32bits(v))
}

func (b *FlexBuffer) WriteFloat32LE(v float32) (int, error) {
	return b.writeUint32(binary.LittleEndian, math.Float32bits(v))
}

func (b *FlexBuffer) WriteFloat64BE(v float64) (int, error) {
	return b.writeUint64(binary.BigEndian, math.Float64bits(v))
}

func (b *FlexBuffer) WriteFloat64LE(v float64) (int, error) {
	return b.writeUint64(binary.LittleEndian, math.Float64bits(v))
}

func (b *FlexBuffer) writeUint16(order binary.ByteOrder, v uint16) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(2)
	if err != nil {
		return 0, err
	}
	order.PutUint16(p, v)
	return 2, nil
}

func (b *FlexBuffer) writeUint32(order binary.ByteOrder, v uint32) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(4)
	if err != nil {
		return 0, err
	}
	order.PutUint32(p, v)
	return 4, nil
}

func (b *FlexBuffer) writeUint64(order binary.ByteOrder, v uint64) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(8)
	if err != nil {
		return 0, err
	}
	order.PutUint64(p, v)
	return 8, nil
}

// WriteBytes copies data to the cursor, extending the size as needed, and
// advances past it.
func (b *FlexBuffer) WriteBytes(data []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(len(data))
	if err != nil {
		return 0, err
	}
	return copy(p, data), nil
}

// WriteString encodes s with cs at the cursor. An empty string writes
// nothing.
func (b *FlexBuffer) WriteString(s string, cs Charset) (int, error) {
	if s == "" {
		return 0, nil
	}
	data := cs.Encode(s)
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(len(data))
	if err != nil {
		return 0, err
	}
	return copy(p, data), nil
}

// Fill writes n copies of value at the cursor. Non-positive n writes
// nothing.
func (b *FlexBuffer) Fill(value byte, n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := b.put(n)
	if err != nil {
		return 0, err
	}
	for i := range p {
		p[i] = value
	}
	return n, nil
}

// Write implements io.Writer. It is WriteBytes.
func (b *FlexBuffer) Write(p []byte) (int, error) {
	return b.WriteBytes(p)
}

// Read implements io.Reader, copying from the cursor up to the logical end.
func (b *FlexBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.c.eof() {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, b.c.buf[b.c.pos:b.c.size])
	b.c.pos += n
	return n, nil
}

// ReadFrom implements io.ReaderFrom. Data from r is written at the cursor a
// page at a time until r reports io.EOF. If r has more data than the
// maximum size allows, ReadFrom stops with an error wrapping
// ErrLimitExceeded; everything read up to that point stays in the buffer.
func (b *FlexBuffer) ReadFrom(r io.Reader) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	limit := b.maxSize / b.pageSize * b.pageSize
	scratch := make([]byte, b.pageSize)
	var total int64
	for {
		free := limit - b.c.pos
		if free <= 0 {
			n, err := io.ReadFull(r, scratch[:1])
			if n > 0 {
				return total, fmt.Errorf("buffer: read from exceeds max size %d: %w", b.maxSize, ErrLimitExceeded)
			}
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}

		n, err := r.Read(scratch[:min(len(scratch), free)])
		if n > 0 {
			p, perr := b.put(n)
			if perr != nil {
				return total, perr
			}
			copy(p, scratch[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// WriteTo implements io.WriterTo. It writes [Position(), Size()) to w and
// advances the cursor by the number of bytes written.
func (b *FlexBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := w.Write(b.c.buf[b.c.pos:b.c.size])
	b.c.pos += n
	return int64(n), err
}
