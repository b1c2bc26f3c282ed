// Package buffer provides cursor-based binary buffers for building and
// parsing byte sequences.
//
// There are two cursor types, both implementing Cursor:
//
//   - Reader: a read-only cursor over a fixed byte slice. It is a plain value
//     like bytes.Reader and is not safe for concurrent use.
//
//   - FlexBuffer: a growable read/write cursor. Capacity grows in whole pages
//     up to a configured maximum, and after a quiet period without growth the
//     buffer drops its content and shrinks back to its floor.
//
// Every fixed-width read is bounds-checked against the logical size and
// fails with an error wrapping ErrOutOfBounds. Writes past the logical size
// extend it, and growth beyond the maximum fails with an error wrapping
// ErrLimitExceeded. Multi-byte values come in big-endian (BE) and
// little-endian (LE) variants.
//
// Example usage:
//
//	b := buffer.NewFlex(&buffer.Config{PageSize: 256})
//	defer b.Close()
//
//	b.WriteUint16BE(0xCAFE)
//	b.WriteString("hello", buffer.UTF8)
//
//	b.MoveTo(0)
//	magic, _ := b.ReadUint16BE()
//	name, _ := b.ReadString(5, buffer.UTF8)
package buffer
