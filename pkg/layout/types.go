// Package layout describes binary records declaratively.
//
// A layout is a list of Fields decoded in order through any buffer.Cursor.
// A script is a list of Ops applied to a buffer.FlexBuffer; every buffer
// operation (typed writes, fill, cursor moves, insert, delete, resizing and
// reset) has an op. Both load from YAML or JSON.
package layout

import (
	"fmt"

	"github.com/haivivi/flexbuf/pkg/buffer"
)

// Type names the encoding of a single value.
type Type string

const (
	Int8      Type = "int8"
	Uint8     Type = "uint8"
	Int16BE   Type = "int16be"
	Int16LE   Type = "int16le"
	Uint16BE  Type = "uint16be"
	Uint16LE  Type = "uint16le"
	Int32BE   Type = "int32be"
	Int32LE   Type = "int32le"
	Uint32BE  Type = "uint32be"
	Uint32LE  Type = "uint32le"
	Int64BE   Type = "int64be"
	Int64LE   Type = "int64le"
	Uint64BE  Type = "uint64be"
	Uint64LE  Type = "uint64le"
	Float32BE Type = "float32be"
	Float32LE Type = "float32le"
	Float64BE Type = "float64be"
	Float64LE Type = "float64le"
	Bytes     Type = "bytes"
	String    Type = "string"
)

type typeInfo struct {
	width    int
	signed   bool
	float    bool
	variable bool
}

var types = map[Type]typeInfo{
	Int8:      {width: 1, signed: true},
	Uint8:     {width: 1},
	Int16BE:   {width: 2, signed: true},
	Int16LE:   {width: 2, signed: true},
	Uint16BE:  {width: 2},
	Uint16LE:  {width: 2},
	Int32BE:   {width: 4, signed: true},
	Int32LE:   {width: 4, signed: true},
	Uint32BE:  {width: 4},
	Uint32LE:  {width: 4},
	Int64BE:   {width: 8, signed: true},
	Int64LE:   {width: 8, signed: true},
	Uint64BE:  {width: 8},
	Uint64LE:  {width: 8},
	Float32BE: {width: 4, float: true},
	Float32LE: {width: 4, float: true},
	Float64BE: {width: 8, float: true},
	Float64LE: {width: 8, float: true},
	Bytes:     {variable: true},
	String:    {variable: true},
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// Width returns the encoded size of a fixed-width type, or 0 for bytes and
// string.
func (t Type) Width() int {
	return types[t].width
}

// Fixed reports whether t has a fixed encoded width.
func (t Type) Fixed() bool {
	info, ok := types[t]
	return ok && !info.variable
}

// readFixed decodes one fixed-width value of type t at the cursor.
func readFixed(c buffer.Cursor, t Type) (any, error) {
	switch t {
	case Int8:
		v, err := c.ReadInt8()
		return int64(v), err
	case Uint8:
		v, err := c.ReadUint8()
		return uint64(v), err
	case Int16BE:
		v, err := c.ReadInt16BE()
		return int64(v), err
	case Int16LE:
		v, err := c.ReadInt16LE()
		return int64(v), err
	case Uint16BE:
		v, err := c.ReadUint16BE()
		return uint64(v), err
	case Uint16LE:
		v, err := c.ReadUint16LE()
		return uint64(v), err
	case Int32BE:
		v, err := c.ReadInt32BE()
		return int64(v), err
	case Int32LE:
		v, err := c.ReadInt32LE()
		return int64(v), err
	case Uint32BE:
		v, err := c.ReadUint32BE()
		return uint64(v), err
	case Uint32LE:
		v, err := c.ReadUint32LE()
		return uint64(v), err
	case Int64BE:
		return c.ReadInt64BE()
	case Int64LE:
		return c.ReadInt64LE()
	case Uint64BE:
		return c.ReadUint64BE()
	case Uint64LE:
		return c.ReadUint64LE()
	case Float32BE:
		v, err := c.ReadFloat32BE()
		return float64(v), err
	case Float32LE:
		v, err := c.ReadFloat32LE()
		return float64(v), err
	case Float64BE:
		return c.ReadFloat64BE()
	case Float64LE:
		return c.ReadFloat64LE()
	}
	return nil, fmt.Errorf("layout: %q is not a fixed-width type", t)
}

// writeFixed encodes v as type t at the cursor. v may be any Go number or a
// numeric string; it must fit the type.
func writeFixed(b *buffer.FlexBuffer, t Type, v any) error {
	info, ok := types[t]
	if !ok || info.variable {
		return fmt.Errorf("layout: %q is not a fixed-width type", t)
	}

	var err error
	switch {
	case info.float:
		var f float64
		if f, err = toFloat64(v); err != nil {
			return err
		}
		switch t {
		case Float32BE:
			_, err = b.WriteFloat32BE(float32(f))
		case Float32LE:
			_, err = b.WriteFloat32LE(float32(f))
		case Float64BE:
			_, err = b.WriteFloat64BE(f)
		case Float64LE:
			_, err = b.WriteFloat64LE(f)
		}
	case info.signed:
		var i int64
		if i, err = toInt(v, info.width*8); err != nil {
			return err
		}
		switch t {
		case Int8:
			_, err = b.WriteInt8(int8(i))
		case Int16BE:
			_, err = b.WriteInt16BE(int16(i))
		case Int16LE:
			_, err = b.WriteInt16LE(int16(i))
		case Int32BE:
			_, err = b.WriteInt32BE(int32(i))
		case Int32LE:
			_, err = b.WriteInt32LE(int32(i))
		case Int64BE:
			_, err = b.WriteInt64BE(i)
		case Int64LE:
			_, err = b.WriteInt64LE(i)
		}
	default:
		var u uint64
		if u, err = toUint(v, info.width*8); err != nil {
			return err
		}
		switch t {
		case Uint8:
			_, err = b.WriteUint8(uint8(u))
		case Uint16BE:
			_, err = b.WriteUint16BE(uint16(u))
		case Uint16LE:
			_, err = b.WriteUint16LE(uint16(u))
		case Uint32BE:
			_, err = b.WriteUint32BE(uint32(u))
		case Uint32LE:
			_, err = b.WriteUint32LE(uint32(u))
		case Uint64BE:
			_, err = b.WriteUint64BE(u)
		case Uint64LE:
			_, err = b.WriteUint64LE(u)
		}
	}
	return err
}
