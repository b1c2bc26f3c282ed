package layout

import (
	"fmt"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/encoding"
)

// Layout is a record description loaded from a layout file.
type Layout struct {
	Fields []Field `yaml:"fields" json:"fields"`
}

// Field describes one value of a record.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type Type   `yaml:"type" json:"type"`

	// Len is the byte length of a bytes or string field.
	Len int `yaml:"len,omitempty" json:"len,omitempty"`

	// Rest makes a bytes or string field consume everything up to the end.
	Rest bool `yaml:"rest,omitempty" json:"rest,omitempty"`

	// Charset decodes string fields. Defaults to utf8.
	Charset buffer.Charset `yaml:"charset,omitempty" json:"charset,omitempty"`
}

// Validate checks the field definition.
func (f Field) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("layout: field %q: unknown type %q", f.Name, f.Type)
	}
	if f.Type.Fixed() {
		if f.Len != 0 || f.Rest {
			return fmt.Errorf("layout: field %q: len and rest only apply to bytes and string", f.Name)
		}
		return nil
	}
	if f.Len < 0 {
		return fmt.Errorf("layout: field %q: negative len %d", f.Name, f.Len)
	}
	if f.Rest && f.Len != 0 {
		return fmt.Errorf("layout: field %q: len and rest are exclusive", f.Name)
	}
	return nil
}

// Value is a decoded field.
//
// Integers decode to int64 or uint64, floats to float64, bytes to
// encoding.HexData and strings to string.
type Value struct {
	Name   string `yaml:"name" json:"name"`
	Type   Type   `yaml:"type" json:"type"`
	Offset int    `yaml:"offset" json:"offset"`
	Value  any    `yaml:"value" json:"value"`
}

// Decode reads fields in order starting at the cursor position. On error
// the values decoded so far are returned along with it.
func Decode(c buffer.Cursor, fields []Field) ([]Value, error) {
	values := make([]Value, 0, len(fields))
	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return values, err
		}
		off := c.Position()
		v, err := decodeField(c, f)
		if err != nil {
			return values, fmt.Errorf("layout: field %d (%s): %w", i, f.Name, err)
		}
		values = append(values, Value{Name: f.Name, Type: f.Type, Offset: off, Value: v})
	}
	return values, nil
}

func decodeField(c buffer.Cursor, f Field) (any, error) {
	if f.Type.Fixed() {
		return readFixed(c, f.Type)
	}

	var p []byte
	if f.Rest {
		p = c.ReadRest()
	} else {
		var err error
		if p, err = c.ReadBytes(f.Len); err != nil {
			return nil, err
		}
	}
	if f.Type == String {
		return f.Charset.Decode(p), nil
	}
	return encoding.HexData(append([]byte(nil), p...)), nil
}
