package layout

import (
	"fmt"

	"github.com/haivivi/flexbuf/pkg/buffer"
	"github.com/haivivi/flexbuf/pkg/encoding"
)

// OpKind names a buffer operation.
type OpKind string

const (
	// OpWrite writes Value (numeric types), Hex (bytes) or Text (string).
	OpWrite OpKind = "write"
	// OpFill writes Count copies of the byte Value.
	OpFill OpKind = "fill"
	// OpMove moves the cursor to Pos.
	OpMove OpKind = "move"
	// OpSkip moves the cursor by Count.
	OpSkip OpKind = "skip"
	// OpInsert inserts Hex or Text at the cursor.
	OpInsert OpKind = "insert"
	// OpDelete deletes Count bytes at the cursor.
	OpDelete OpKind = "delete"
	// OpSize sets the logical size to Size.
	OpSize OpKind = "size"
	// OpGrow changes the logical size by Count.
	OpGrow OpKind = "grow"
	// OpReset empties the buffer, shrinking it when Shrink is set.
	OpReset OpKind = "reset"
)

// Script is an edit script together with the buffer configuration it runs
// against.
type Script struct {
	Buffer buffer.Config `yaml:"buffer,omitempty" json:"buffer,omitempty"`
	Ops    []Op          `yaml:"ops" json:"ops"`
}

// Op is a single step of a Script. Which fields apply depends on Op.
type Op struct {
	Op      OpKind         `yaml:"op" json:"op"`
	Type    Type           `yaml:"type,omitempty" json:"type,omitempty"`
	Value   any            `yaml:"value,omitempty" json:"value,omitempty"`
	Hex     string         `yaml:"hex,omitempty" json:"hex,omitempty"`
	Text    string         `yaml:"text,omitempty" json:"text,omitempty"`
	Charset buffer.Charset `yaml:"charset,omitempty" json:"charset,omitempty"`
	Count   int            `yaml:"count,omitempty" json:"count,omitempty"`
	Pos     int            `yaml:"pos,omitempty" json:"pos,omitempty"`
	Size    int            `yaml:"size,omitempty" json:"size,omitempty"`
	Shrink  bool           `yaml:"shrink,omitempty" json:"shrink,omitempty"`
}

// Apply runs ops against b in order and stops at the first failure. The
// error names the index and kind of the failing op and wraps the buffer
// error, so errors.Is(err, buffer.ErrLimitExceeded) works.
func Apply(b *buffer.FlexBuffer, ops []Op) error {
	for i, op := range ops {
		if err := op.apply(b); err != nil {
			return fmt.Errorf("layout: op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

// Run creates a FlexBuffer from cfg, applies the script's ops to it and
// returns it. A failing op closes the buffer.
func (s *Script) Run(cfg *buffer.Config) (*buffer.FlexBuffer, error) {
	b := buffer.NewFlex(cfg)
	if err := Apply(b, s.Ops); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (op Op) apply(b *buffer.FlexBuffer) error {
	switch op.Op {
	case OpWrite:
		return op.write(b)
	case OpFill:
		v := op.Value
		if v == nil {
			v = 0
		}
		fill, err := toUint(v, 8)
		if err != nil {
			return err
		}
		_, err = b.Fill(byte(fill), op.Count)
		return err
	case OpMove:
		b.MoveTo(op.Pos)
	case OpSkip:
		b.MoveBy(op.Count)
	case OpInsert:
		data, err := op.payload(Bytes)
		if err != nil {
			return err
		}
		_, err = b.InsertBytes(data)
		return err
	case OpDelete:
		b.Delete(op.Count)
	case OpSize:
		return b.SetSize(op.Size)
	case OpGrow:
		return b.GrowSize(op.Count)
	case OpReset:
		b.Reset(op.Shrink)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}

func (op Op) write(b *buffer.FlexBuffer) error {
	if !op.Type.Valid() {
		return fmt.Errorf("unknown type %q", op.Type)
	}
	if op.Type.Fixed() {
		return writeFixed(b, op.Type, op.Value)
	}
	data, err := op.payload(op.Type)
	if err != nil {
		return err
	}
	_, err = b.WriteBytes(data)
	return err
}

// payload returns the bytes an insert or variable-width write carries. Hex
// takes precedence; otherwise Text is encoded with Charset.
func (op Op) payload(t Type) ([]byte, error) {
	if op.Hex != "" {
		return encoding.ParseHex(op.Hex)
	}
	if op.Text != "" || t == String {
		return op.Charset.Encode(op.Text), nil
	}
	if s, ok := op.Value.(string); ok {
		return encoding.ParseHex(s)
	}
	return nil, nil
}
