package encoding

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// DecodeHexPrefix decodes the longest valid prefix of s made of complete
// hex pairs. Decoding stops at the first pair containing a non-hex
// character, and an odd trailing nibble is ignored.
func DecodeHexPrefix(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		hi, ok1 := fromHexChar(s[i])
		lo, ok2 := fromHexChar(s[i+1])
		if !ok1 || !ok2 {
			break
		}
		out = append(out, hi<<4|lo)
	}
	return out
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// ParseHex strictly decodes s as hex. Whitespace and an optional "0x"
// prefix are ignored, so "0x01 02 0a" is accepted.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Join(strings.Fields(s), "")
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("encoding: invalid hex %q: %w", s, err)
	}
	return out, nil
}

// HexData is a byte slice that serializes to/from hexadecimal in JSON and
// YAML.
type HexData []byte

// MarshalJSON implements json.Marshaler.
func (h HexData) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(h) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *HexData) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("unmarshal json hex data: empty data")
	}
	switch data[0] {
	case 'n': // null
		return nil
	case '"':
		if len(data) < 2 || data[len(data)-1] != '"' {
			return errors.New("unmarshal json hex data: invalid string")
		}
		decoded, err := ParseHex(string(data[1 : len(data)-1]))
		if err != nil {
			return err
		}
		*h = decoded
		return nil
	default:
		return fmt.Errorf("invalid hex data: %s", string(data))
	}
}

// MarshalYAML renders the bytes as a hex string.
func (h HexData) MarshalYAML() (any, error) {
	return hex.EncodeToString(h), nil
}

// String returns the hex-encoded string representation.
func (h HexData) String() string {
	return hex.EncodeToString(h)
}
