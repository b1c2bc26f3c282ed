// Package encoding provides forgiving text-to-binary codecs and
// serialisable byte types used when presenting buffer content.
package encoding

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64Lenient decodes s as base64, accepting both the standard and
// URL-safe alphabets with or without padding. Whitespace and characters
// outside the alphabets are skipped and decoding stops at the first '='.
// It never fails; a dangling final character is dropped.
func DecodeBase64Lenient(s string) []byte {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '=':
			i = len(s)
		case c == '-':
			sb.WriteByte('+')
		case c == '_':
			sb.WriteByte('/')
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			sb.WriteByte(c)
		}
	}
	clean := sb.String()
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}
	out, err := base64.RawStdEncoding.DecodeString(clean)
	if err != nil {
		return nil
	}
	return out
}

// Base64Data is a byte slice that serializes as standard base64 text.
type Base64Data []byte

// MarshalText implements encoding.TextMarshaler.
func (b Base64Data) MarshalText() ([]byte, error) {
	return []byte(base64.StdEncoding.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Input is decoded
// leniently.
func (b *Base64Data) UnmarshalText(text []byte) error {
	*b = DecodeBase64Lenient(string(text))
	return nil
}

// String returns the base64-encoded string representation.
func (b Base64Data) String() string {
	return base64.StdEncoding.EncodeToString(b)
}
