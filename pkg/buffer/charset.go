package buffer

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	textenc "github.com/haivivi/flexbuf/pkg/encoding"
)

// Charset selects how strings are converted to and from bytes. The zero
// value is UTF8.
type Charset int

const (
	UTF8 Charset = iota
	ASCII
	Latin1
	UTF16LE
	Base64
	Hex
)

var charsetNames = [...]string{
	UTF8:    "utf8",
	ASCII:   "ascii",
	Latin1:  "latin1",
	UTF16LE: "utf16le",
	Base64:  "base64",
	Hex:     "hex",
}

var charsetAliases = map[string]Charset{
	"":         UTF8,
	"utf8":     UTF8,
	"utf-8":    UTF8,
	"ascii":    ASCII,
	"us-ascii": ASCII,
	"latin1":   Latin1,
	"binary":   Latin1,
	"iso88591": Latin1,
	"utf16le":  UTF16LE,
	"utf-16le": UTF16LE,
	"ucs2":     UTF16LE,
	"ucs-2":    UTF16LE,
	"base64":   Base64,
	"hex":      Hex,
}

// ParseCharset looks up a charset by name. Names are case-insensitive and
// include the usual aliases ("utf-8", "binary", "ucs2", ...).
func ParseCharset(name string) (Charset, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "iso-8859-1" {
		return Latin1, nil
	}
	cs, ok := charsetAliases[key]
	if !ok {
		return UTF8, fmt.Errorf("buffer: unknown charset %q", name)
	}
	return cs, nil
}

func (cs Charset) String() string {
	if cs < 0 || int(cs) >= len(charsetNames) {
		return fmt.Sprintf("Charset(%d)", int(cs))
	}
	return charsetNames[cs]
}

// MarshalText implements encoding.TextMarshaler.
func (cs Charset) MarshalText() ([]byte, error) {
	if cs < 0 || int(cs) >= len(charsetNames) {
		return nil, fmt.Errorf("buffer: invalid charset %d", int(cs))
	}
	return []byte(charsetNames[cs]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cs *Charset) UnmarshalText(b []byte) error {
	v, err := ParseCharset(string(b))
	if err != nil {
		return err
	}
	*cs = v
	return nil
}

// Encode converts s to bytes. Characters the charset cannot represent are
// replaced, and malformed base64/hex input is decoded up to the first
// invalid character, so Encode never fails.
func (cs Charset) Encode(s string) []byte {
	switch cs {
	case ASCII:
		out := make([]byte, 0, len(s))
		for _, r := range s {
			if r >= 0x80 {
				r = '?'
			}
			out = append(out, byte(r))
		}
		return out
	case Latin1:
		return transcode(encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()), []byte(s))
	case UTF16LE:
		return transcode(utf16le.NewEncoder(), []byte(s))
	case Base64:
		return textenc.DecodeBase64Lenient(s)
	case Hex:
		return textenc.DecodeHexPrefix(s)
	default:
		return []byte(s)
	}
}

// Decode converts p to a string. Invalid sequences decode to U+FFFD.
func (cs Charset) Decode(p []byte) string {
	switch cs {
	case ASCII:
		out := make([]byte, len(p))
		for i, c := range p {
			out[i] = c & 0x7f
		}
		return string(out)
	case Latin1:
		return string(transcode(charmap.ISO8859_1.NewDecoder(), p))
	case UTF16LE:
		return string(transcode(utf16le.NewDecoder(), p))
	case Base64:
		return base64.StdEncoding.EncodeToString(p)
	case Hex:
		return hex.EncodeToString(p)
	default:
		return string(transcode(unicode.UTF8.NewDecoder(), p))
	}
}

// ByteLen returns the number of bytes Encode(s) produces.
func (cs Charset) ByteLen(s string) int {
	switch cs {
	case UTF8:
		return len(s)
	default:
		return len(cs.Encode(s))
	}
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

type byteTranscoder interface {
	Bytes(b []byte) ([]byte, error)
}

func transcode(t byteTranscoder, p []byte) []byte {
	out, err := t.Bytes(p)
	if err != nil {
		return p
	}
	return out
}
