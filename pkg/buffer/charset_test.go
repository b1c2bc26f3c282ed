package buffer

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCharset_Encode(t *testing.T) {
	tests := []struct {
		cs    Charset
		input string
		want  []byte
	}{
		{UTF8, "héllo", []byte("héllo")},
		{ASCII, "héllo", []byte("h?llo")},
		{Latin1, "café", []byte{'c', 'a', 'f', 0xe9}},
		{UTF16LE, "hi", []byte{'h', 0, 'i', 0}},
		{Base64, "aGk=", []byte("hi")},
		{Hex, "cafe", []byte{0xca, 0xfe}},
		{Hex, "cafez1", []byte{0xca, 0xfe}},
	}

	for _, tc := range tests {
		t.Run(tc.cs.String()+"/"+tc.input, func(t *testing.T) {
			got := tc.cs.Encode(tc.input)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Encode(%q) = % x; want % x", tc.input, got, tc.want)
			}
			if n := tc.cs.ByteLen(tc.input); n != len(tc.want) {
				t.Errorf("ByteLen(%q) = %d; want %d", tc.input, n, len(tc.want))
			}
		})
	}
}

func TestCharset_Decode(t *testing.T) {
	tests := []struct {
		cs    Charset
		input []byte
		want  string
	}{
		{UTF8, []byte("héllo"), "héllo"},
		{UTF8, []byte{'a', 0xff}, "a�"},
		{ASCII, []byte{'a', 0xe9}, "ai"},
		{Latin1, []byte{'c', 'a', 'f', 0xe9}, "café"},
		{UTF16LE, []byte{'h', 0, 'i', 0}, "hi"},
		{Base64, []byte("hi"), "aGk="},
		{Hex, []byte{0xca, 0xfe}, "cafe"},
	}

	for _, tc := range tests {
		t.Run(tc.cs.String(), func(t *testing.T) {
			if got := tc.cs.Decode(tc.input); got != tc.want {
				t.Errorf("Decode(% x) = %q; want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseCharset(t *testing.T) {
	tests := []struct {
		name string
		want Charset
	}{
		{"", UTF8},
		{"UTF-8", UTF8},
		{"ascii", ASCII},
		{"binary", Latin1},
		{"ISO-8859-1", Latin1},
		{"iso_8859_1", Latin1},
		{"ucs2", UTF16LE},
		{"utf16le", UTF16LE},
		{"Base64", Base64},
		{"hex", Hex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCharset(tc.name)
			if err != nil {
				t.Fatalf("ParseCharset(%q) error: %v", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("ParseCharset(%q) = %v; want %v", tc.name, got, tc.want)
			}
		})
	}

	if _, err := ParseCharset("ebcdic"); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestCharset_JSON(t *testing.T) {
	var v struct {
		Charset Charset `json:"charset"`
	}
	if err := json.Unmarshal([]byte(`{"charset":"latin1"}`), &v); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if v.Charset != Latin1 {
		t.Fatalf("Charset = %v; want latin1", v.Charset)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != `{"charset":"latin1"}` {
		t.Fatalf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"charset":"nope"}`), &v); err == nil {
		t.Fatal("expected error for unknown charset")
	}
	if Charset(42).String() != "Charset(42)" {
		t.Fatalf("String() = %q", Charset(42).String())
	}
}
