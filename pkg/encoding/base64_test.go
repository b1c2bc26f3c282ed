package encoding

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestDecodeBase64Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"padded", "aGVsbG8gd29ybGQ=", []byte("hello world")},
		{"unpadded", "aGVsbG8gd29ybGQ", []byte("hello world")},
		{"url alphabet", "-_8", []byte{0xfb, 0xff}},
		{"whitespace", "aGVs\nbG8=", []byte("hello")},
		{"stops at padding", "aGk=aGk=", []byte("hi")},
		{"dangling char", "aGVsb", []byte("hel")},
		{"empty", "", []byte{}},
		{"garbage only", "!!!", []byte{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeBase64Lenient(tc.input)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("DecodeBase64Lenient(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestBase64Data_JSON(t *testing.T) {
	original := Base64Data("test data for round trip")

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(b) != `"dGVzdCBkYXRhIGZvciByb3VuZCB0cmlw"` {
		t.Errorf("Marshal = %s", b)
	}

	var decoded Base64Data
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip = %q; want %q", decoded, original)
	}
	if original.String() != "dGVzdCBkYXRhIGZvciByb3VuZCB0cmlw" {
		t.Errorf("String() = %q", original.String())
	}
}
