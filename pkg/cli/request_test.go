package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testRequest struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		want     testRequest
		wantErr  bool
	}{
		{"yaml", "req.yaml", "name: a\ncount: 2\n", testRequest{"a", 2}, false},
		{"yml", "req.YML", "name: b\ncount: 3\n", testRequest{"b", 3}, false},
		{"json", "req.json", `{"name":"c","count":4}`, testRequest{"c", 4}, false},
		{"unknown ext yaml", "req.txt", "name: d\n", testRequest{Name: "d"}, false},
		{"unknown ext json", "req", `{"name":"e"}`, testRequest{Name: "e"}, false},
		{"bad json", "req.json", "name: x", testRequest{}, true},
		{"bad yaml", "req.yaml", "name: [", testRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testRequest
			err := ParseRequest([]byte(tt.data), tt.filename, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRequest should fail, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRequest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	if err := os.WriteFile(path, []byte("name: file\ncount: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got testRequest
	if err := LoadRequest(path, &got); err != nil {
		t.Fatalf("LoadRequest error: %v", err)
	}
	if got != (testRequest{"file", 7}) {
		t.Errorf("LoadRequest = %+v", got)
	}

	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &got); err == nil {
		t.Error("LoadRequest should fail for missing file")
	}
}

func TestLoadRequestFrom(t *testing.T) {
	var got testRequest
	if err := LoadRequestFrom(strings.NewReader(`{"name":"stdin","count":1}`), &got); err != nil {
		t.Fatalf("LoadRequestFrom error: %v", err)
	}
	if got != (testRequest{"stdin", 1}) {
		t.Errorf("LoadRequestFrom = %+v", got)
	}

	got = testRequest{}
	if err := LoadRequestFrom(strings.NewReader("name: y\ncount: 5\n"), &got); err != nil {
		t.Fatalf("LoadRequestFrom yaml error: %v", err)
	}
	if got != (testRequest{"y", 5}) {
		t.Errorf("LoadRequestFrom = %+v", got)
	}

	if err := LoadRequestFrom(strings.NewReader("{[:"), &got); err == nil {
		t.Error("LoadRequestFrom should fail for garbage")
	}
}
