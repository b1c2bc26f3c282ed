package cli

import (
	"reflect"
	"testing"
)

func TestQuery(t *testing.T) {
	type field struct {
		Name   string `json:"name"`
		Offset int    `json:"offset"`
	}
	input := []field{{"magic", 0}, {"length", 4}, {"body", 8}}

	tests := []struct {
		name    string
		expr    string
		want    []any
		wantErr bool
	}{
		{"identity length", "length", []any{3}, false},
		{"iterate", ".[].name", []any{"magic", "length", "body"}, false},
		{"select", `.[] | select(.offset >= 4) | .offset`, []any{float64(4), float64(8)}, false},
		{"empty", "empty", nil, false},
		{"parse error", ".[", nil, true},
		{"runtime error", ".[0].name | tonumber", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(tt.expr, input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Query(%q) = %v, want error", tt.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Query(%q) error: %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Query(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}
