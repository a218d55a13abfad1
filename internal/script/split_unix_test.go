//go:build !windows

package script

import (
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"--input data.csv", []string{"--input", "data.csv"}, false},
		{`--name "John Smith" --tag 'a b'`, []string{"--name", "John Smith", "--tag", "a b"}, false},
		{`path\ with\ spaces`, []string{"path with spaces"}, false},
		{`--msg "unterminated`, nil, true},
		{`--msg 'open`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SplitArgs(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitArgs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
