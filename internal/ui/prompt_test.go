package ui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/suteru/suteru/internal/trash"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		line    string
		want    Selection
		wantErr bool
	}{
		{"q", Selection{Quit: true}, false},
		{"*", Selection{All: true}, false},
		{"1 3 2", Selection{Indices: []int{1, 3, 2}}, false},
		{"1 2-4", Selection{Indices: []int{1, 2, 3, 4}}, false},
		{"2 2 2", Selection{Indices: []int{2}}, false},
		{"1 q", Selection{Quit: true, Indices: []int{1}}, false},
		{"", Selection{}, true},
		{"abc", Selection{}, true},
		{"1 abc 2", Selection{}, true}, // one bad token fails the batch
		{"0", Selection{}, true},
		{"-3", Selection{}, true},
		{"4-2", Selection{}, true},
		{"1.5", Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseSelection(tt.line)
			if tt.wantErr {
				if !errors.Is(err, trash.ErrInvalidSelection) {
					t.Fatalf("ParseSelection(%q) error = %v, want InvalidSelection", tt.line, err)
				}
				if got.Quit || got.All || len(got.Indices) != 0 {
					t.Errorf("failed batch still produced a selection: %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSelection(%q) error = %v", tt.line, err)
			}
			if got.Quit != tt.want.Quit || got.All != tt.want.All ||
				!reflect.DeepEqual(got.Indices, tt.want.Indices) {
				t.Errorf("ParseSelection(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestLineReaderSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("\n\n  \n1 2\n")
	var out strings.Builder
	r := NewLineReader(in, &out)

	line, err := r.ReadLine("> ")
	if err != nil {
		t.Fatal(err)
	}
	if line != "1 2" {
		t.Errorf("ReadLine = %q, want %q", line, "1 2")
	}
	if !strings.Contains(out.String(), "> ") {
		t.Error("prompt was not written")
	}
}
