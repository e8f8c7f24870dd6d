package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/suteru/suteru/internal/ordering"
	"github.com/suteru/suteru/internal/trash"
	"github.com/suteru/suteru/internal/ui"
)

type scriptedReader struct {
	lines []string
}

func (r *scriptedReader) ReadLine(string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newTestCLI(t *testing.T, lines ...string) *CLI {
	t.Helper()
	storage, err := trash.NewStorage(trash.Config{
		Dirs:     trash.NewDirs(filepath.Join(t.TempDir(), "trash")),
		Ordering: ordering.Options{Key: ordering.Name, CaseSensitive: true},
		Filter:   trash.ScanFilter{ShowHidden: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return &CLI{
		version: Version{AppName: "suteru"},
		storage: storage,
		reader:  &scriptedReader{lines: lines},
	}
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	prev := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = prev }()

	fnErr := fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out), fnErr
}

func TestClearReportsNewTotal(t *testing.T) {
	c := newTestCLI(t, "y")

	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := c.storage.Put(path); err != nil {
			t.Fatal(err)
		}
	}

	out, err := captureStdout(t, c.Clear)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if !strings.Contains(out, "2 file(s) erased (0 left)") {
		t.Errorf("Clear() output %q missing erased count with new total", out)
	}

	n, err := c.storage.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("trash not empty after Clear: %d items", n)
	}
}

func TestSelectItems(t *testing.T) {
	items := []trash.Item{
		{Name: "a.2024-01-01T00:00:00"},
		{Name: "b.2024-01-01T00:00:01"},
		{Name: "c.2024-01-01T00:00:02"},
	}

	tests := []struct {
		name string
		sel  ui.Selection
		want []string
	}{
		{"all", ui.Selection{All: true}, []string{"a.2024-01-01T00:00:00", "b.2024-01-01T00:00:01", "c.2024-01-01T00:00:02"}},
		{"single", ui.Selection{Indices: []int{2}}, []string{"b.2024-01-01T00:00:01"}},
		{"keeps order", ui.Selection{Indices: []int{3, 1}}, []string{"c.2024-01-01T00:00:02", "a.2024-01-01T00:00:00"}},
		{"out of range skipped", ui.Selection{Indices: []int{1, 9}}, []string{"a.2024-01-01T00:00:00"}},
		{"all out of range", ui.Selection{Indices: []int{0, 4}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, item := range selectItems(items, tt.sel) {
				got = append(got, item.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectItems() = %v, want %v", got, tt.want)
			}
		})
	}
}
