package trash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseInfo(t *testing.T) {
	in := strings.NewReader("[Trash Info]\nPath=/tmp/ws/foo%20bar.txt\nDeletionDate=2024-03-07T09:05:01\n")
	info, err := ParseInfo(in)
	if err != nil {
		t.Fatalf("ParseInfo() error = %v", err)
	}
	if info.Path != "/tmp/ws/foo bar.txt" {
		t.Errorf("Path = %q, want decoded path", info.Path)
	}
	want := time.Date(2024, 3, 7, 9, 5, 1, 0, time.Local)
	if !info.DeletionDate.Equal(want) {
		t.Errorf("DeletionDate = %v, want %v", info.DeletionDate, want)
	}
}

// The reader must parse loosely: unpadded date fields, stray lines,
// missing header.
func TestParseInfoLoose(t *testing.T) {
	in := strings.NewReader("# comment\nPath=/a/b\nDeletionDate=2024-3-7T9:5:1\nUnknown=x\n")
	info, err := ParseInfo(in)
	if err != nil {
		t.Fatalf("ParseInfo() error = %v", err)
	}
	if info.Path != "/a/b" {
		t.Errorf("Path = %q", info.Path)
	}
	if info.DeletionDate.Month() != time.March {
		t.Errorf("unpadded DeletionDate not parsed: %v", info.DeletionDate)
	}
}

func TestParseInfoFailClosed(t *testing.T) {
	tests := []struct {
		desc string
		in   string
	}{
		{"missing Path", "[Trash Info]\nDeletionDate=2024-01-01T00:00:00\n"},
		{"empty Path", "[Trash Info]\nPath=\n"},
		{"relative Path", "[Trash Info]\nPath=foo/bar\n"},
		{"bad encoding", "[Trash Info]\nPath=%zz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := ParseInfo(strings.NewReader(tt.in))
			if !IsCorruptMetadata(err) {
				t.Errorf("ParseInfo() error = %v, want CorruptMetadata", err)
			}
		})
	}
}

func TestInfoSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "item.trashinfo")

	want := &Info{
		Path:         "/tmp/dir with spaces/foo+bar.txt",
		DeletionDate: time.Date(2024, 6, 1, 12, 30, 45, 0, time.Local),
	}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(raw)
	if !strings.HasPrefix(content, "[Trash Info]\n") {
		t.Errorf("missing header: %q", content)
	}
	// Spaces become %20, a literal plus is escaped, slashes stay literal.
	if !strings.Contains(content, "Path=/tmp/dir%20with%20spaces/foo%2Bbar.txt") {
		t.Errorf("path encoding wrong: %q", content)
	}

	got, err := LoadInfo(path)
	if err != nil {
		t.Fatalf("LoadInfo() error = %v", err)
	}
	if got.Path != want.Path {
		t.Errorf("Path = %q, want %q", got.Path, want.Path)
	}
	if !got.DeletionDate.Equal(want.DeletionDate) {
		t.Errorf("DeletionDate = %v, want %v", got.DeletionDate, want.DeletionDate)
	}

	// O_EXCL: a second save must refuse to clobber.
	if err := want.Save(path); err == nil {
		t.Error("Save() overwrote an existing record")
	}
}
