package trash

import "testing"

func TestScanFilterSkip(t *testing.T) {
	f := ScanFilter{
		ExcludeFiles:    []string{".DS_Store"},
		ExcludeGlobs:    []string{"*.tmp"},
		ExcludePatterns: []string{`^core\.\d+$`},
	}
	if err := f.Compile(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		skip bool
	}{
		{".", true},
		{"..", true},
		{".hidden", true}, // hidden, ShowHidden off
		{".DS_Store", true},
		{"scratch.tmp", true},
		{"core.1234", true},
		{"keep.txt", false},
		{"core.txt", false},
	}
	for _, tt := range tests {
		if got := f.Skip(tt.name); got != tt.skip {
			t.Errorf("Skip(%q) = %v, want %v", tt.name, got, tt.skip)
		}
	}
}

func TestScanFilterShowHidden(t *testing.T) {
	f := ScanFilter{ShowHidden: true}
	if err := f.Compile(); err != nil {
		t.Fatal(err)
	}
	if f.Skip(".hidden") {
		t.Error(".hidden skipped despite ShowHidden")
	}
	if !f.Skip(".") || !f.Skip("..") {
		t.Error("dot entries must always be skipped")
	}
}

func TestScanFilterCompileRejectsBadRules(t *testing.T) {
	f := ScanFilter{ExcludePatterns: []string{"("}}
	if err := f.Compile(); err == nil {
		t.Error("Compile() accepted an invalid pattern")
	}
	f = ScanFilter{ExcludeGlobs: []string{"[unclosed"}}
	if err := f.Compile(); err == nil {
		t.Error("Compile() accepted an invalid glob")
	}
}
