package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDefaults(t *testing.T) {
	path := writeConfig(t, "core:\n  verbose: true\n")
	cfg, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Core.Verbose {
		t.Error("core.verbose not applied")
	}
	if cfg.Listing.Sort != "name" {
		t.Errorf("listing.sort = %q, want default %q", cfg.Listing.Sort, "name")
	}
}

func TestParseFullConfig(t *testing.T) {
	path := writeConfig(t, `
core:
  trash_dir: /tmp/suteru-trash
listing:
  sort: version
  reverse: true
  dirs_first: true
  show_hidden: true
filter:
  include:
    within_days: 30
  exclude:
    files:
      - .DS_Store
    globs:
      - "*.log"
    patterns:
      - '^core\.\d+$'
    size:
      min: 0KB
      max: 10GB
`)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Core.TrashDir != "/tmp/suteru-trash" {
		t.Errorf("trash_dir = %q", cfg.Core.TrashDir)
	}
	if cfg.Listing.Sort != "version" || !cfg.Listing.Reverse || !cfg.Listing.DirsFirst {
		t.Errorf("listing not applied: %+v", cfg.Listing)
	}
	if cfg.Filter.Include.Period != 30 {
		t.Errorf("within_days = %d", cfg.Filter.Include.Period)
	}
	if cfg.Filter.Exclude.Size.Max != "10GB" {
		t.Errorf("size.max = %q", cfg.Filter.Exclude.Size.Max)
	}
}

func TestParseRejectsBadSortKey(t *testing.T) {
	path := writeConfig(t, "listing:\n  sort: bogus\n")
	if _, err := Parse(path); err == nil {
		t.Error("Parse() accepted an unknown sort key")
	}
}

func TestParseRejectsBadSize(t *testing.T) {
	path := writeConfig(t, "filter:\n  exclude:\n    size:\n      min: lots\n")
	if _, err := Parse(path); err == nil {
		t.Error("Parse() accepted an invalid size")
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "core: [\n")
	_, err := Parse(path)
	if err == nil {
		t.Fatal("Parse() accepted malformed YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	content, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var p parser
	if _, err := content.WriteString(p.getDefaultConfigContents()); err != nil {
		t.Fatal(err)
	}
	content.Close()

	if _, err := Parse(content.Name()); err != nil {
		t.Errorf("generated default config does not parse: %v", err)
	}
}
