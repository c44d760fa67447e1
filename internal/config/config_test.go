package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected at least one default source")
	}
	if len(cfg.Categories) == 0 {
		t.Error("expected at least one default category")
	}
	if cfg.GetCapacity() != 200 {
		t.Errorf("expected default capacity 200, got %d", cfg.GetCapacity())
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if unknown := UnknownCategorySources(cfg); len(unknown) != 0 {
		t.Errorf("default sources should all resolve their category, got %v", unknown)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `capacity: 50
entries_per_page: 5
strategy: weighted
categories:
  - name: Blogs
    icon: "✍️"
    color: "#10b981"
sources:
  - name: Test
    url: https://example.com/feed
    category: Blogs
    weight: 3
    fetch_full_content: true
    content_selector: "article.body"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Capacity != 50 || cfg.EntriesPerPage != 5 {
		t.Errorf("limits not read: %+v", cfg)
	}
	if cfg.Strategy != "weighted" {
		t.Errorf("strategy %q, want weighted", cfg.Strategy)
	}
	src := cfg.Sources[0]
	if src.Name != "Test" || src.Weight != 3 || !src.FetchFullContent || src.ContentSelector != "article.body" {
		t.Errorf("source not read: %+v", src)
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected default sources when config doesn't exist")
	}
	// First run writes the defaults next to where it looked.
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("defaults should be written on first run: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.GetCapacity() != 200 {
		t.Errorf("capacity default: got %d", cfg.GetCapacity())
	}
	if cfg.GetEntriesPerPage() != 10 {
		t.Errorf("entries_per_page default: got %d", cfg.GetEntriesPerPage())
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("workers default: got %d", cfg.GetWorkers())
	}
	if cfg.FetchTimeoutDuration().Seconds() != 20 {
		t.Errorf("fetch_timeout default: got %v", cfg.FetchTimeoutDuration())
	}
}

func TestEffectiveWeight(t *testing.T) {
	if (Source{}).EffectiveWeight() != 1 {
		t.Error("missing weight should default to 1")
	}
	if (Source{Weight: 5}).EffectiveWeight() != 5 {
		t.Error("explicit weight should be kept")
	}
}

func TestValidateMissingName(t *testing.T) {
	cfg := &Config{Sources: []Source{{URL: "https://example.com"}}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestValidateMissingURL(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test"}}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestValidateDuplicateName(t *testing.T) {
	cfg := &Config{Sources: []Source{
		{Name: "Test", URL: "https://a.example/feed"},
		{Name: "Test", URL: "https://b.example/feed"},
	}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for duplicate source name")
	}
}

func TestValidateInvalidURLScheme(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test", URL: "file:///etc/passwd"}}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for file:// URL scheme")
	}
}

func TestValidateFullContentNeedsSelector(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "Test", URL: "https://example.com/feed", FetchFullContent: true}}}
	if err := Validate(cfg); err == nil {
		t.Error("expected error for fetch_full_content without content_selector")
	}
}

func TestValidateUnknownCategoryIsNotFatal(t *testing.T) {
	cfg := &Config{
		Categories: []Category{{Name: "Blogs"}},
		Sources:    []Source{{Name: "Test", URL: "https://example.com/feed", Category: "Ghosts"}},
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("unknown category should degrade, not fail: %v", err)
	}
	unknown := UnknownCategorySources(cfg)
	if len(unknown) != 1 || unknown[0] != "Test" {
		t.Errorf("expected [Test], got %v", unknown)
	}
}

func TestFindSource(t *testing.T) {
	cfg := &Config{Sources: []Source{{Name: "A"}, {Name: "B"}}}
	if _, ok := cfg.FindSource("B"); !ok {
		t.Error("expected to find source B")
	}
	if _, ok := cfg.FindSource("Z"); ok {
		t.Error("did not expect to find source Z")
	}
}
