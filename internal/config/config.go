package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source is one configured external feed.
type Source struct {
	Name             string `yaml:"name"`
	URL              string `yaml:"url"`
	Category         string `yaml:"category"`
	Icon             string `yaml:"icon"`
	Color            string `yaml:"color"`
	Description      string `yaml:"description,omitempty"`
	Weight           int    `yaml:"weight,omitempty"`
	FetchFullContent bool   `yaml:"fetch_full_content,omitempty"`
	ContentSelector  string `yaml:"content_selector,omitempty"`
	SanitizeSummary  bool   `yaml:"sanitize_summary,omitempty"`
}

// EffectiveWeight returns the source weight, defaulting to 1.
func (s Source) EffectiveWeight() int {
	if s.Weight <= 0 {
		return 1
	}
	return s.Weight
}

// Category is a grouping label applied to one or more sources.
type Category struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

type Config struct {
	Capacity       int        `yaml:"capacity"`
	EntriesPerPage int        `yaml:"entries_per_page"`
	Strategy       string     `yaml:"strategy,omitempty"`
	Workers        int        `yaml:"workers,omitempty"`
	FetchTimeout   string     `yaml:"fetch_timeout,omitempty"`
	RequestsPerSec float64    `yaml:"requests_per_sec,omitempty"`
	OutputPath     string     `yaml:"output,omitempty"`
	Categories     []Category `yaml:"categories"`
	Sources        []Source   `yaml:"sources"`
}

// GetCapacity returns the retained-entry limit, defaulting to 200.
func (c *Config) GetCapacity() int {
	if c.Capacity <= 0 {
		return 200
	}
	return c.Capacity
}

// GetEntriesPerPage returns the page size advertised in snapshot metadata.
func (c *Config) GetEntriesPerPage() int {
	if c.EntriesPerPage <= 0 {
		return 10
	}
	return c.EntriesPerPage
}

// GetWorkers returns the fetch worker-pool size, defaulting to 4.
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// FetchTimeoutDuration returns the per-source fetch timeout.
func (c *Config) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// GetRequestsPerSec returns the outbound request pacing rate.
func (c *Config) GetRequestsPerSec() float64 {
	if c.RequestsPerSec <= 0 {
		return 2
	}
	return c.RequestsPerSec
}

// FindSource looks up a source by name.
func (c *Config) FindSource(name string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "friendfeed", "config.yaml")
}

// DefaultOutputPath is where the snapshot lands when neither config nor the
// --output flag says otherwise.
func DefaultOutputPath() string {
	return filepath.Join(xdg.DataHome, "friendfeed", "friends_feed.json")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks structural requirements: every source needs a name and an
// http(s) URL, and names must be unique. A source pointing at an unknown
// category is NOT an error here; it only degrades category rollups, which the
// aggregator handles.
func Validate(cfg *Config) error {
	seen := make(map[string]bool, len(cfg.Sources))
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if s.FetchFullContent && s.ContentSelector == "" {
			return fmt.Errorf("source %q: fetch_full_content requires content_selector", s.Name)
		}
	}
	for i, c := range cfg.Categories {
		if c.Name == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
	}
	return nil
}

// UnknownCategorySources returns the names of sources whose category does not
// resolve to a configured Category. Callers warn about these; their entries
// still appear in the flat article list.
func UnknownCategorySources(cfg *Config) []string {
	known := make(map[string]bool, len(cfg.Categories))
	for _, c := range cfg.Categories {
		known[c.Name] = true
	}
	var unknown []string
	for _, s := range cfg.Sources {
		if !known[s.Category] {
			unknown = append(unknown, s.Name)
		}
	}
	return unknown
}
