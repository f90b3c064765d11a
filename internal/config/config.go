package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// FeedSource is one RSS or Atom feed to poll.
type FeedSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// RepoSource is one GitHub repository whose releases are monitored.
type RepoSource struct {
	Name     string `yaml:"name"`
	Repo     string `yaml:"repo"` // owner/name
	Category string `yaml:"category"`
}

// HackerNews holds the keyword search settings for the Algolia HN API.
type HackerNews struct {
	Keywords []string `yaml:"keywords"`
	MinScore int      `yaml:"min_score"`
	MaxItems int      `yaml:"max_items"`
}

// History controls deduplication against previously generated digests.
type History struct {
	Dedupe    bool   `yaml:"dedupe"`
	Retention string `yaml:"retention"`
}

type Config struct {
	OutputDir  string       `yaml:"output_dir,omitempty"`
	Feeds      []FeedSource `yaml:"rss_feeds"`
	Repos      []RepoSource `yaml:"github_releases"`
	HackerNews HackerNews   `yaml:"hacker_news"`
	History    History      `yaml:"history"`
}

// GetOutputDir returns the digest output root, defaulting to "output".
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return "output"
	}
	return c.OutputDir
}

// MaxStories returns the Hacker News result cap, defaulting to 10.
func (c *Config) MaxStories() int {
	if c.HackerNews.MaxItems <= 0 {
		return 10
	}
	return c.HackerNews.MaxItems
}

// HistoryRetention returns how long reported items are kept before
// pruning. Supports "Nd" day syntax alongside time.ParseDuration.
func (c *Config) HistoryRetention() time.Duration {
	const fallback = 90 * 24 * time.Hour
	s := c.History.Retention
	if s == "" {
		return fallback
	}
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "sentinel-ops", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "sentinel-ops", "history.db")
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

	if err := validate(&cfg); err != nil {
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

func validate(cfg *Config) error {
	for i, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("rss_feeds[%d]: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("feed %q: invalid url: %w", f.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feed %q: url scheme must be http or https, got %q", f.Name, u.Scheme)
		}
	}
	for i, r := range cfg.Repos {
		if r.Name == "" {
			return fmt.Errorf("github_releases[%d]: name is required", i)
		}
		parts := strings.Split(r.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("repo %q: repo must be owner/name, got %q", r.Name, r.Repo)
		}
	}
	if cfg.HackerNews.MinScore < 0 {
		return fmt.Errorf("hacker_news: min_score must not be negative, got %d", cfg.HackerNews.MinScore)
	}
	return nil
}
