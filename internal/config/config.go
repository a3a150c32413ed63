package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Sources  SourcesConfig  `yaml:"sources"`
	Filter   FilterConfig   `yaml:"filter"`
}

// DatabaseConfig configures SQLite storage. An empty path selects the
// in-memory store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// RefreshConfig bounds a refresh cycle.
type RefreshConfig struct {
	Timeout string `yaml:"timeout"`
}

// ParseTimeout returns the refresh timeout as a time.Duration.
func (r RefreshConfig) ParseTimeout() time.Duration {
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return time.Minute
	}
	return d
}

// SourcesConfig holds configuration for all content sources.
type SourcesConfig struct {
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Reddit     RedditConfig     `yaml:"reddit"`
	ArXiv      ArXivConfig      `yaml:"arxiv"`
	Tools      ToolsConfig      `yaml:"tools"`
	RSS        RSSConfig        `yaml:"rss"`
}

// HackerNewsConfig for the Hacker News adapter.
type HackerNewsConfig struct {
	Enabled   bool `yaml:"enabled"`
	ScanLimit int  `yaml:"scan_limit"`
	MaxItems  int  `yaml:"max_items"`
}

// RedditConfig for the Reddit adapter.
type RedditConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Subreddits  []string `yaml:"subreddits"`
	PerSubLimit int      `yaml:"per_sub_limit"`
	MaxItems    int      `yaml:"max_items"`
}

// ArXivConfig for the arXiv adapter.
type ArXivConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Categories []string `yaml:"categories"`
	MaxResults int      `yaml:"max_results"`
	MaxItems   int      `yaml:"max_items"`
}

// ToolsConfig for the static tools adapter.
type ToolsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RSSConfig for the optional RSS adapter.
type RSSConfig struct {
	Enabled  bool       `yaml:"enabled"`
	MaxItems int        `yaml:"max_items"`
	Feeds    []FeedItem `yaml:"feeds"`
}

// FeedItem is a single RSS feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FilterConfig extends the AI keyword classifier.
type FilterConfig struct {
	ExtraKeywords []string `yaml:"extra_keywords"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./aihub.db"},
		Server:   ServerConfig{Port: 8080},
		Refresh:  RefreshConfig{Timeout: "1m"},
		Sources: SourcesConfig{
			HackerNews: HackerNewsConfig{Enabled: true, ScanLimit: 50, MaxItems: 10},
			Reddit: RedditConfig{
				Enabled:     true,
				Subreddits:  []string{"MachineLearning", "artificial", "singularity", "ChatGPT"},
				PerSubLimit: 10,
				MaxItems:    15,
			},
			ArXiv: ArXivConfig{
				Enabled:    true,
				Categories: []string{"cs.AI", "cs.LG", "cs.CL"},
				MaxResults: 10,
				MaxItems:   8,
			},
			Tools: ToolsConfig{Enabled: true},
			RSS: RSSConfig{
				Enabled:  false,
				MaxItems: 10,
				Feeds: []FeedItem{
					{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/"},
					{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/"},
				},
			},
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AIHUB_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("AIHUB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}
