package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds all EchoLens settings. Defaults come from
// DefaultConfig; the CLI layers config file, ENV and flags on top.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Match       MatchConfig       `yaml:"match"`
	NER         NERConfig         `yaml:"ner"`
	Search      SearchConfig      `yaml:"search"`
	FactCheck   FactCheckConfig   `yaml:"factcheck"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig describes how article pages are fetched.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RatePerSecond float64       `yaml:"rate_per_second"` // per-domain
	RateBurst     int           `yaml:"rate_burst"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
}

// CacheConfig controls the layered article fetch cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// MatchConfig carries the claim matching and correlation knobs.
type MatchConfig struct {
	Threshold      int  `yaml:"threshold"`        // sentence match cutoff, 0-100
	ExactMatch     bool `yaml:"exact_match"`      // verbatim substring matching
	DateWindowDays int  `yaml:"date_window_days"` // publish-date proximity window
	MaxDelta       int  `yaml:"max_delta"`        // fact-pair numeric slack
}

// NERConfig selects and configures the named-entity extractor.
type NERConfig struct {
	Provider string        `yaml:"provider"` // "rules" or "openai"
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SearchConfig controls related-article URL filtering.
type SearchConfig struct {
	MaxResults   int      `yaml:"max_results"`
	ExtraDomains []string `yaml:"extra_domains"` // allowlist additions
}

// FactCheckConfig configures the optional Fact Check Tools lookup.
type FactCheckConfig struct {
	Enabled  bool   `yaml:"enabled"`
	APIKey   string `yaml:"api_key"`
	PageSize int    `yaml:"page_size"`
}

// ConcurrencyConfig sizes the worker pools.
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers"` // related-article extraction
	ScoreWorkers   int `yaml:"score_workers"`   // per-candidate scoring fan-out
}

// OutputConfig controls logging and report rendering.
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cacheDir := ".echolens-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".echolens", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "EchoLens/1.0 (+https://github.com/echolens/echolens)",
			MaxBodyBytes:  2_000_000,
			RatePerSecond: 2,
			RateBurst:     5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Match: MatchConfig{
			Threshold:      DefaultThreshold,
			DateWindowDays: 14,
			MaxDelta:       DefaultMaxDelta,
		},
		NER: NERConfig{
			Provider: "rules",
			Model:    "gpt-4o-mini",
			Timeout:  30 * time.Second,
		},
		Search: SearchConfig{
			MaxResults: 20,
		},
		FactCheck: FactCheckConfig{
			PageSize: 5,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: runtime.NumCPU(),
			ScoreWorkers:   1,
		},
		Output: OutputConfig{
			LogLevel: "info",
		},
	}
}
