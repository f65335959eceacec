package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete engine configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" json:"http"`
	Resolver ResolverConfig `yaml:"resolver" json:"resolver"`
	Cache    CacheConfig    `yaml:"cache" json:"cache"`
	LLM      LLMConfig      `yaml:"llm" json:"llm"`
}

// HTTPConfig controls the knowledge-base HTTP client
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`             // per-request timeout
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`       // sent on every request
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	BaseURL      string        `yaml:"base_url" json:"base_url"`           // pattern, %s = language code
	CheckRobots  bool          `yaml:"check_robots" json:"check_robots"`   // honor robots.txt per host
}

// ResolverConfig controls planning, fetching and acceptance
type ResolverConfig struct {
	TaskTimeout       time.Duration `yaml:"task_timeout" json:"task_timeout"`             // per-language task budget
	OverallTimeout    time.Duration `yaml:"overall_timeout" json:"overall_timeout"`       // caller-facing deadline
	Cooldown          time.Duration `yaml:"cooldown" json:"cooldown"`                     // min interval between fetch batches
	RejectWhenCooling bool          `yaml:"reject_when_cooling" json:"reject_when_cooling"` // fail fast instead of waiting on the gate
	MaxLanguages      int           `yaml:"max_languages" json:"max_languages"`           // fan-out bound per resolution
	SearchLimit       int           `yaml:"search_limit" json:"search_limit"`             // srlimit for full-text search
}

// CacheConfig controls the layered result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
	DiskDir   string        `yaml:"disk_dir" json:"disk_dir"`
}

// LLMConfig controls optional match explanations (never affects scoring)
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Timeout   int    `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ".gazetteer/cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".gazetteer", "cache")
	}

	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Gazetteer/0.1 (+https://github.com/ppiankov/gazetteer)",
			MaxBodyBytes: 1_000_000,
			BaseURL:      "https://%s.wikipedia.org",
			CheckRobots:  true,
		},
		Resolver: ResolverConfig{
			TaskTimeout:       8 * time.Second,
			OverallTimeout:    10 * time.Second,
			Cooldown:          time.Second,
			RejectWhenCooling: false,
			MaxLanguages:      4,
			SearchLimit:       5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
			DiskDir:   cacheDir,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			Timeout:   30,
			MaxTokens: 300,
		},
	}
}
