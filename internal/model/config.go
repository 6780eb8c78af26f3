package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete libris configuration
type Config struct {
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Store        StoreConfig       `yaml:"store" mapstructure:"store"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Layout       LayoutConfig      `yaml:"layout" mapstructure:"layout"`
	Catalog      CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Authors      map[string]string `yaml:"authors" mapstructure:"authors"` // Author name -> avatar URL
}

// ServerConfig configures the HTTP front-end
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	SiteTitle       string        `yaml:"site_title" mapstructure:"site_title"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RobotsDisallow  []string      `yaml:"robots_disallow" mapstructure:"robots_disallow"` // Paths listed in robots.txt
}

// StoreConfig locates the headless content store
type StoreConfig struct {
	ProjectID  string `yaml:"project_id" mapstructure:"project_id"`
	Dataset    string `yaml:"dataset" mapstructure:"dataset"`
	APIVersion string `yaml:"api_version" mapstructure:"api_version"` // Date-style version, e.g. 2024-01-01
	UseCDN     bool   `yaml:"use_cdn" mapstructure:"use_cdn"`
	Token      string `yaml:"token,omitempty" mapstructure:"token"`       // Prefer LIBRIS_STORE_TOKEN
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"` // Overrides the project host
}

// HTTPConfig configures the outbound HTTP client
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures the query result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig limits requests to the content store
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ConcurrencyConfig controls cache warming parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LayoutConfig controls card pill layout
type LayoutConfig struct {
	MaxWidth    int `yaml:"max_width" mapstructure:"max_width"`       // Pill row width budget
	PillPadding int `yaml:"pill_padding" mapstructure:"pill_padding"` // Horizontal padding added to each measured label
}

// CatalogConfig holds the externally supplied display catalogs
type CatalogConfig struct {
	Badges     Catalog `yaml:"badges" mapstructure:"badges"`
	Categories Catalog `yaml:"categories" mapstructure:"categories"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	cacheDir := filepath.Join(os.TempDir(), "libris-cache")
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".libris", "cache")
	}

	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			SiteTitle:       "True Islam Library",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RobotsDisallow:  []string{"/library?"},
		},
		Store: StoreConfig{
			Dataset:    "production",
			APIVersion: "2024-01-01",
			UseCDN:     true,
		},
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Libris/0.1 (+https://github.com/ppiankov/libris)",
			MaxBodyBytes: 8_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 5 * time.Minute,
			DiskDir:   cacheDir,
			DiskTTL:   time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 10,
			BurstSize:         5,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Layout: LayoutConfig{
			MaxWidth:    260,
			PillPadding: 20,
		},
		Catalog: CatalogConfig{
			Badges:     DefaultBadges(),
			Categories: DefaultCategories(),
		},
		Authors: map[string]string{},
	}
}
