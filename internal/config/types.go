// Package config provides configuration loading for gurtd using Viper.
// Configuration is loaded from YAML files with automatic environment variable binding.
//
// Environment variables use the GURTD_ prefix and underscore-separated keys:
//   - GURTD_SERVER_HOST -> server.host
//   - GURTD_SERVER_PORT -> server.port
//   - GURTD_CRAWL_SEEDS -> crawl.seeds (comma-separated)
package config

import (
	"os"
	"strconv"
	"strings"
)

// WorkersMode records whether crawl.workers was given as "auto" or as a
// fixed count.
type WorkersMode int

const (
	// WorkersAuto marks the "auto" setting (the default).
	WorkersAuto WorkersMode = iota
	// WorkersFixed marks an explicit worker count.
	WorkersFixed
)

// WorkerSetting represents the parsed crawl.workers setting. It is
// reported at startup; the ingestion worker runs as a single goroutine
// whatever its value.
type WorkerSetting struct {
	Mode  WorkersMode
	Value int
}

// String returns the string representation of the worker setting.
func (w WorkerSetting) String() string {
	if w.Mode == WorkersAuto {
		return "auto"
	}
	return strconv.Itoa(w.Value)
}

// ServerConfig contains the listener and TLS credential settings for the
// overlay server.
type ServerConfig struct {
	Host     string `yaml:"host"      mapstructure:"host"`
	Port     int    `yaml:"port"      mapstructure:"port"`
	CertPath string `yaml:"cert_path" mapstructure:"cert_path"`
	KeyPath  string `yaml:"key_path"  mapstructure:"key_path"`
}

// SchedulerConfig controls the crawl scheduler's global and per-host
// concurrency ceilings.
type SchedulerConfig struct {
	GlobalPermits int `yaml:"global_permits" mapstructure:"global_permits"` // G
	HostPermits   int `yaml:"host_permits"   mapstructure:"host_permits"`   // P
}

// TransportConfig mirrors internal/transport.Config's tunable staged
// deadlines for outbound GURT fetches.
type TransportConfig struct {
	ConnectTimeout   string `yaml:"connect_timeout"   mapstructure:"connect_timeout"`
	HandshakeTimeout string `yaml:"handshake_timeout" mapstructure:"handshake_timeout"`
	FetchTimeout     string `yaml:"fetch_timeout"     mapstructure:"fetch_timeout"`
	IdleTimeout      string `yaml:"idle_timeout"      mapstructure:"idle_timeout"`
	UserAgent        string `yaml:"user_agent"        mapstructure:"user_agent"`
	MaxRetries       int    `yaml:"max_retries"       mapstructure:"max_retries"`
}

// CrawlConfig seeds the ingestion pipeline and bounds per-domain candidate
// enumeration.
type CrawlConfig struct {
	Seeds               []string      `yaml:"seeds"                  mapstructure:"seeds"                  json:"seeds,omitempty"`
	Workers             WorkerSetting `yaml:"-"                      mapstructure:"-"`
	WorkersRaw          string        `yaml:"workers"                mapstructure:"workers"                json:"workers"`
	MaxCandidatesPerRun int           `yaml:"max_candidates_per_run" mapstructure:"max_candidates_per_run" json:"max_candidates_per_run"`
	RespectRobots       bool          `yaml:"respect_robots"         mapstructure:"respect_robots"         json:"respect_robots"`
}

// IndexConfig points at the on-disk location for the search index and hot
// query cache sizing.
type IndexConfig struct {
	Path         string `yaml:"path"           mapstructure:"path"`
	HotCacheTTL  string `yaml:"hot_cache_ttl"  mapstructure:"hot_cache_ttl"`
	HotCacheSize int    `yaml:"hot_cache_size" mapstructure:"hot_cache_size"`
}

// StorageConfig points at the submissions database.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string            `yaml:"level"             mapstructure:"level"             json:"level"`
	Structured       bool              `yaml:"structured"        mapstructure:"structured"        json:"structured"`
	StructuredFormat string            `yaml:"structured_format" mapstructure:"structured_format" json:"structured_format"`
	IncludePID       bool              `yaml:"include_pid"       mapstructure:"include_pid"       json:"include_pid"`
	ExtraFields      map[string]string `yaml:"extra_fields"      mapstructure:"extra_fields"      json:"extra_fields,omitempty"`
}

// RateLimitConfig controls the submission endpoint's rate limiting.
type RateLimitConfig struct {
	// CleanupSeconds is how often stale entries are cleaned up (default: 60)
	CleanupSeconds float64 `yaml:"cleanup_seconds" mapstructure:"cleanup_seconds" json:"cleanup_seconds"`
	// MaxIPEntries is the maximum number of tracked submitter IPs (default: 65536)
	MaxIPEntries int `yaml:"max_ip_entries" mapstructure:"max_ip_entries" json:"max_ip_entries"`
	// IPQPS is the per-submitter queries per second limit (default: 5/60, i.e. 5 per minute; 0 = disabled)
	IPQPS float64 `yaml:"ip_qps" mapstructure:"ip_qps" json:"ip_qps"`
	// IPBurst is the per-submitter burst size (default: 5)
	IPBurst int `yaml:"ip_burst" mapstructure:"ip_burst" json:"ip_burst"`
}

// APIConfig contains the admin API settings (health, debug, static UI).
//
// Note: APIKey is intentionally treated as a secret and should not be returned by API endpoints.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host"    mapstructure:"host"`
	Port    int    `yaml:"port"    mapstructure:"port"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
}

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"     mapstructure:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"  mapstructure:"scheduler"`
	Transport TransportConfig `yaml:"transport"  mapstructure:"transport"`
	Crawl     CrawlConfig     `yaml:"crawl"      mapstructure:"crawl"`
	Index     IndexConfig     `yaml:"index"      mapstructure:"index"`
	Storage   StorageConfig   `yaml:"storage"    mapstructure:"storage"`
	Logging   LoggingConfig   `yaml:"logging"    mapstructure:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	API       APIConfig       `yaml:"api"        mapstructure:"api"`
}

// ResolveConfigPath determines the config file path from flag or environment.
func ResolveConfigPath(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue
	}
	if v := strings.TrimSpace(os.Getenv("GURTD_CONFIG")); v != "" {
		return v
	}
	return ""
}

// Load loads configuration from a YAML file with environment variable overrides.
// This is the main entry point for loading configuration.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (GURTD_*)
//  2. Config file values
//  3. Default values
func Load(path string) (*Config, error) {
	return loadFromSource(path)
}
