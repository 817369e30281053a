// Package config provides configuration loading and validation for gurtd.
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Command-line flags (not handled here, see cmd/gurtd/main.go)
//  2. Environment variables (GURTD_* prefix)
//  3. YAML config file (if specified with --config)
//  4. Hardcoded defaults
//
// Environment variables are mapped from GURTD_CATEGORY_SETTING format,
// e.g., GURTD_SERVER_HOST maps to server.host in YAML.
//
// All configuration is validated during Load() to ensure correctness early.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// initConfig sets up the config loader with defaults, env binding, and config file.
func initConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment variable binding
	// Uses GURTD_ prefix: GURTD_SERVER_HOST -> server.host
	v.SetEnvPrefix("GURTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// setDefaults configures all default values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4878)
	v.SetDefault("server.cert_path", "gurtd.crt")
	v.SetDefault("server.key_path", "gurtd.key")

	// Scheduler defaults
	v.SetDefault("scheduler.global_permits", 64)
	v.SetDefault("scheduler.host_permits", 2)

	// Transport defaults, mirroring internal/transport.Config's own
	// clamped defaults.
	v.SetDefault("transport.connect_timeout", "10s")
	v.SetDefault("transport.handshake_timeout", "5s")
	v.SetDefault("transport.fetch_timeout", "30s")
	v.SetDefault("transport.idle_timeout", "500ms")
	v.SetDefault("transport.user_agent", "gurtd-crawler/1.0")
	v.SetDefault("transport.max_retries", 2)

	// Crawl defaults
	v.SetDefault("crawl.seeds", []string{})
	v.SetDefault("crawl.workers", "auto")
	v.SetDefault("crawl.max_candidates_per_run", 16)
	v.SetDefault("crawl.respect_robots", true)

	// Index defaults
	v.SetDefault("index.path", "index")
	v.SetDefault("index.hot_cache_ttl", "20s")
	v.SetDefault("index.hot_cache_size", 1024)

	// Storage defaults
	v.SetDefault("storage.path", "gurtd.db")

	// Logging defaults
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.structured", false)
	v.SetDefault("logging.structured_format", "json")
	v.SetDefault("logging.include_pid", false)
	v.SetDefault("logging.extra_fields", map[string]string{})

	// Rate limiting defaults (submission endpoint)
	v.SetDefault("rate_limit.cleanup_seconds", 60.0)
	v.SetDefault("rate_limit.max_ip_entries", 65536)
	v.SetDefault("rate_limit.ip_qps", 5.0/60.0)
	v.SetDefault("rate_limit.ip_burst", 5)

	// Admin API defaults
	// Default to disabled and bound to localhost for safety.
	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "127.0.0.1")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.api_key", "")
}

// loadFromSource loads configuration from file and environment.
func loadFromSource(configPath string) (*Config, error) {
	v, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	loadServerConfig(v, cfg)
	loadSchedulerConfig(v, cfg)
	loadTransportConfig(v, cfg)
	loadCrawlConfig(v, cfg)
	loadIndexConfig(v, cfg)
	loadStorageConfig(v, cfg)
	loadLoggingConfig(v, cfg)
	loadRateLimitConfig(v, cfg)
	loadAPIConfig(v, cfg)

	// Normalize and validate
	if err := normalizeConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadServerConfig(v *viper.Viper, cfg *Config) {
	cfg.Server.Host = v.GetString("server.host")
	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.CertPath = v.GetString("server.cert_path")
	cfg.Server.KeyPath = v.GetString("server.key_path")
}

func loadSchedulerConfig(v *viper.Viper, cfg *Config) {
	cfg.Scheduler.GlobalPermits = v.GetInt("scheduler.global_permits")
	cfg.Scheduler.HostPermits = v.GetInt("scheduler.host_permits")
}

func loadTransportConfig(v *viper.Viper, cfg *Config) {
	cfg.Transport.ConnectTimeout = v.GetString("transport.connect_timeout")
	cfg.Transport.HandshakeTimeout = v.GetString("transport.handshake_timeout")
	cfg.Transport.FetchTimeout = v.GetString("transport.fetch_timeout")
	cfg.Transport.IdleTimeout = v.GetString("transport.idle_timeout")
	cfg.Transport.UserAgent = v.GetString("transport.user_agent")
	cfg.Transport.MaxRetries = v.GetInt("transport.max_retries")
}

func loadCrawlConfig(v *viper.Viper, cfg *Config) {
	cfg.Crawl.Seeds = getStringSliceOrSplit(v, "crawl.seeds")
	cfg.Crawl.WorkersRaw = v.GetString("crawl.workers")
	cfg.Crawl.Workers = parseWorkers(cfg.Crawl.WorkersRaw)
	cfg.Crawl.MaxCandidatesPerRun = v.GetInt("crawl.max_candidates_per_run")
	cfg.Crawl.RespectRobots = v.GetBool("crawl.respect_robots")
}

func loadIndexConfig(v *viper.Viper, cfg *Config) {
	cfg.Index.Path = v.GetString("index.path")
	cfg.Index.HotCacheTTL = v.GetString("index.hot_cache_ttl")
	cfg.Index.HotCacheSize = v.GetInt("index.hot_cache_size")
}

func loadStorageConfig(v *viper.Viper, cfg *Config) {
	cfg.Storage.Path = v.GetString("storage.path")
}

func loadLoggingConfig(v *viper.Viper, cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(v.GetString("logging.level"))
	cfg.Logging.Structured = v.GetBool("logging.structured")
	cfg.Logging.StructuredFormat = v.GetString("logging.structured_format")
	cfg.Logging.IncludePID = v.GetBool("logging.include_pid")
	cfg.Logging.ExtraFields = v.GetStringMapString("logging.extra_fields")
}

func loadAPIConfig(v *viper.Viper, cfg *Config) {
	cfg.API.Enabled = v.GetBool("api.enabled")
	cfg.API.Host = v.GetString("api.host")
	cfg.API.Port = v.GetInt("api.port")
	cfg.API.APIKey = v.GetString("api.api_key")
}

func loadRateLimitConfig(v *viper.Viper, cfg *Config) {
	cfg.RateLimit.CleanupSeconds = v.GetFloat64("rate_limit.cleanup_seconds")
	cfg.RateLimit.MaxIPEntries = v.GetInt("rate_limit.max_ip_entries")
	cfg.RateLimit.IPQPS = v.GetFloat64("rate_limit.ip_qps")
	cfg.RateLimit.IPBurst = v.GetInt("rate_limit.ip_burst")
}

// parseWorkers converts the workers string to WorkerSetting.
func parseWorkers(raw string) WorkerSetting {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" || raw == "auto" {
		return WorkerSetting{Mode: WorkersAuto}
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return WorkerSetting{Mode: WorkersFixed, Value: n}
	}
	return WorkerSetting{Mode: WorkersAuto}
}

// getStringSliceOrSplit handles both slice and comma-separated string values.
func getStringSliceOrSplit(v *viper.Viper, key string) []string {
	if slice := v.GetStringSlice(key); len(slice) > 0 {
		result := make([]string, 0, len(slice))
		for _, s := range slice {
			s = strings.TrimSpace(s)
			if s != "" {
				result = append(result, s)
			}
		}
		return result
	}
	if s := v.GetString(key); s != "" {
		parts := strings.Split(s, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return nil
}

// normalizeConfig validates and normalizes the configuration.
func normalizeConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New("server.port must be 1..65535")
	}

	if cfg.Scheduler.GlobalPermits <= 0 {
		cfg.Scheduler.GlobalPermits = 64
	}
	if cfg.Scheduler.HostPermits <= 0 {
		cfg.Scheduler.HostPermits = 2
	}
	if cfg.Scheduler.HostPermits > cfg.Scheduler.GlobalPermits {
		cfg.Scheduler.HostPermits = cfg.Scheduler.GlobalPermits
	}

	if cfg.Crawl.MaxCandidatesPerRun <= 0 {
		cfg.Crawl.MaxCandidatesPerRun = 16
	}

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.Logging.ExtraFields == nil {
		cfg.Logging.ExtraFields = map[string]string{}
	}

	// Normalize admin API
	if cfg.API.Host == "" {
		cfg.API.Host = "127.0.0.1"
	}
	if cfg.API.Enabled {
		if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
			return errors.New("api.port must be 1..65535")
		}
	}

	return nil
}
