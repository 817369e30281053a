package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerSettingString(t *testing.T) {
	tests := []struct {
		name string
		ws   WorkerSetting
		want string
	}{
		{"auto mode", WorkerSetting{Mode: WorkersAuto}, "auto"},
		{"fixed mode 4", WorkerSetting{Mode: WorkersFixed, Value: 4}, "4"},
		{"fixed mode 0", WorkerSetting{Mode: WorkersFixed, Value: 0}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.ws.String()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		envValue string
		want     string
	}{
		{"flag takes precedence", "/path/from/flag", "/path/from/env", "/path/from/flag"},
		{"env when no flag", "", "/path/from/env", "/path/from/env"},
		{"empty when neither", "", "", ""},
		{"whitespace flag", "  ", "/path/from/env", "/path/from/env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GURTD_CONFIG", tt.envValue)
			got := ResolveConfigPath(tt.flag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 4878, cfg.Server.Port)
	assert.Equal(t, 64, cfg.Scheduler.GlobalPermits)
	assert.Equal(t, 2, cfg.Scheduler.HostPermits)
	assert.Equal(t, WorkersAuto, cfg.Crawl.Workers.Mode)
	assert.True(t, cfg.Crawl.RespectRobots)
	assert.Equal(t, 16, cfg.Crawl.MaxCandidatesPerRun)
	assert.Equal(t, "30s", cfg.Transport.FetchTimeout)
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 5353
  cert_path: "/etc/gurtd/tls.crt"
  key_path: "/etc/gurtd/tls.key"

scheduler:
  global_permits: 32
  host_permits: 4

crawl:
  seeds:
    - "gurt://example.gurt/"
  workers: "2"
  respect_robots: false

logging:
  level: "DEBUG"
  structured: true
  structured_format: "keyvalue"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 5353, cfg.Server.Port)
	assert.Equal(t, "/etc/gurtd/tls.crt", cfg.Server.CertPath)
	assert.Equal(t, 32, cfg.Scheduler.GlobalPermits)
	assert.Equal(t, 4, cfg.Scheduler.HostPermits)
	assert.Equal(t, WorkersFixed, cfg.Crawl.Workers.Mode)
	assert.Equal(t, 2, cfg.Crawl.Workers.Value)
	assert.False(t, cfg.Crawl.RespectRobots)
	require.Len(t, cfg.Crawl.Seeds, 1)
	assert.Equal(t, "gurt://example.gurt/", cfg.Crawl.Seeds[0])
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Structured)
	assert.Equal(t, "keyvalue", cfg.Logging.StructuredFormat)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: [invalid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidPort(t *testing.T) {
	content := `
server:
  port: 0
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeInvalidWorkers(t *testing.T) {
	content := `
crawl:
  workers: "invalid"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// With Viper, invalid workers gracefully defaults to "auto"
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, WorkersAuto, cfg.Crawl.Workers.Mode)
}

func TestNormalizeHostPermitsClampedToGlobal(t *testing.T) {
	content := `
scheduler:
  global_permits: 4
  host_permits: 10
`
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scheduler.GlobalPermits)
	assert.Equal(t, 4, cfg.Scheduler.HostPermits, "host permits should be clamped to the global ceiling")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GURTD_SERVER_HOST", "192.168.1.1")
	t.Setenv("GURTD_SERVER_PORT", "8053")
	t.Setenv("GURTD_CRAWL_WORKERS", "8")
	t.Setenv("GURTD_CRAWL_SEEDS", "gurt://a.gurt/, gurt://b.gurt/")
	t.Setenv("GURTD_SCHEDULER_GLOBAL_PERMITS", "128")
	t.Setenv("GURTD_CRAWL_RESPECT_ROBOTS", "false")
	t.Setenv("GURTD_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.1", cfg.Server.Host)
	assert.Equal(t, 8053, cfg.Server.Port)
	assert.Equal(t, WorkersFixed, cfg.Crawl.Workers.Mode)
	assert.Equal(t, 8, cfg.Crawl.Workers.Value)
	assert.Len(t, cfg.Crawl.Seeds, 2)
	assert.Equal(t, 128, cfg.Scheduler.GlobalPermits)
	assert.False(t, cfg.Crawl.RespectRobots)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}
