package services

import (
	"path/filepath"
	"testing"

	"github.com/gurted/gurtd/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "gurtd.db")
	cfg.Index.Path = ""
	return cfg
}

func TestBuildWiresEveryCollaborator(t *testing.T) {
	cfg := testConfig(t)
	s, err := Build(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	assert.NotNil(t, s.Index)
	assert.NotNil(t, s.Cache)
	assert.NotNil(t, s.Authority)
	assert.NotNil(t, s.Graph)
	assert.NotNil(t, s.Recrawl)
	assert.NotNil(t, s.Limiter)
	assert.NotNil(t, s.Scheduler)
	assert.NotNil(t, s.Resolver)
	assert.NotNil(t, s.Transport)
	assert.NotNil(t, s.Store)
	assert.NotNil(t, s.Worker)
	assert.NotNil(t, s.Router)
	assert.Same(t, s.Index, s.Router.Index)
	assert.Same(t, s.Worker, s.Router.Worker)
}

func TestSeedCrawlEnqueuesEverySeed(t *testing.T) {
	cfg := testConfig(t)
	s, err := Build(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	s.SeedCrawl([]string{"one.gurt", "two.gurt"})
}
