package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseRoundTrip(t *testing.T) {
	s := New(1, 1)
	release, err := s.Acquire(context.Background(), "a.gurt", 0)
	require.NoError(t, err)
	release()

	release, err = s.Acquire(context.Background(), "a.gurt", 0)
	require.NoError(t, err)
	release()
}

func TestGlobalPermitBlocksSecondHost(t *testing.T) {
	s := New(1, 1)
	release, err := s.Acquire(context.Background(), "a.gurt", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = s.Acquire(ctx, "b.gurt", 0)
	assert.Error(t, err, "global pool of size 1 must block a second host")

	release()
}

func TestPolitenessGateEnforcesMinimumInterval(t *testing.T) {
	s := New(4, 4)
	delay := 30 * time.Millisecond

	release, err := s.Acquire(context.Background(), "c.gurt", delay)
	require.NoError(t, err)
	first := time.Now()
	release()

	release, err = s.Acquire(context.Background(), "c.gurt", delay)
	require.NoError(t, err)
	elapsed := time.Since(first)
	release()

	assert.GreaterOrEqual(t, elapsed, delay, "second acquisition must wait for the politeness gate")
}

func TestNoDelayMeansNoWait(t *testing.T) {
	s := New(4, 4)
	start := time.Now()
	release, err := s.Acquire(context.Background(), "d.gurt", 0)
	require.NoError(t, err)
	release()
	release, err = s.Acquire(context.Background(), "d.gurt", 0)
	require.NoError(t, err)
	release()
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}
