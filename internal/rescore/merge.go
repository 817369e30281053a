package rescore

import (
	"context"
	"sort"
	"time"

	"github.com/gurted/gurtd/internal/index"
)

// ShardFunc produces one shard's hits for a query. A real deployment
// has exactly one engine shard today; MergeTopK is written against N so
// a future multi-shard engine slots in without changing callers.
type ShardFunc func(ctx context.Context) ([]index.Hit, error)

type shardResult struct {
	hits []index.Hit
	err  error
}

// MergeTopK runs every shard concurrently, gives each up to
// perShardTimeout to answer, and merges whatever arrived in time into
// one slice capped at topK. A shard that times out or errors
// contributes nothing rather than failing the whole query — grounded
// in the teacher's resolveWithTimeout channel+timer pattern,
// generalized from one resolver call to N shard calls fanned in
// concurrently.
func MergeTopK(ctx context.Context, shards []ShardFunc, perShardTimeout time.Duration, topK int) []index.Hit {
	if len(shards) == 0 {
		return []index.Hit{}
	}

	resCh := make(chan shardResult, len(shards))
	for _, shard := range shards {
		shard := shard
		go func() {
			shardCtx, cancel := context.WithTimeout(ctx, perShardTimeout)
			defer cancel()
			hits, err := shard(shardCtx)
			resCh <- shardResult{hits: hits, err: err}
		}()
	}

	timer := time.NewTimer(perShardTimeout)
	defer timer.Stop()

	var merged []index.Hit
collect:
	for i := 0; i < len(shards); i++ {
		select {
		case r := <-resCh:
			if r.err != nil {
				continue
			}
			merged = append(merged, r.hits...)
		case <-timer.C:
			break collect
		}
	}

	sortHitsDescending(merged)
	if topK > 0 && topK < len(merged) {
		merged = merged[:topK]
	}
	return merged
}

func sortHitsDescending(hits []index.Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}
