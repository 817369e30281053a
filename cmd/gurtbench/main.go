// Command gurtbench load-tests a running gurtd's /api/search endpoint:
// N workers issue concurrent GURT fetches and the tool reports
// throughput and latency percentiles. Adapted directly from
// cmd/bench/main.go's concurrency/latency-collection shape,
// generalized from a raw UDP DNS packet round trip to a GURT
// request/response exchange through internal/transport.Client.
package main

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gurted/gurtd/internal/resolver"
	"github.com/gurted/gurtd/internal/transport"
	"github.com/spf13/pflag"
)

func main() {
	var (
		host        = pflag.String("host", "127.0.0.1", "gurtd host")
		query       = pflag.String("q", "example", "search query")
		concurrency = pflag.Int("concurrency", 50, "number of concurrent workers")
		requests    = pflag.Int("requests", 2000, "total number of requests")
		timeout     = pflag.Duration("timeout", 5*time.Second, "per-request timeout")
	)
	pflag.Parse()

	chain := &resolver.Chained{Resolvers: []resolver.Resolver{
		resolver.LocalResolver{},
		resolver.NewOverlayResolver(resolver.Config{}),
		resolver.OSFallback{},
	}}
	client := transport.New(transport.Config{FetchTimeout: *timeout}, chain)
	rawURL := fmt.Sprintf("gurt://%s/api/search?q=%s", *host, url.QueryEscape(*query))

	conc := *concurrency
	if conc < 1 {
		conc = 1
	}
	total := *requests
	if total < 1 {
		total = 1
	}
	per := total / conc
	rem := total % conc

	lat := make([]float64, 0, total)
	var latMu sync.Mutex

	t0 := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < conc; i++ {
		n := per
		if i < rem {
			n++
		}
		if n <= 0 {
			continue
		}
		wg.Add(1)
		go func(num int) {
			defer wg.Done()
			for j := 0; j < num; j++ {
				start := time.Now()
				ctx, cancel := context.WithTimeout(context.Background(), *timeout)
				_, err := client.Fetch(ctx, rawURL)
				cancel()
				if err != nil {
					continue
				}
				ms := float64(time.Since(start).Microseconds()) / 1000.0
				latMu.Lock()
				lat = append(lat, ms)
				latMu.Unlock()
			}
		}(n)
	}
	wg.Wait()
	elapsed := time.Since(t0).Seconds()

	if len(lat) == 0 {
		fmt.Println("no successful requests")
		return
	}
	sort.Float64s(lat)
	p50 := percentile(lat, 50)
	p95 := percentile(lat, 95)
	p99 := percentile(lat, 99)
	qps := float64(len(lat)) / elapsed

	fmt.Printf("host=%s q=%q concurrency=%d requests=%d\n", *host, *query, conc, len(lat))
	fmt.Printf("elapsed_s=%.3f qps=%.1f\n", elapsed, qps)
	fmt.Printf("latency_ms p50=%.3f p95=%.3f p99=%.3f min=%.3f max=%.3f\n", p50, p95, p99, lat[0], lat[len(lat)-1])
}

func percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted))*float64(p)/100.0) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
