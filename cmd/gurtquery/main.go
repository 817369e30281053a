// Command gurtquery is a small diagnostic client: it issues one
// /api/search request against a running gurtd instance over the GURT
// protocol and prints the ranked results. Adapted from
// cmd/dnsquery/main.go's shape — parse flags, issue one request, print
// a sorted/formatted answer set — generalized from a raw UDP DNS query
// to a GURT fetch against the search API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gurted/gurtd/internal/resolver"
	"github.com/gurted/gurtd/internal/rescore"
	"github.com/gurted/gurtd/internal/transport"
	"github.com/spf13/pflag"
)

func main() {
	var (
		host    = pflag.String("host", "localhost", "gurtd host to query")
		query   = pflag.String("q", "", "search query")
		timeout = pflag.Duration("timeout", 5*time.Second, "request timeout")
		quiet   = pflag.Bool("quiet", false, "suppress output (exit status indicates success)")
	)
	pflag.Parse()

	results, err := runQuery(*host, *query, *timeout)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "gurtquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return
	}
	for i, r := range results {
		fmt.Printf("%2d. %-60s %.4f  %s\n", i+1, r.Title, r.Score, r.URL)
	}
}

func runQuery(host, query string, timeout time.Duration) ([]rescore.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query required (-q)")
	}

	chain := &resolver.Chained{Resolvers: []resolver.Resolver{
		resolver.LocalResolver{},
		resolver.NewOverlayResolver(resolver.Config{}),
		resolver.OSFallback{},
	}}
	client := transport.New(transport.Config{FetchTimeout: timeout}, chain)

	rawURL := fmt.Sprintf("gurt://%s/api/search?q=%s", host, url.QueryEscape(query))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	var results []rescore.Result
	if err := json.Unmarshal(resp.Body, &results); err != nil {
		return nil, fmt.Errorf("unparseable response: %w", err)
	}
	return results, nil
}
