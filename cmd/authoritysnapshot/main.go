// Command authoritysnapshot loads a persisted link-authority snapshot
// (the JSON AuthorityStore.ToJSON produces) and prints it as a sorted
// table. Adapted from cmd/print-zone/main.go's shape — load a
// persisted structured file, sort its records, print a table —
// generalized from a DNS zone file's records to the authority store's
// url->score map.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/gurted/gurtd/internal/linkgraph"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: authoritysnapshot path/to/snapshot.json\n")
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read snapshot: %v\n", err)
		os.Exit(1)
	}

	store := linkgraph.NewAuthorityStore()
	if err := store.FromJSON(data); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse snapshot: %v\n", err)
		os.Exit(1)
	}

	urls := store.URLs()
	sort.Strings(urls)

	fmt.Printf("AUTHORITY SNAPSHOT: %s\n", path)
	fmt.Printf("ENTRIES: %d\n", len(urls))
	for _, u := range urls {
		fmt.Printf("  %-60s %.6f\n", u, store.Get(u))
	}
}
