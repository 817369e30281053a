package linkgraph

const (
	// damping and iterations are carried over from the original
	// implementation's link module: a fixed 20-iteration power method
	// at damping 0.85, rather than an until-convergence loop.
	damping    = 0.85
	iterations = 20
)

// PageRank runs the fixed-iteration power method over g and returns a
// node -> score mapping, per §3's "PageRank is a mapping node -> score."
// Dangling nodes (no outbound links) redistribute their rank mass
// evenly across every node, the standard fix for sinks that would
// otherwise leak rank out of the system.
func PageRank(g *Graph) map[string]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	rank := make(map[string]float64, n)
	for _, node := range nodes {
		rank[node] = 1.0 / float64(n)
	}

	for iter := 0; iter < iterations; iter++ {
		next := make(map[string]float64, n)
		base := (1 - damping) / float64(n)
		for _, node := range nodes {
			next[node] = base
		}

		var danglingMass float64
		for _, node := range nodes {
			out := g.Out(node)
			if len(out) == 0 {
				danglingMass += rank[node]
				continue
			}
			share := damping * rank[node] / float64(len(out))
			for _, dst := range out {
				next[dst] += share
			}
		}

		if danglingMass > 0 {
			spread := damping * danglingMass / float64(n)
			for _, node := range nodes {
				next[node] += spread
			}
		}

		rank = next
	}
	return rank
}

// Trust derives a domain-trust score from CNAME chain depth: 1/(1+depth)
// for depth <= 5, else 0, matching the rescorer's formula in §4.8.
func Trust(depth int) float64 {
	if depth < 0 || depth > 5 {
		return 0
	}
	return 1 / float64(1+depth)
}
