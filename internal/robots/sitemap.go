package robots

import "strings"

// ExtractLocs extracts the trimmed text inside every <loc>...</loc>
// element via a linear scan, per §4.6.
func ExtractLocs(xml string) []string {
	var out []string
	lower := strings.ToLower(xml)
	pos := 0
	for {
		start := strings.Index(lower[pos:], "<loc>")
		if start < 0 {
			break
		}
		start += pos + len("<loc>")
		end := strings.Index(lower[start:], "</loc>")
		if end < 0 {
			break
		}
		end += start
		out = append(out, strings.TrimSpace(xml[start:end]))
		pos = end + len("</loc>")
	}
	return out
}

// OrderCandidates stable-partitions candidates so that ones also
// present in sitemapLocs come first (in their original relative
// order), followed by the rest (also in their original relative
// order), per §4.6's sitemap prioritization rule.
func OrderCandidates(candidates, sitemapLocs []string) []string {
	inSitemap := make(map[string]struct{}, len(sitemapLocs))
	for _, loc := range sitemapLocs {
		inSitemap[loc] = struct{}{}
	}

	ordered := make([]string, 0, len(candidates))
	rest := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := inSitemap[c]; ok {
			ordered = append(ordered, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(ordered, rest...)
}
