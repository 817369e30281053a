// Package robots parses robots.txt group/prefix rules and sitemap
// <loc> entries, and implements the longest-prefix-match allow/deny
// decision procedure of §4.6.
package robots

import (
	"strconv"
	"strings"
)

// Group is one User-agent block: an agent token (lowercased, possibly
// "*"), its ordered allow/disallow prefixes, and an optional
// crawl-delay.
type Group struct {
	Agent      string
	Allow      []string
	Disallow   []string
	CrawlDelay float64
	HasDelay   bool
}

// Policy is a parsed robots.txt: an ordered list of groups.
type Policy struct {
	Groups []Group
}

// Parse walks text line by line per §4.6: blank lines and "#" comments
// are ignored, and directives preceding any User-agent line apply to
// an implicit wildcard group.
func Parse(text string) Policy {
	var p Policy
	var current *Group

	ensureCurrent := func() *Group {
		if current == nil {
			p.Groups = append(p.Groups, Group{Agent: "*"})
			current = &p.Groups[len(p.Groups)-1]
		}
		return current
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := splitDirective(line)
		if !ok {
			continue
		}
		switch strings.ToLower(name) {
		case "user-agent":
			p.Groups = append(p.Groups, Group{Agent: strings.ToLower(value)})
			current = &p.Groups[len(p.Groups)-1]
		case "allow":
			g := ensureCurrent()
			g.Allow = append(g.Allow, value)
		case "disallow":
			g := ensureCurrent()
			g.Disallow = append(g.Disallow, value)
		case "crawl-delay":
			g := ensureCurrent()
			if d, err := strconv.ParseFloat(value, 64); err == nil && d >= 0 {
				g.CrawlDelay = d
				g.HasDelay = true
			}
		}
	}
	return p
}

func splitDirective(line string) (name, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// selectGroup picks the group whose agent token is the longest
// substring contained in agent (case-insensitive), falling back to "*"
// when no group matches.
func (p Policy) selectGroup(agent string) (Group, bool) {
	agent = strings.ToLower(agent)
	var best *Group
	var star *Group
	for i := range p.Groups {
		g := &p.Groups[i]
		if g.Agent == "*" {
			star = g
		}
		if g.Agent != "*" && strings.Contains(agent, g.Agent) {
			if best == nil || len(g.Agent) > len(best.Agent) {
				best = g
			}
		}
	}
	if best != nil {
		return *best, true
	}
	if star != nil {
		return *star, true
	}
	return Group{}, false
}

// IsAllowed implements the two-step decision procedure of §4.6.
func (p Policy) IsAllowed(agent, path string) bool {
	g, ok := p.selectGroup(agent)
	if !ok {
		return true
	}
	allowLen, allowMatched := longestMatch(g.Allow, path)
	disallowLen, disallowMatched := longestMatch(g.Disallow, path)
	if !allowMatched && !disallowMatched {
		return true
	}
	if allowLen == disallowLen {
		return allowMatched
	}
	return allowLen > disallowLen
}

// CrawlDelay returns the selected group's crawl-delay in seconds, if
// any was set.
func (p Policy) CrawlDelay(agent string) (float64, bool) {
	g, ok := p.selectGroup(agent)
	if !ok {
		return 0, false
	}
	return g.CrawlDelay, g.HasDelay
}

func longestMatch(prefixes []string, path string) (int, bool) {
	best := -1
	matched := false
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) && len(prefix) > best {
			best = len(prefix)
			matched = true
		}
	}
	return best, matched
}
