package robots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleRobots = "User-agent: *\nDisallow: /private\nAllow: /private/open\nCrawl-delay: 2.5\n"

func TestIsAllowedLongestPrefixWins(t *testing.T) {
	p := Parse(sampleRobots)
	assert.False(t, p.IsAllowed("gurtbot", "/private/x"))
	assert.True(t, p.IsAllowed("gurtbot", "/private/open/y"))
}

func TestCrawlDelayParsed(t *testing.T) {
	p := Parse(sampleRobots)
	delay, ok := p.CrawlDelay("gurtbot")
	assert.True(t, ok)
	assert.Equal(t, 2.5, delay)
}

func TestNoMatchDefaultsAllow(t *testing.T) {
	p := Parse("User-agent: *\nDisallow: /admin\n")
	assert.True(t, p.IsAllowed("gurtbot", "/public/page"))
}

func TestNegativeCrawlDelayIgnored(t *testing.T) {
	p := Parse("User-agent: *\nCrawl-delay: -5\n")
	_, ok := p.CrawlDelay("gurtbot")
	assert.False(t, ok)
}

func TestSpecificAgentOverridesWildcard(t *testing.T) {
	p := Parse("User-agent: *\nDisallow: /\nUser-agent: gurtbot\nAllow: /\n")
	assert.True(t, p.IsAllowed("gurtbot", "/anything"))
	assert.False(t, p.IsAllowed("othercrawler", "/anything"))
}

func TestExtractLocs(t *testing.T) {
	xml := "<urlset><url><loc> https://a.gurt/1 </loc></url><url><loc>https://a.gurt/2</loc></url></urlset>"
	locs := ExtractLocs(xml)
	assert.Equal(t, []string{"https://a.gurt/1", "https://a.gurt/2"}, locs)
}

func TestOrderCandidatesPrioritizesSitemapEntries(t *testing.T) {
	candidates := []string{"a", "b", "c", "d"}
	sitemap := []string{"c", "a"}
	ordered := OrderCandidates(candidates, sitemap)
	assert.Equal(t, []string{"a", "c", "b", "d"}, ordered)
}
