// Package feed projects a list of published posts into syndication formats:
// RSS 2.0, JSON Feed 1.1 and sitemap entries. Every builder is a pure
// function of its arguments.
package feed

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/rikjimue/folio/content"
)

// MaxItems caps the number of posts in the RSS and JSON feeds.
const MaxItems = 20

// Channel describes the site publishing the feed.
type Channel struct {
	Title       string
	Description string
	SiteURL     string
	Language    string // e.g. "en-us"
	AuthorName  string
	AuthorEmail string
	Categories  []string
	TTL         int // minutes
	Limit       int // defaults to MaxItems
}

func (ch Channel) limit() int {
	if ch.Limit <= 0 {
		return MaxItems
	}
	return ch.Limit
}

func (ch Channel) recent(posts []content.Post) []content.Post {
	if n := ch.limit(); len(posts) > n {
		return posts[:n]
	}
	return posts
}

// BuildURL joins path segments onto a base URL.
func BuildURL(base string, pathSegments ...string) string {
	base = strings.TrimSuffix(base, "/")
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if len(pathSegments) == 0 {
		return u.String()
	}
	u.Path = path.Join(u.Path, "/", path.Join(pathSegments...))
	return u.String()
}

// PostURL returns the canonical URL of a post.
func PostURL(siteURL, slug string) string {
	return BuildURL(siteURL, "blog", slug)
}

// parseDate accepts the post date layout or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
