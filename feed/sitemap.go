package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/rikjimue/folio/content"
)

// Change frequencies used in sitemap entries.
const (
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
)

// SitemapEntry is one URL in the sitemap.
type SitemapEntry struct {
	URL             string
	LastModified    string
	ChangeFrequency string
	Priority        float64
}

// Sitemap lists the static pages followed by one entry per post. It is not
// capped. Posts whose date does not parse get no last-modified date.
func Sitemap(siteURL string, posts []content.Post, now time.Time) []SitemapEntry {
	today := now.Format("2006-01-02")
	entries := []SitemapEntry{
		{URL: BuildURL(siteURL), LastModified: today, ChangeFrequency: ChangeMonthly, Priority: 1},
		{URL: BuildURL(siteURL, "blog"), LastModified: today, ChangeFrequency: ChangeWeekly, Priority: 0.8},
		{URL: BuildURL(siteURL, "rss.xml"), LastModified: today, ChangeFrequency: ChangeWeekly, Priority: 0.6},
		{URL: BuildURL(siteURL, "feed.json"), LastModified: today, ChangeFrequency: ChangeWeekly, Priority: 0.6},
	}
	for _, p := range posts {
		lastmod := ""
		if t, ok := parseDate(p.Date); ok {
			lastmod = t.Format("2006-01-02")
		}
		entries = append(entries, SitemapEntry{
			URL:             PostURL(siteURL, p.Slug),
			LastModified:    lastmod,
			ChangeFrequency: ChangeMonthly,
			Priority:        0.7,
		})
	}
	return entries
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapXML encodes entries as a sitemaps.org urlset document.
func SitemapXML(entries []SitemapEntry) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified,
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}
