package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rikjimue/folio/content"
)

// JSONFeedVersion identifies the JSON Feed revision produced by JSONFeed.
const JSONFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string       `json:"version"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	HomePageURL string       `json:"home_page_url"`
	FeedURL     string       `json:"feed_url"`
	Language    string       `json:"language,omitempty"`
	Authors     []jsonAuthor `json:"authors,omitempty"`
	Items       []jsonItem   `json:"items"`
}

type jsonAuthor struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type jsonItem struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	ContentHTML   string       `json:"content_html"`
	Summary       string       `json:"summary"`
	DatePublished string       `json:"date_published,omitempty"`
	Tags          []string     `json:"tags"`
	Authors       []jsonAuthor `json:"authors,omitempty"`
}

// JSONFeed renders a JSON Feed 1.1 document for the most recent posts.
// content_html is the raw body with newlines turned into <br>; it is not a
// Markdown rendering.
func JSONFeed(ch Channel, posts []content.Post) ([]byte, error) {
	var authors []jsonAuthor
	if ch.AuthorName != "" {
		authors = []jsonAuthor{{Name: ch.AuthorName, URL: BuildURL(ch.SiteURL)}}
	}

	recent := ch.recent(posts)
	items := make([]jsonItem, 0, len(recent))
	for _, p := range recent {
		postURL := PostURL(ch.SiteURL, p.Slug)
		published := ""
		if t, ok := parseDate(p.Date); ok {
			published = t.UTC().Format(time.RFC3339)
		}
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		items = append(items, jsonItem{
			ID:            postURL,
			URL:           postURL,
			Title:         p.Title,
			ContentHTML:   strings.ReplaceAll(p.Content, "\n", "<br>"),
			Summary:       p.Excerpt,
			DatePublished: published,
			Tags:          tags,
			Authors:       authors,
		})
	}

	doc := jsonFeed{
		Version:     JSONFeedVersion,
		Title:       ch.Title,
		Description: ch.Description,
		HomePageURL: BuildURL(ch.SiteURL),
		FeedURL:     BuildURL(ch.SiteURL, "feed.json"),
		Language:    ch.Language,
		Authors:     authors,
		Items:       items,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json feed: %w", err)
	}
	return b, nil
}
