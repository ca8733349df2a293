package views

import "github.com/rikjimue/folio/content"

// SiteConfig holds the site-wide settings templates need. Every handler
// passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	Language    string
	Bio         string
	Projects    []Project
}

// Project is an entry in the home page project list.
type Project struct {
	Name        string
	Description string
	URL         string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// BlogIndex is the data behind the /blog listing.
type BlogIndex struct {
	Page      content.Page
	Tags      []string
	Query     string
	ActiveTag string
}

// PostPage is the data behind a single post.
type PostPage struct {
	Post     content.Post
	Adjacent content.Adjacent
	Related  []content.Post
}
