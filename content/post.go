// Package content loads blog posts from a directory of Markdown files with
// front-matter and derives the listing, search, tag and navigation views
// consumed by the pages, API routes and feeds.
package content

// Post is the core content type. Every post comes from exactly one Markdown
// file; the slug is the filename without its extension.
type Post struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	ReadTime  string   `json:"readTime"`
	Excerpt   string   `json:"excerpt"`
	Tags      []string `json:"tags"`
	Content   string   `json:"content"`
	Published bool     `json:"published"`
	Author    string   `json:"author,omitempty"`
}

// Link returns the site-relative path of the post page.
func (p Post) Link() string {
	return "/blog/" + p.Slug
}

// HasTag reports whether the post carries tag, ignoring case.
func (p Post) HasTag(tag string) bool {
	want := normalizeTag(tag)
	for _, t := range p.Tags {
		if normalizeTag(t) == want {
			return true
		}
	}
	return false
}

const (
	defaultTitle    = "Untitled"
	defaultReadTime = "5 min read"
	excerptLength   = 150
	dateLayout      = "2006-01-02"
)
