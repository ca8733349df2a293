package content

import (
	"sort"
	"strings"
)

// Tags flattens the tags of posts into a sorted, deduplicated slice.
// Duplicates are detected case-sensitively.
func Tags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// ByTag returns the posts carrying tag, compared case-insensitively.
func ByTag(posts []Post, tag string) []Post {
	out := []Post{}
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the posts whose title, excerpt, content or any tag contains
// query, ignoring case. A blank query matches everything.
func Search(posts []Post, query string) []Post {
	if strings.TrimSpace(query) == "" {
		return append([]Post{}, posts...)
	}
	q := strings.ToLower(query)
	out := []Post{}
	for _, p := range posts {
		if matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Post, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Excerpt), q) ||
		strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// Filter narrows posts by the text query first and the tag second. A blank
// query or tag leaves the list unfiltered on that axis.
func Filter(posts []Post, query, tag string) []Post {
	out := Search(posts, query)
	if strings.TrimSpace(tag) != "" {
		out = ByTag(out, tag)
	}
	return out
}

// Adjacent holds the neighbours of a post in a date-descending list.
type Adjacent struct {
	Previous *Post // older
	Next     *Post // newer
}

// Neighbors locates slug in posts, which must be sorted newest first.
// Both neighbours are nil when slug is absent.
func Neighbors(posts []Post, slug string) Adjacent {
	var adj Adjacent
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i+1 < len(posts) {
			older := posts[i+1]
			adj.Previous = &older
		}
		if i > 0 {
			newer := posts[i-1]
			adj.Next = &newer
		}
		break
	}
	return adj
}

// Related finds posts that share at least one tag with current.
func Related(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	related := []Post{}
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// Page is one slice of a paginated listing.
type Page struct {
	Posts      []Post
	Number     int
	TotalPages int
}

// HasPrev reports whether a newer page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether an older page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate returns page number (1-based) of posts, perPage at a time. The
// page number is clamped into range; an empty list still has one page.
func Paginate(posts []Post, number, perPage int) Page {
	if perPage <= 0 {
		perPage = len(posts)
		if perPage == 0 {
			perPage = 1
		}
	}
	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	if number < 1 {
		number = 1
	}
	if number > total {
		number = total
	}
	start := (number - 1) * perPage
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	return Page{
		Posts:      append([]Post{}, posts[start:end]...),
		Number:     number,
		TotalPages: total,
	}
}
