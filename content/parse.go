package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Parse builds a Post from the raw bytes of a Markdown file. Front-matter may
// be YAML (---) or TOML (+++); a file without front-matter is all body.
// Metadata keys with an unexpected type fall back to their defaults, so the
// only error is front-matter that does not decode at all.
func Parse(slug string, src []byte, now time.Time) (Post, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil {
		return Post{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	content := string(body)

	p := Post{
		ID:        slug,
		Slug:      slug,
		Content:   content,
		Title:     stringOr(meta["title"], defaultTitle),
		Date:      dateOr(meta["date"], now.Format(dateLayout)),
		ReadTime:  stringOr(meta["readTime"], defaultReadTime),
		Excerpt:   stringOr(meta["excerpt"], defaultExcerpt(content)),
		Tags:      tagsOf(meta["tags"]),
		Published: meta["published"] != false,
		Author:    stringOr(meta["author"], ""),
	}
	return p, nil
}

func defaultExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

func stringOr(v any, fallback string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// dateOr accepts a quoted string or a YAML/TOML timestamp.
func dateOr(v any, fallback string) string {
	switch d := v.(type) {
	case string:
		if d != "" {
			return d
		}
	case time.Time:
		return d.Format(dateLayout)
	}
	return fallback
}

func tagsOf(v any) []string {
	tags := []string{}
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			switch t := item.(type) {
			case string:
				tags = append(tags, t)
			case int, int64, float64, bool:
				tags = append(tags, fmt.Sprint(t))
			}
		}
	case []string:
		tags = append(tags, list...)
	}
	return tags
}

// normalizeTag folds case only; surrounding spaces are part of the tag.
func normalizeTag(t string) string {
	return strings.ToLower(t)
}
