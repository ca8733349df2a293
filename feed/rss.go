package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rikjimue/folio/content"
)

const atomNamespace = "http://www.w3.org/2005/Atom"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string      `xml:"title"`
	Description    string      `xml:"description"`
	Link           string      `xml:"link"`
	Language       string      `xml:"language,omitempty"`
	LastBuildDate  string      `xml:"lastBuildDate"`
	AtomLink       rssAtomLink `xml:"atom:link"`
	ManagingEditor string      `xml:"managingEditor,omitempty"`
	WebMaster      string      `xml:"webMaster,omitempty"`
	Categories     []string    `xml:"category"`
	TTL            int         `xml:"ttl,omitempty"`
	Items          []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       cdata    `xml:"title"`
	Description cdata    `xml:"description"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type cdata struct {
	Text string `xml:",cdata"`
}

func newCDATA(s string) cdata {
	return cdata{Text: strings.Map(xmlChar, s)}
}

// xmlChar replaces runes outside the XML 1.0 Char production with U+FFFD.
// encoding/xml escapes chardata but copies CDATA sections as-is.
func xmlChar(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r',
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return unicode.ReplacementChar
}

// RSS renders an RSS 2.0 document for the most recent posts. Title and
// description are wrapped in CDATA; every other text node is escaped.
func RSS(ch Channel, posts []content.Post, built time.Time) ([]byte, error) {
	recent := ch.recent(posts)
	items := make([]rssItem, 0, len(recent))
	for _, p := range recent {
		postURL := PostURL(ch.SiteURL, p.Slug)
		pubDate := ""
		if t, ok := parseDate(p.Date); ok {
			pubDate = t.UTC().Format(time.RFC1123Z)
		}
		items = append(items, rssItem{
			Title:       newCDATA(p.Title),
			Description: newCDATA(p.Excerpt),
			Link:        postURL,
			GUID:        rssGUID{IsPermaLink: true, Value: postURL},
			PubDate:     pubDate,
			Author:      ch.contact(),
			Categories:  p.Tags,
		})
	}

	doc := rssXML{
		Version: "2.0",
		AtomNS:  atomNamespace,
		Channel: rssChannel{
			Title:         ch.Title,
			Description:   ch.Description,
			Link:          BuildURL(ch.SiteURL),
			Language:      ch.Language,
			LastBuildDate: built.UTC().Format(time.RFC1123Z),
			AtomLink: rssAtomLink{
				Href: BuildURL(ch.SiteURL, "rss.xml"),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			ManagingEditor: ch.contact(),
			WebMaster:      ch.contact(),
			Categories:     ch.Categories,
			TTL:            ch.TTL,
			Items:          items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return buf.Bytes(), nil
}

// contact formats the author the way RSS expects: "email (Name)".
func (ch Channel) contact() string {
	if ch.AuthorEmail == "" {
		return ""
	}
	if ch.AuthorName == "" {
		return ch.AuthorEmail
	}
	return ch.AuthorEmail + " (" + ch.AuthorName + ")"
}
