// Package views renders the HTML pages of the site. Pages are html/template
// files embedded in the binary and exposed as templ components so handlers
// and the Markdown renderer share one component type.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/rikjimue/folio/content"
	"github.com/rikjimue/folio/feed"
	"github.com/rikjimue/folio/markdown"
)

//go:embed templates/*.html
var files embed.FS

var pages = map[string]*template.Template{
	"home":  parse("home.html"),
	"blog":  parse("blog.html"),
	"post":  parse("post.html"),
	"error": parse("error.html"),
}

func parse(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name))
}

type pageData struct {
	Site   SiteConfig
	Meta   PageMeta
	JSONLD template.JS
	Year   int
	Data   any
}

func render(page string, site SiteConfig, meta PageMeta, jsonLD string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pd := pageData{
			Site:   site,
			Meta:   meta,
			JSONLD: template.JS(jsonLD),
			Year:   time.Now().Year(),
			Data:   data,
		}
		if err := pages[page].ExecuteTemplate(w, "layout", pd); err != nil {
			return fmt.Errorf("render %s: %w", page, err)
		}
		return nil
	})
}

// Home renders the landing page with the bio, projects and latest posts.
func Home(cfg SiteConfig, latest []content.Post) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         feed.BuildURL(cfg.URL),
		OGType:      "website",
	}
	return render("home", cfg, meta, WebsiteJsonLD(cfg), latest)
}

// Blog renders the searchable, paginated post listing.
func Blog(cfg SiteConfig, idx BlogIndex) templ.Component {
	title := "Blog | " + cfg.Name
	if idx.ActiveTag != "" {
		title = idx.ActiveTag + " | " + title
	}
	meta := PageMeta{
		Title:       title,
		Description: cfg.Description,
		URL:         feed.BuildURL(cfg.URL, "blog"),
		OGType:      "website",
	}
	return render("blog", cfg, meta, "", idx)
}

type postData struct {
	PostPage
	Body template.HTML
}

// Post renders a single article with its Markdown body, neighbours and
// related posts.
func Post(cfg SiteConfig, page PostPage) templ.Component {
	meta := PageMeta{
		Title:       page.Post.Title + " | " + cfg.Name,
		Description: page.Post.Excerpt,
		URL:         feed.PostURL(cfg.URL, page.Post.Slug),
		OGType:      "article",
	}
	if len(page.Related) > maxRelated {
		page.Related = page.Related[:maxRelated]
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := templ.ToGoHTML(ctx, markdown.Markdown(page.Post.Content))
		if err != nil {
			return err
		}
		data := postData{PostPage: page, Body: body}
		return render("post", cfg, meta, BlogPostingJsonLD(cfg, page.Post), data).Render(ctx, w)
	})
}

type errorData struct {
	Heading string
	Message string
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: "Not found | " + cfg.Name, URL: feed.BuildURL(cfg.URL), OGType: "website"}
	return render("error", cfg, meta, "", errorData{
		Heading: "Post not found",
		Message: "The page you are looking for does not exist.",
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: "Error | " + cfg.Name, URL: feed.BuildURL(cfg.URL), OGType: "website"}
	return render("error", cfg, meta, "", errorData{
		Heading: "Something went wrong",
		Message: "Failed to load this page. Please try again later.",
	})
}
