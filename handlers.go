package folio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rikjimue/folio/content"
	"github.com/rikjimue/folio/feed"
	"github.com/rikjimue/folio/views"
)

// homePostCount is how many recent posts the home page lists.
const homePostCount = 3

// feedTTL is the RSS <ttl> in minutes.
const feedTTL = 1440

const (
	mimeRSS      = "application/rss+xml; charset=utf-8"
	mimeJSONFeed = "application/feed+json; charset=utf-8"
	mimeXML      = "application/xml; charset=utf-8"
)

type postsResponse struct {
	Posts []content.Post `json:"posts"`
	Tags  []string       `json:"tags"`
}

type postResponse struct {
	Post content.Post `json:"post"`
}

type apiError struct {
	Error string `json:"error"`
}

func (a *App) handleHome(c echo.Context) error {
	posts := a.Posts.ListPosts()
	if len(posts) > homePostCount {
		posts = posts[:homePostCount]
	}
	return Render(c, a.Views.Home(a.Config.view(), posts))
}

func (a *App) handleBlog(c echo.Context) error {
	query := c.QueryParam("q")
	tag := c.QueryParam("tag")
	page, _ := strconv.Atoi(c.QueryParam("page"))

	all := a.Posts.ListPosts()
	idx := views.BlogIndex{
		Page:      content.Paginate(content.Filter(all, query, tag), page, a.Config.PostsPerPage),
		Tags:      content.Tags(all),
		Query:     query,
		ActiveTag: tag,
	}
	return Render(c, a.Views.Blog(a.Config.view(), idx))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, ok := a.Posts.GetPost(slug)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.view()))
	}
	all := a.Posts.ListPosts()
	page := views.PostPage{
		Post:     post,
		Adjacent: content.Neighbors(all, slug),
		Related:  content.Related(post, all),
	}
	return Render(c, a.Views.Post(a.Config.view(), page))
}

func (a *App) handleAPIPosts(c echo.Context) error {
	all := a.Posts.ListPosts()
	return c.JSON(http.StatusOK, postsResponse{
		Posts: content.Filter(all, c.QueryParam("q"), c.QueryParam("tag")),
		Tags:  content.Tags(all),
	})
}

func (a *App) handleAPIPost(c echo.Context) error {
	post, ok := a.Posts.GetPost(c.Param("slug"))
	if !ok {
		return c.JSON(http.StatusNotFound, apiError{Error: "Post not found"})
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

func (a *App) channel() feed.Channel {
	return feed.Channel{
		Title:       a.Config.Name,
		Description: a.Config.Description,
		SiteURL:     a.Config.URL,
		Language:    a.Config.Language,
		AuthorName:  a.Config.Author,
		AuthorEmail: a.Config.AuthorEmail,
		Categories:  a.Config.Categories,
		TTL:         feedTTL,
		Limit:       a.Config.FeedLimit,
	}
}

func (a *App) handleRSS(c echo.Context) error {
	doc, err := feed.RSS(a.channel(), a.Posts.ListPosts(), a.now())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeRSS, doc)
}

func (a *App) handleJSONFeed(c echo.Context) error {
	doc, err := feed.JSONFeed(a.channel(), a.Posts.ListPosts())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeJSONFeed, doc)
}

func (a *App) handleSitemap(c echo.Context) error {
	doc, err := feed.SitemapXML(feed.Sitemap(a.Config.URL, a.Posts.ListPosts(), a.now()))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, mimeXML, doc)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n\n")
	b.WriteString("Sitemap: " + feed.BuildURL(a.Config.URL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func isAPI(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error().Err(err).Str("method", c.Request().Method).Str("uri", c.Request().RequestURI).Msg("server error")
	}

	if isAPI(c) {
		_ = c.JSON(code, apiError{Error: apiErrorMessage(c, code, he)})
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(a.Config.view()))
	case code >= 500:
		if rerr := RenderStatus(c, code, a.Views.ServerError(a.Config.view())); rerr != nil {
			_ = c.String(code, "Internal Server Error")
		}
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}

func apiErrorMessage(c echo.Context, code int, he *echo.HTTPError) string {
	switch {
	case code >= 500 && c.Path() == "/api/blog/:slug":
		return "Failed to load post"
	case code >= 500:
		return "Failed to load blog data"
	case he != nil:
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return http.StatusText(code)
}
