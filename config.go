package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rikjimue/folio/views"
)

// LocalConfigFile is looked up in the working directory before the XDG
// config location.
const LocalConfigFile = "folio.yaml"

// Project is an entry in the home page project list.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string    `yaml:"name"`         // Site name (default "Blog")
	URL         string    `yaml:"url"`          // Canonical URL (default "http://localhost:3000")
	Description string    `yaml:"description"`  // Site description for feeds and meta tags
	Author      string    `yaml:"author"`       // Author name for feeds and JSON-LD
	AuthorEmail string    `yaml:"author_email"` // RSS managingEditor/webMaster
	Language    string    `yaml:"language"`     // Feed and <html> language (default "en-us")
	Bio         string    `yaml:"bio"`          // Home page introduction
	Projects    []Project `yaml:"projects"`
	Categories  []string  `yaml:"categories"` // Channel-level RSS categories

	Addr         string `yaml:"addr"`           // Listen address (default ":3000")
	ContentDir   string `yaml:"content_dir"`    // Markdown directory (default "content/blog")
	FeedLimit    int    `yaml:"feed_limit"`     // Posts per feed (default 20)
	PostsPerPage int    `yaml:"posts_per_page"` // Blog listing page size (default 10)

	RateLimit  int           `yaml:"rate_limit"`  // API requests per window per IP, <= 0 disables
	RateWindow time.Duration `yaml:"rate_window"` // default 1m

	LogLevel string `yaml:"log_level"` // zerolog level (default "info")
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() SiteConfig {
	c := SiteConfig{RateLimit: 60}
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "en-us"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = filepath.Join("content", "blog")
	}
	if c.FeedLimit == 0 {
		c.FeedLimit = 20
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 10
	}
	if c.RateWindow == 0 {
		c.RateWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.LevelInfoValue
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Validate checks the configuration for values the server cannot run with.
func (c SiteConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.URL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.AuthorEmail, validation.Match(emailRe)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.FeedLimit, validation.Min(1)),
		validation.Field(&c.PostsPerPage, validation.Min(1)),
		validation.Field(&c.RateWindow, validation.Min(time.Second)),
		validation.Field(&c.LogLevel, validation.By(func(value any) error {
			if _, err := zerolog.ParseLevel(value.(string)); err != nil {
				return validation.NewError("folio.log_level_invalid", "must be a zerolog level such as debug, info or warn")
			}
			return nil
		})),
		validation.Field(&c.Projects, validation.Each(validation.By(func(value any) error {
			p, _ := value.(Project)
			if p.Name == "" {
				return validation.NewError("folio.project_name_required", "project name is required")
			}
			return nil
		}))),
	)
}

func absoluteURL(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("folio.url_invalid", "must be an absolute http(s) URL")
	}
	return nil
}

// DefaultConfigPath returns the folio.yaml in the working directory when it
// exists, otherwise the XDG config location.
func DefaultConfigPath() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}
	return filepath.Join(xdg.ConfigHome, "folio", "config.yaml")
}

// LoadConfig reads path (DefaultConfigPath when empty), applies FOLIO_*
// environment overrides and validates the result. A missing file yields the
// defaults.
func LoadConfig(path string) (SiteConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return SiteConfig{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	c.Name = EnvOr("FOLIO_SITE_NAME", c.Name)
	c.URL = EnvOr("FOLIO_SITE_URL", c.URL)
	c.Addr = EnvOr("FOLIO_ADDR", c.Addr)
	c.ContentDir = EnvOr("FOLIO_CONTENT_DIR", c.ContentDir)
	c.LogLevel = EnvOr("FOLIO_LOG_LEVEL", c.LogLevel)
	if n, err := strconv.Atoi(os.Getenv("FOLIO_RATE_LIMIT")); err == nil {
		c.RateLimit = n
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c SiteConfig) view() views.SiteConfig {
	projects := make([]views.Project, 0, len(c.Projects))
	for _, p := range c.Projects {
		projects = append(projects, views.Project{Name: p.Name, Description: p.Description, URL: p.URL})
	}
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
		Language:    c.Language,
		Bio:         c.Bio,
		Projects:    projects,
	}
}
