// Package newpost creates new Markdown posts: it derives the slug from the
// title, renders front-matter plus a starter body and writes the file into
// the content directory. An interactive terminal prompt collects the fields.
package newpost

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/rikjimue/folio/scaffold"
)

const (
	// DefaultReadTime is written when the draft does not set one.
	DefaultReadTime = "5 min read"
	dateLayout      = "2006-01-02"
)

var (
	// ErrExists is returned by Write when the target file is already there
	// and overwriting was not requested.
	ErrExists = errors.New("post already exists")
	// ErrCancelled is returned when the user aborts the prompt or declines to
	// overwrite an existing post.
	ErrCancelled = errors.New("cancelled")
)

var bodyTemplate = template.Must(template.ParseFS(scaffold.Templates, scaffold.PostTemplate))

// Draft holds the fields of a post that has not been written yet.
type Draft struct {
	Title     string
	Excerpt   string
	Tags      []string
	Published bool
	Author    string
	Date      string
	ReadTime  string
}

// NewDraft returns an unpublished draft dated on now's calendar day.
func NewDraft(title string, now time.Time) Draft {
	return Draft{
		Title:    title,
		Tags:     []string{},
		Date:     now.Format(dateLayout),
		ReadTime: DefaultReadTime,
	}
}

// Slug is the filename stem the draft will be written under.
func (d Draft) Slug() string {
	return Slugify(d.Title)
}

// Validate checks that the draft can be written.
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required, validation.By(func(value any) error {
			if Slugify(value.(string)) == "" {
				return validation.NewError("newpost.title_slug_empty", "must contain at least one letter or digit")
			}
			return nil
		})),
		validation.Field(&d.Date, validation.Required, validation.Date(dateLayout)),
	)
}

type frontMatter struct {
	Title     string   `yaml:"title"`
	Date      string   `yaml:"date"`
	ReadTime  string   `yaml:"readTime"`
	Excerpt   string   `yaml:"excerpt"`
	Tags      []string `yaml:"tags,flow"`
	Published bool     `yaml:"published"`
	Author    string   `yaml:"author,omitempty"`
}

// Render produces the full file: YAML front-matter followed by the starter
// body.
func Render(d Draft) ([]byte, error) {
	if d.ReadTime == "" {
		d.ReadTime = DefaultReadTime
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	fm, err := yaml.Marshal(frontMatter{
		Title:     d.Title,
		Date:      d.Date,
		ReadTime:  d.ReadTime,
		Excerpt:   d.Excerpt,
		Tags:      tags,
		Published: d.Published,
		Author:    d.Author,
	})
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	if err := bodyTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Path returns where d would be written inside dir.
func Path(dir string, d Draft) string {
	return filepath.Join(dir, d.Slug()+".md")
}

// Write renders d into dir/<slug>.md, creating dir if needed. An existing file
// is only replaced when overwrite is set; otherwise ErrExists is returned
// along with the path.
func Write(dir string, d Draft, overwrite bool) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	src, err := Render(d)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := Path(dir, d)
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return path, ErrExists
	}
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(src); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// Exists reports whether a post file for d is already present in dir.
func Exists(dir string, d Draft) bool {
	_, err := os.Stat(Path(dir, d))
	return err == nil
}
