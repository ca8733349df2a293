package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Extensions lists the recognized post file extensions in lookup order.
var Extensions = []string{".md", ".markdown"}

// Store reads posts from a content directory. It holds no index: every call
// rescans the directory, so edits on disk are visible on the next read.
//
// Store operations never fail. Unreadable or malformed input is logged and
// degrades to an empty listing or a missing post.
type Store struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report skipped files.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock overrides the clock used for the default post date.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns a Store reading from dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{
		dir:    dir,
		logger: log.Logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "store").Str("dir", dir).Logger()
	return s
}

// Dir returns the content directory.
func (s *Store) Dir() string {
	return s.dir
}

// postFile is a recognized file in the content directory.
type postFile struct {
	slug string
	path string
	rank int // index into Extensions
}

// scan lists recognized files in directory order. When several files share a
// slug, the one whose extension comes first in Extensions wins, the same file
// GetPost resolves; the others are returned separately.
func (s *Store) scan() (files []postFile, dupes []postFile, err error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, rank, ok := slugOf(e.Name())
		if !ok {
			continue
		}
		f := postFile{slug: slug, path: filepath.Join(s.dir, e.Name()), rank: rank}
		i, dup := seen[slug]
		if !dup {
			seen[slug] = len(files)
			files = append(files, f)
			continue
		}
		if f.rank < files[i].rank {
			files[i], f = f, files[i]
		}
		dupes = append(dupes, f)
	}
	return files, dupes, nil
}

func slugOf(name string) (string, int, bool) {
	ext := filepath.Ext(name)
	for i, known := range Extensions {
		if ext == known {
			slug := strings.TrimSuffix(name, ext)
			return slug, i, slug != ""
		}
	}
	return "", 0, false
}

func (s *Store) load(f postFile) (Post, error) {
	src, err := os.ReadFile(f.path)
	if err != nil {
		return Post{}, err
	}
	p, err := Parse(f.slug, src, s.now())
	if err != nil {
		return Post{}, fmt.Errorf("%s: %w", filepath.Base(f.path), err)
	}
	return p, nil
}

// ListPosts returns all published posts ordered by date descending. Dates
// compare as strings; posts with equal dates keep directory order.
func (s *Store) ListPosts() []Post {
	files, dupes, err := s.scan()
	if err != nil {
		s.logger.Error().Err(err).Msg("reading content directory")
		return []Post{}
	}
	for _, d := range dupes {
		s.logger.Warn().Str("slug", d.slug).Str("file", d.path).Msg("duplicate slug, file skipped")
	}

	posts := make([]Post, 0, len(files))
	for _, f := range files {
		p, err := s.load(f)
		if err != nil {
			s.logger.Warn().Err(err).Str("slug", f.slug).Msg("skipping unreadable post")
			continue
		}
		if !p.Published {
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts
}

// GetPost returns the post stored under slug, published or not.
func (s *Store) GetPost(slug string) (Post, bool) {
	if !validSlug(slug) {
		s.logger.Info().Str("slug", slug).Msg("rejected invalid slug")
		return Post{}, false
	}
	for _, ext := range Extensions {
		f := postFile{slug: slug, path: filepath.Join(s.dir, slug+ext)}
		p, err := s.load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("reading post")
			return Post{}, false
		}
		return p, true
	}
	s.logger.Info().Str("slug", slug).Msg("post not found")
	return Post{}, false
}

// ListTags returns the distinct tags of all published posts, sorted.
func (s *Store) ListTags() []string {
	return Tags(s.ListPosts())
}

// Check reports every problem ListPosts would silently skip: unreadable
// files, broken front-matter and slug collisions.
func (s *Store) Check() error {
	files, dupes, err := s.scan()
	if err != nil {
		return fmt.Errorf("reading content directory: %w", err)
	}
	var errs []error
	for _, f := range files {
		if _, err := s.load(f); err != nil {
			errs = append(errs, err)
		}
	}
	for _, d := range dupes {
		errs = append(errs, fmt.Errorf("%s: slug %q already used by another file", filepath.Base(d.path), d.slug))
	}
	return errors.Join(errs...)
}

func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && filepath.Base(slug) == slug
}
