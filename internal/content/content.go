// Package content loads the site's markdown records. Each type is a
// directory of .md/.mdx files that open with a YAML front matter block.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownType is returned when the type has no content directory.
	ErrUnknownType = errors.New("unknown content type")
	// ErrNotFound is returned by Get when no record has the slug.
	ErrNotFound = errors.New("content not found")
)

// Item is one content record.
type Item struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Date        string   `yaml:"date" json:"date"`
	Image       string   `yaml:"image" json:"image,omitempty"`
	Institution string   `yaml:"institution" json:"institution,omitempty"`
	Tags        []string `yaml:"tags" json:"tags"`
	YouTube     string   `yaml:"youtube" json:"youtube,omitempty"`

	Slug    string `yaml:"-" json:"slug"`
	Content string `yaml:"-" json:"content"`
}

// Time parses Date. Unparseable dates return the zero time.
func (it Item) Time() time.Time {
	t, _ := parseDate(it.Date)
	return t
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Store reads content from a file system rooted at the content directory.
type Store struct {
	fsys fs.FS
}

// NewStore returns a store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// Types lists the content types present in the store.
func (s *Store) Types() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content root: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// ListByType loads every record of the given type, newest first. Records
// sharing a date are ordered by slug. Any unreadable or malformed file fails
// the whole call.
func (s *Store) ListByType(typ string) ([]Item, error) {
	if typ == "" || strings.ContainsAny(typ, `/\`) || !fs.ValidPath(typ) || typ == "." {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	entries, err := fs.ReadDir(s.fsys, typ)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
		}
		return nil, fmt.Errorf("read %s: %w", typ, err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, ok := slugOf(e.Name())
		if !ok {
			continue
		}
		name := path.Join(typ, e.Name())
		raw, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		it, err := Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		it.Slug = slug
		items = append(items, it)
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		if c := b.Time().Compare(a.Time()); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return items, nil
}

// Get returns the record of the given type and slug.
func (s *Store) Get(typ, slug string) (Item, error) {
	items, err := s.ListByType(typ)
	if err != nil {
		return Item{}, err
	}
	for _, it := range items {
		if it.Slug == slug {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s/%s", ErrNotFound, typ, slug)
}

func slugOf(name string) (string, bool) {
	for _, ext := range []string{".mdx", ".md"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}

var fence = []byte("---")

// Parse splits a markdown document into its front matter and body. A
// document without front matter yields an Item holding only the body.
func Parse(raw []byte) (Item, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var it Item
	first, rest, _ := cutLine(raw)
	if !bytes.Equal(bytes.TrimRight(first, " \t\r"), fence) {
		it.Tags = []string{}
		it.Content = string(raw)
		return it, nil
	}

	var meta []byte
	body := rest
	closed := false
	for len(body) > 0 {
		line, next, _ := cutLine(body)
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fence) {
			body = next
			closed = true
			break
		}
		meta = append(meta, line...)
		meta = append(meta, '\n')
		body = next
	}
	if !closed {
		return Item{}, errors.New("unterminated front matter")
	}
	if err := yaml.Unmarshal(meta, &it); err != nil {
		return Item{}, fmt.Errorf("front matter: %w", err)
	}
	if it.Tags == nil {
		it.Tags = []string{}
	}
	it.Content = string(body)
	return it, nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	return bytes.Cut(b, []byte("\n"))
}
