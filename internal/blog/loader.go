package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/tailscale/hujson"
)

// Source is one raw document of the corpus, keyed by its path or file name.
type Source struct {
	Key  string
	Text string
}

// dateLayouts are tried in order. Month names match case-insensitively, so
// "nov 8" parses with the "Jan 2" layout.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2",
	"Jan 2",
}

// ParseDate parses a post date. The zero time and false are returned when no
// layout matches.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With("component", "loader")}
}

// Load turns documents into posts sorted newest first. It never fails: a
// malformed document becomes a body-only post and a duplicate slug is skipped.
func (l *Loader) Load(docs []Source) []Post {
	posts := make([]Post, 0, len(docs))
	seen := make(map[string]bool, len(docs))

	for _, doc := range docs {
		slug := slugFromKey(doc.Key)
		if slug == "" {
			l.logger.Warn("skipping document without a usable name", "key", doc.Key)
			continue
		}
		if seen[slug] {
			l.logger.Warn("skipping duplicate slug", "key", doc.Key, "slug", slug)
			continue
		}
		seen[slug] = true

		parsed := ParseDocument(doc.Text)
		if !parsed.HasFrontMatter {
			l.logger.Debug("document has no front matter", "key", doc.Key)
		}
		posts = append(posts, postFromDocument(slug, parsed))
	}

	SortPosts(posts)
	l.logger.Info("loaded posts", "documents", len(docs), "posts", len(posts))
	return posts
}

// LoadDir reads every file matching pattern from fsys and loads it. A file
// that cannot be read is logged and left out.
func (l *Loader) LoadDir(ctx context.Context, fsys fs.FS, pattern string) ([]Post, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	docs := make([]Source, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			l.logger.Warn("skipping unreadable document", "path", name, "error", err)
			continue
		}
		docs = append(docs, Source{Key: name, Text: string(data)})
	}
	return l.Load(docs), nil
}

type record struct {
	ID      json.RawMessage `json:"id"`
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Date    string          `json:"date"`
	Content string          `json:"content"`
	Tag     string          `json:"tag"`
}

// LoadRecords reads a JSON array of pre-structured posts. Comments and
// trailing commas are accepted. Records without an id or slug, and records
// repeating an earlier identifier, are skipped.
func (l *Loader) LoadRecords(r io.Reader) ([]Post, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	data, err = hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	posts := make([]Post, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		slug := rec.Slug
		if slug == "" {
			slug = recordID(rec.ID)
		}
		if slug == "" {
			l.logger.Warn("skipping record without id", "index", i)
			continue
		}
		if seen[slug] {
			l.logger.Warn("skipping duplicate slug", "index", i, "slug", slug)
			continue
		}
		seen[slug] = true
		posts = append(posts, newPost(slug, rec.Title, rec.Date, rec.Tag, rec.Content))
	}

	SortPosts(posts)
	l.logger.Info("loaded post records", "records", len(records), "posts", len(posts))
	return posts, nil
}

// SortPosts orders posts newest first. Posts without a parseable date come
// after every dated post; ties are broken by slug so the order is total.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.Dated() != b.Dated() {
			return a.Dated()
		}
		if !a.Published.Equal(b.Published) {
			return a.Published.After(b.Published)
		}
		return a.Slug < b.Slug
	})
}

func postFromDocument(slug string, doc Document) Post {
	tag := doc.Meta["tag"]
	if tag == "" {
		tag = firstListItem(doc.Meta["tags"])
	}
	return newPost(slug, doc.Meta["title"], doc.Meta["date"], tag, doc.Body)
}

func newPost(slug, title, date, tag, content string) Post {
	if title == "" {
		title = slug
	}
	published, _ := ParseDate(date)
	return Post{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Published: published,
		Tag:       strings.TrimSpace(tag),
		Content:   content,
	}
}

func slugFromKey(key string) string {
	base := path.Base(strings.ReplaceAll(key, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

func recordID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

func firstListItem(value string) string {
	value = strings.Trim(strings.TrimSpace(value), "[]")
	first, _, _ := strings.Cut(value, ",")
	return unquote(strings.TrimSpace(first))
}
