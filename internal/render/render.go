// Package render turns post bodies into HTML and plain-text excerpts.
package render

import (
	"bytes"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/k3a/html2text"
	"github.com/patrickmn/go-cache"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"midnight/internal/blog"
)

const (
	defaultExpiration = 30 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

// Renderer converts markdown to HTML and caches the result per slug and
// content hash. Reset drops entries left over from an older store snapshot.
type Renderer struct {
	md    goldmark.Markdown
	cache *cache.Cache
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// HTML returns the rendered body of post. Raw HTML in the source is omitted.
func (r *Renderer) HTML(post blog.Post) string {
	key := cacheKey(post)
	if cached, ok := r.cache.Get(key); ok {
		return cached.(string)
	}
	out := r.Markdown(post.Content)
	r.cache.SetDefault(key, out)
	return out
}

// cacheKey ties an entry to the exact content it was rendered from.
func cacheKey(post blog.Post) string {
	return post.Slug + "@" + strconv.FormatUint(xxhash.Sum64String(post.Content), 16)
}

// Markdown renders input without caching. If conversion fails the input is
// returned unchanged.
func (r *Renderer) Markdown(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	var b bytes.Buffer
	if err := r.md.Convert([]byte(input), &b); err != nil {
		return input
	}
	return b.String()
}

// Excerpt returns at most n runes of the post's text with markup removed and
// whitespace collapsed. Truncated text ends with an ellipsis.
func (r *Renderer) Excerpt(post blog.Post, n int) string {
	text := html2text.HTML2Text(r.HTML(post))
	text = strings.Join(strings.Fields(text), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:n]), " ") + "…"
}

// Reset drops every cached rendering.
func (r *Renderer) Reset() {
	r.cache.Flush()
}

func (r *Renderer) Cached() int {
	return r.cache.ItemCount()
}
