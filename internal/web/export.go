package web

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"

	"midnight/internal/blog"
)

const exportWorkers = 4

// ExportRoutes lists every GET route of the site that a static host can serve:
// the plain list pages, each tag's pages, every post, the feed and the sitemap.
func (s *Server) ExportRoutes() []string {
	posts := s.Store.List()
	routes := []string{"/"}

	for n := 1; n <= blog.TotalPages(len(posts), blog.PageSize); n++ {
		routes = append(routes, listURL("", blog.AllTags, n))
	}
	for _, tag := range s.Store.Tags()[1:] {
		count := len(blog.Filter(posts, "", tag))
		for n := 1; n <= blog.TotalPages(count, blog.PageSize); n++ {
			routes = append(routes, listURL("", tag, n))
		}
	}
	for _, p := range posts {
		routes = append(routes, postURL(p.Slug))
	}
	return append(routes, "/feed.xml", "/sitemap.xml")
}

// Export renders every export route into dir and copies the static assets.
// Files are written atomically; dir is created if needed.
func (s *Server) Export(ctx context.Context, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	mux := s.PublicRoutes()
	routes := s.ExportRoutes()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportWorkers)
	for _, route := range routes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.exportRoute(mux, dir, route)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := copyStatic(filepath.Join(dir, "static")); err != nil {
		return 0, err
	}
	return len(routes), nil
}

func (s *Server) exportRoute(mux http.Handler, dir, route string) error {
	req := httptest.NewRequest(http.MethodGet, route, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return fmt.Errorf("render %s: status %d", route, w.Code)
	}

	rel, err := outputPath(route)
	if err != nil {
		return err
	}
	s.Logger.Debug("exporting", "route", route, "file", rel)
	return writeFile(filepath.Join(dir, rel), w.Body.Bytes())
}

// outputPath maps a route to a file: "/" and clean URLs become index.html in
// a directory named after the route, routes with an extension keep their name.
func outputPath(route string) (string, error) {
	p, err := url.PathUnescape(route)
	if err != nil {
		return "", fmt.Errorf("route %s: %w", route, err)
	}
	p = path.Clean("/" + p)
	if strings.Contains(p, "..") {
		return "", fmt.Errorf("route %s escapes the output dir", route)
	}
	if path.Ext(p) == "" {
		p = path.Join(p, "index.html")
	}
	return filepath.FromSlash(strings.TrimPrefix(p, "/")), nil
}

func writeFile(filename string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func copyStatic(dst string) error {
	return fs.WalkDir(contentFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := contentFS.ReadFile(p)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dst, strings.TrimPrefix(p, "static/")), data)
	})
}
