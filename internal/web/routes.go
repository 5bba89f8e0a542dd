package web

import (
	"io/fs"
	"net/http"
)

// Path-only list routes. They carry the whole list state, so they also clear
// any search kept in the session.
const (
	routePage    = "GET /page/{n}"
	routeTag     = "GET /tag/{tag}"
	routeTagPage = "GET /tag/{tag}/page/{n}"
)

func (s *Server) PublicRoutes() http.Handler {
	mux := http.NewServeMux()

	static, _ := fs.Sub(contentFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", s.Index)
	mux.HandleFunc(routePage, s.Index)
	mux.HandleFunc(routeTag, s.Index)
	mux.HandleFunc(routeTagPage, s.Index)
	mux.HandleFunc("GET /posts/{slug}", s.PostDetail)
	mux.HandleFunc("POST /theme", s.ToggleTheme)
	mux.HandleFunc("GET /feed", s.RSS)
	mux.HandleFunc("GET /feed.xml", s.RSS)
	mux.HandleFunc("GET /sitemap.xml", s.Sitemap)
	mux.HandleFunc("GET /healthz", s.Health)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	mux.HandleFunc("/", s.NotFound)

	return s.Metrics.instrument(mux)
}
