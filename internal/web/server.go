package web

import (
	"fmt"
	"html/template"
	"log/slog"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"midnight/internal/blog"
	"midnight/internal/config"
	"midnight/internal/render"
)

const sessionName = "midnight_state"

type Server struct {
	Config    *config.Config
	Store     blog.Store
	Renderer  *render.Renderer
	Sessions  sessions.Store
	Metrics   *Metrics
	Logger    *slog.Logger
	templates map[string]*template.Template
}

func NewServer(cfg *config.Config, store blog.Store, renderer *render.Renderer, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if renderer == nil {
		renderer = render.New()
	}

	key := []byte(cfg.SessionKey)
	if len(key) == 0 {
		// Sessions only survive until restart without a configured key.
		key = securecookie.GenerateRandomKey(32)
	}
	cookies := sessions.NewCookieStore(key)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: sessionSameSite,
	}

	s := &Server{
		Config:   cfg,
		Store:    store,
		Renderer: renderer,
		Sessions: cookies,
		Metrics:  NewMetrics(),
		Logger:   logger.With("component", "web"),
	}
	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.Metrics.PostsLoaded(len(store.List()))
	return s, nil
}

var pages = []string{"index.html", "post.html", "error.html"}

func (s *Server) parseTemplates() error {
	s.templates = make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("").Funcs(funcMap).ParseFS(contentFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return fmt.Errorf("parse %s: %w", page, err)
		}
		s.templates[page] = t
	}
	return nil
}

// ContentReloaded drops cached renderings after the store snapshot changed.
func (s *Server) ContentReloaded() {
	s.Renderer.Reset()
	s.Metrics.PostsLoaded(len(s.Store.List()))
}
