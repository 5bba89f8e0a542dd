package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"midnight/internal/blog"
	"midnight/internal/config"
	"midnight/internal/render"
	"midnight/internal/web"
)

var (
	handler http.Handler
	initErr error
	once    sync.Once
)

// initApp builds the site once per function instance. Content ships with the
// deployment and is read-only, so there is no watcher.
func initApp() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(config.New(), "")
	if err != nil {
		initErr = err
		return
	}

	posts, err := cfg.Corpus().Load(context.Background(), blog.NewLoader(logger))
	if err != nil {
		initErr = err
		return
	}
	store, err := blog.NewMemoryStore(posts)
	if err != nil {
		initErr = err
		return
	}

	server, err := web.NewServer(cfg, store, render.New(), logger)
	if err != nil {
		initErr = err
		return
	}
	handler = server.PublicRoutes()
}

// Handler is the entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initApp)
	if initErr != nil {
		slog.Error("init failed", "error", initErr)
		http.Error(w, "site unavailable", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}
