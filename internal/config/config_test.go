package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8084", cfg.PublicAddr)
	assert.Equal(t, "http://localhost:8084", cfg.SiteBaseURL)
	assert.Equal(t, "posts", cfg.ContentDir)
	assert.Equal(t, "posts.json", cfg.PostsJSON)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "midnight.thoughts", cfg.Site.Title)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, "posts", cfg.Corpus().Dir)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MIDNIGHT_ADDR", "127.0.0.1:9000")
	t.Setenv("MIDNIGHT_SITE_TITLE", "night owl")
	t.Setenv("MIDNIGHT_LOG_LEVEL", "debug")
	t.Setenv("MIDNIGHT_WATCH", "true")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", cfg.SiteBaseURL)
	assert.Equal(t, "night owl", cfg.Site.Title)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.True(t, cfg.Watch)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "midnight.yaml")
	content := "base_url: https://example.com/blog/\ncontent_dir: notes\nsite:\n  tagline: up late\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/blog", cfg.SiteBaseURL)
	assert.Equal(t, "notes", cfg.ContentDir)
	assert.Equal(t, "up late", cfg.Site.Tagline)
	assert.Equal(t, "midnight.thoughts", cfg.Site.Title)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLevelFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "loud"}).Level())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).Level())
}

func TestBaseURLFromAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		addr string
		want string
	}{
		{"", ""},
		{":8084", "http://localhost:8084"},
		{"0.0.0.0:80", "http://localhost:80"},
		{"example.com:443", "http://example.com:443"},
		{"example.com", "http://example.com"},
		{"https://example.com/", "https://example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, baseURLFromAddr(tt.addr), tt.addr)
	}
}
