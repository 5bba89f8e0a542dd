package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"midnight/internal/blog"
)

type Config struct {
	PublicAddr  string
	SiteBaseURL string
	ContentDir  string
	PostsJSON   string
	SessionKey  string
	LogLevel    string
	Watch       bool
	OutputDir   string
	Site        blog.SiteProfile
}

// New returns a viper instance with defaults, the MIDNIGHT_ environment
// prefix and the config search path. Flags are bound on top by the caller.
func New() *viper.Viper {
	v := viper.New()

	profile := blog.DefaultProfile()
	v.SetDefault("addr", ":8084")
	v.SetDefault("base_url", "")
	v.SetDefault("content_dir", "posts")
	v.SetDefault("posts_json", "posts.json")
	v.SetDefault("session_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("watch", false)
	v.SetDefault("output_dir", "dist")
	v.SetDefault("site.title", profile.Title)
	v.SetDefault("site.tagline", profile.Tagline)
	v.SetDefault("site.footer", profile.Footer)
	v.SetDefault("site.author", profile.Author)
	v.SetDefault("site.email", profile.Email)

	v.SetEnvPrefix("MIDNIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("midnight")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "midnight"))
	}
	return v
}

// Load reads the config file if one exists and resolves the final settings.
// An explicit path must exist; a missing file on the search path is fine.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	site := blog.SiteProfile{
		Title:   v.GetString("site.title"),
		Tagline: v.GetString("site.tagline"),
		Footer:  v.GetString("site.footer"),
		Author:  v.GetString("site.author"),
		Email:   v.GetString("site.email"),
	}

	publicAddr := v.GetString("addr")
	siteBaseURL := strings.TrimRight(v.GetString("base_url"), "/")
	if siteBaseURL == "" {
		siteBaseURL = baseURLFromAddr(publicAddr)
	}

	return &Config{
		PublicAddr:  publicAddr,
		SiteBaseURL: siteBaseURL,
		ContentDir:  v.GetString("content_dir"),
		PostsJSON:   v.GetString("posts_json"),
		SessionKey:  v.GetString("session_key"),
		LogLevel:    v.GetString("log_level"),
		Watch:       v.GetBool("watch"),
		OutputDir:   v.GetString("output_dir"),
		Site:        site,
	}, nil
}

// Corpus returns where posts are read from.
func (c *Config) Corpus() blog.Corpus {
	return blog.Corpus{Dir: c.ContentDir, Records: c.PostsJSON}
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func baseURLFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}

	host := ""
	port := ""
	if strings.HasPrefix(addr, ":") {
		host = "localhost"
		port = strings.TrimPrefix(addr, ":")
	} else {
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			port = p
		} else {
			host = addr
		}
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port != "" {
		return "http://" + host + ":" + port
	}
	return "http://" + host
}
