package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
)

const feedSize = 20

// feedNamespace makes item GUIDs stable per base URL and slug.
var feedNamespace = uuid.MustParse("6f1c9a52-3b7e-4d0a-9c55-8e2f4b1d7a63")

func (s *Server) RSS(w http.ResponseWriter, r *http.Request) {
	profile := s.Config.Site
	siteURL := s.Config.SiteBaseURL

	feed := &feeds.Feed{
		Title:       profile.Title,
		Link:        &feeds.Link{Href: siteURL + "/"},
		Description: profile.Tagline,
		Author:      &feeds.Author{Name: profile.Author, Email: profile.Email},
	}

	posts := s.Store.List()
	if len(posts) > feedSize {
		posts = posts[:feedSize]
	}
	for _, post := range posts {
		link := siteURL + postURL(post.Slug)
		item := &feeds.Item{
			Id:          uuid.NewSHA1(feedNamespace, []byte(link)).URN(),
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: s.Renderer.Excerpt(post, excerptLength),
			Content:     s.Renderer.HTML(post),
		}
		// Year-less dates have no meaningful pubDate.
		if post.Dated() && post.Published.Year() > 0 {
			item.Created = post.Published
			if post.Published.After(feed.Created) {
				feed.Created = post.Published
			}
		}
		feed.Items = append(feed.Items, item)
	}
	if feed.Created.IsZero() {
		feed.Created = time.Now()
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(w); err != nil {
		s.Logger.Error("RSS error", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
	}
}
