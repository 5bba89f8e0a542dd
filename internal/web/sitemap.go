package web

import (
	"encoding/xml"
	"net/http"
)

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []URL    `xml:"url"`
}

func (s *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	baseURL := s.Config.SiteBaseURL
	posts := s.Store.List()

	urls := []URL{{
		Loc:        baseURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	for _, tag := range s.Store.Tags()[1:] {
		urls = append(urls, URL{Loc: baseURL + listURL("", tag, 1), Priority: "0.5"})
	}

	for _, post := range posts {
		u := URL{
			Loc:        baseURL + postURL(post.Slug),
			ChangeFreq: "monthly",
			Priority:   "0.8",
		}
		// Year-less dates cannot be placed on a calendar.
		if post.Dated() && post.Published.Year() > 0 {
			u.LastMod = post.Published.Format("2006-01-02")
		}
		urls = append(urls, u)
	}

	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(URLSet{URLs: urls}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
