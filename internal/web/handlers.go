package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"midnight/internal/blog"
)

const (
	relatedCount  = 3
	excerptLength = 180
)

var funcMap = template.FuncMap{
	"lower": strings.ToLower,
	"pct": func(f float64) string {
		return strconv.FormatFloat(f, 'f', 2, 64)
	},
}

type link struct {
	Label  string
	URL    string
	Active bool
}

type postCard struct {
	Post    blog.Post
	URL     string
	Excerpt string
}

// Index renders the list view. The visitor's previous filter and page come
// from the session; the request may change them through the q, tag and page
// query parameters. The /page/{n} and /tag/{tag} paths set the whole filter:
// no search, and the path's tag or all tags.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	state, session := s.loadState(r)

	query := r.URL.Query()
	switch r.Pattern {
	case routePage:
		state.SetQuery("")
		state.SetTag(blog.AllTags)
	case routeTag, routeTagPage:
		state.SetQuery("")
		state.SetTag(r.PathValue("tag"))
	default:
		if query.Has("q") {
			state.SetQuery(query.Get("q"))
		}
		if query.Has("tag") {
			state.SetTag(query.Get("tag"))
		}
	}

	pageParam := r.PathValue("n")
	if pageParam == "" {
		pageParam = query.Get("page")
	}
	if pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil || page < 1 {
			s.renderError(w, r, http.StatusNotFound, "no such page")
			return
		}
		state.SetPage(page)
	}
	state.Back()
	s.saveState(w, r, session, state)

	view := state.View(s.Store.List())
	if strings.TrimSpace(state.Query) != "" {
		s.Metrics.ObserveSearch(view.Filtered)
	}

	cards := make([]postCard, 0, len(view.Posts))
	for _, p := range view.Posts {
		cards = append(cards, postCard{
			Post:    p,
			URL:     postURL(p.Slug),
			Excerpt: s.Renderer.Excerpt(p, excerptLength),
		})
	}

	tags := make([]link, 0, len(view.Tags))
	for _, t := range view.Tags {
		tags = append(tags, link{Label: t, URL: listURL(state.Query, t, 1), Active: t == state.TagFilter})
	}

	var pager []link
	if view.TotalPages > 1 {
		for _, n := range view.PageNumbers {
			pager = append(pager, link{Label: strconv.Itoa(n), URL: listURL(state.Query, state.TagFilter, n), Active: n == view.CurrentPage})
		}
	}

	data := s.baseData(r, state)
	data["Query"] = state.Query
	data["TagFilter"] = state.TagFilter
	data["Tags"] = tags
	data["Posts"] = cards
	data["Pager"] = pager
	data["CurrentPage"] = view.CurrentPage
	data["TotalPages"] = view.TotalPages
	data["Filtered"] = view.Filtered
	s.render(w, http.StatusOK, "index.html", data)
}

// PostDetail renders one post. The list state in the session is left as it
// was, so the back link returns to the same filter and page.
func (s *Server) PostDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	post, err := s.Store.GetBySlug(slug)
	switch {
	case errors.Is(err, blog.ErrNotFound):
		s.renderError(w, r, http.StatusNotFound, "post not found")
		return
	case err != nil:
		s.Logger.Error("post lookup failed", "slug", slug, "error", err)
		s.renderError(w, r, http.StatusInternalServerError, "something went wrong")
		return
	}

	state, session := s.loadState(r)
	state.Select(post)
	s.saveState(w, r, session, state)

	related := []postCard{}
	for _, p := range s.Store.GetRelated(slug, relatedCount) {
		related = append(related, postCard{Post: p, URL: postURL(p.Slug)})
	}

	data := s.baseData(r, state)
	data["Post"] = *state.Selected
	data["PostHTML"] = template.HTML(s.Renderer.HTML(post))
	data["ReadTime"] = post.ReadTime()
	data["RelatedPosts"] = related
	data["Title"] = post.Title + " - " + s.Config.Site.Title
	data["Description"] = s.Renderer.Excerpt(post, excerptLength)
	s.render(w, http.StatusOK, "post.html", data)
}

// ToggleTheme switches between light and dark and sends the visitor back to
// the page they came from.
func (s *Server) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	state, session := s.loadState(r)
	s.toggleTheme(w, r, session, state)
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok %d posts\n", len(s.Store.List()))
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound, "page not found")
}

func (s *Server) baseData(r *http.Request, state blog.State) map[string]any {
	profile := s.Config.Site
	return map[string]any{
		"Title":       profile.Title,
		"SiteTitle":   profile.Title,
		"Tagline":     profile.Tagline,
		"Footer":      profile.Footer,
		"Description": profile.Tagline,
		"SiteURL":     s.Config.SiteBaseURL,
		"DarkMode":    state.DarkMode,
		"Stars":       state.Stars,
		"ReturnPath":  r.URL.RequestURI(),
	}
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data map[string]any) {
	t, ok := s.templates[page]
	if !ok {
		http.Error(w, "unknown template "+page, http.StatusInternalServerError)
		return
	}
	var b bytes.Buffer
	if err := t.ExecuteTemplate(&b, "base", data); err != nil {
		s.Logger.Error("template execution failed", "page", page, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = b.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	state, _ := s.loadState(r)
	data := s.baseData(r, state)
	data["Title"] = http.StatusText(status) + " - " + s.Config.Site.Title
	data["Status"] = status
	data["Message"] = msg
	s.render(w, status, "error.html", data)
}

func postURL(slug string) string {
	return "/posts/" + url.PathEscape(slug)
}

// listURL links to a list page. Search results need query parameters; plain
// tag and page listings use paths so the static export can serve them.
func listURL(query, tag string, page int) string {
	if query != "" {
		v := url.Values{}
		v.Set("q", query)
		v.Set("tag", tag)
		v.Set("page", strconv.Itoa(page))
		return "/?" + v.Encode()
	}
	if tag != "" && tag != blog.AllTags {
		u := "/tag/" + url.PathEscape(tag)
		if page > 1 {
			u += "/page/" + strconv.Itoa(page)
		}
		return u
	}
	return "/page/" + strconv.Itoa(page)
}

func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
