package web

import (
	"math/rand/v2"
	"net/http"

	"github.com/gorilla/sessions"

	"midnight/internal/blog"
)

const sessionSameSite = http.SameSiteLaxMode

const (
	keyQuery = "query"
	keyTag   = "tag"
	keyPage  = "page"
	keyDark  = "dark"
	keySeed  = "seed"
)

// loadState restores the visitor's UI state from the session cookie. A
// missing or undecodable cookie yields the default state.
func (s *Server) loadState(r *http.Request) (blog.State, *sessions.Session) {
	session, err := s.Sessions.Get(r, sessionName)
	if err != nil {
		s.Logger.Debug("discarding session", "error", err)
	}

	state := blog.NewState()
	if q, ok := session.Values[keyQuery].(string); ok {
		state.Query = q
	}
	if tag, ok := session.Values[keyTag].(string); ok && tag != "" {
		state.TagFilter = tag
	}
	if page, ok := session.Values[keyPage].(int); ok {
		state.CurrentPage = page
	}
	if dark, ok := session.Values[keyDark].(bool); ok {
		state.DarkMode = dark
	}

	seed, ok := session.Values[keySeed].(uint64)
	if !ok {
		seed = rand.Uint64()
		session.Values[keySeed] = seed
	}
	state.ShowStars(blog.NewStarRand(seed))
	return state, session
}

// saveState writes the filter, page and theme back to the session.
func (s *Server) saveState(w http.ResponseWriter, r *http.Request, session *sessions.Session, state blog.State) {
	session.Values[keyQuery] = state.Query
	session.Values[keyTag] = state.TagFilter
	session.Values[keyPage] = state.CurrentPage
	session.Values[keyDark] = state.DarkMode
	if err := session.Save(r, w); err != nil {
		s.Logger.Warn("failed to save session", "error", err)
	}
}

// toggleTheme flips the theme and picks a new star seed, so returning to dark
// mode draws a fresh field.
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request, session *sessions.Session, state blog.State) blog.State {
	seed := rand.Uint64()
	session.Values[keySeed] = seed
	state.ToggleTheme(blog.NewStarRand(seed))
	s.saveState(w, r, session, state)
	return state
}
