package blog

import "math/rand/v2"

// State is the whole of the UI state: filter, page, selection and theme.
// Every surface mutates it only through the methods below.
type State struct {
	Query       string
	TagFilter   string
	CurrentPage int
	Selected    *Post
	DarkMode    bool
	Stars       []Star
}

// NewState returns the startup state: no filter, first page, list view, dark
// theme without stars. Callers that draw stars call ShowStars once.
func NewState() State {
	return State{
		TagFilter:   AllTags,
		CurrentPage: 1,
		DarkMode:    true,
	}
}

// SetQuery changes the search text and returns to the first page.
func (s *State) SetQuery(query string) {
	s.Query = query
	s.CurrentPage = 1
}

// SetTag changes the tag filter and returns to the first page. An empty tag
// means AllTags.
func (s *State) SetTag(tag string) {
	if tag == "" {
		tag = AllTags
	}
	s.TagFilter = tag
	s.CurrentPage = 1
}

func (s *State) SetPage(page int) {
	s.CurrentPage = page
}

// Select opens post in the detail view. The filter and page are kept.
func (s *State) Select(post Post) {
	p := post
	s.Selected = &p
}

// Back returns to the list view.
func (s *State) Back() {
	s.Selected = nil
}

// ToggleTheme flips the theme. Entering dark mode draws a new star field from
// rng; leaving it discards the stars.
func (s *State) ToggleTheme(rng *rand.Rand) {
	s.DarkMode = !s.DarkMode
	s.ShowStars(rng)
}

// ShowStars regenerates the star field for the current theme.
func (s *State) ShowStars(rng *rand.Rand) {
	if !s.DarkMode {
		s.Stars = nil
		return
	}
	s.Stars = GenerateStars(rng, StarCount)
}

// Snapshot is what a surface needs to draw the current state.
type Snapshot struct {
	Tags        []string
	Filtered    int
	Posts       []Post
	CurrentPage int
	TotalPages  int
	PageNumbers []int
	Selected    *Post
}

// View applies the filter and pagination to posts.
func (s State) View(posts []Post) Snapshot {
	filtered := Filter(posts, s.Query, s.TagFilter)
	items, total := Paginate(filtered, PageSize, s.CurrentPage)
	return Snapshot{
		Tags:        Tags(posts),
		Filtered:    len(filtered),
		Posts:       items,
		CurrentPage: s.CurrentPage,
		TotalPages:  total,
		PageNumbers: PageNumbers(total),
		Selected:    s.Selected,
	}
}
