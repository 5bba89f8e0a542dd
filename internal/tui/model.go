// Package tui is the terminal surface of the blog: the same list, search, tag
// filter, pagination and detail view as the web pages, driven from the keyboard.
package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"midnight/internal/blog"
	"midnight/internal/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	excerptLength = 120
	starRows      = 2
)

// Model is a bubbletea model owning one blog.State.
type Model struct {
	state    blog.State
	posts    []blog.Post
	site     blog.SiteProfile
	renderer *render.Renderer
	rng      *rand.Rand

	search   textinput.Model
	detail   viewport.Model
	cursor   int
	width    int
	height   int
	quitting bool
}

// New returns a model over posts. seed drives the star field so a session can
// be reproduced.
func New(posts []blog.Post, site blog.SiteProfile, renderer *render.Renderer, seed uint64) Model {
	if renderer == nil {
		renderer = render.New()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search posts..."
	search.CharLimit = 100
	search.Focus()

	m := Model{
		state:    blog.NewState(),
		posts:    posts,
		site:     site,
		renderer: renderer,
		rng:      blog.NewStarRand(seed),
		search:   search,
		detail:   viewport.New(defaultWidth, defaultHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.state.ShowStars(m.rng)
	return m
}

// State returns a copy of the current UI state.
func (m Model) State() blog.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-4, 1)
		if m.state.Selected != nil {
			m.renderDetail()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+t":
			m.state.ToggleTheme(m.rng)
			if m.state.Selected != nil {
				m.renderDetail()
			}
			return m, nil
		}

		if m.state.Selected != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state.Back()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.state.View(m.posts)

	switch msg.String() {
	case "tab":
		m.state.SetTag(cycle(view.Tags, m.state.TagFilter, 1))
		m.cursor = 0
		return m, nil
	case "shift+tab":
		m.state.SetTag(cycle(view.Tags, m.state.TagFilter, -1))
		m.cursor = 0
		return m, nil
	case "right":
		if m.state.CurrentPage < view.TotalPages {
			m.state.SetPage(m.state.CurrentPage + 1)
			m.cursor = 0
		}
		return m, nil
	case "left":
		if m.state.CurrentPage > 1 {
			m.state.SetPage(m.state.CurrentPage - 1)
			m.cursor = 0
		}
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(view.Posts)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(view.Posts) {
			m.state.Select(view.Posts[m.cursor])
			m.renderDetail()
		}
		return m, nil
	case "esc":
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.state.SetQuery(after)
		m.cursor = 0
	}
	return m, cmd
}

// renderDetail fills the viewport with the selected post rendered for the
// current theme.
func (m *Model) renderDetail() {
	post := m.state.Selected
	s := newStyles(m.state.DarkMode)

	header := s.title.Render(post.Title) + "\n" +
		s.meta.Render(fmt.Sprintf("%s · %s · %s", displayDate(*post), post.Tag, post.ReadTime()))

	m.detail.SetContent(header + "\n" + markdown(post.Content, m.state.DarkMode, m.width))
	m.detail.GotoTop()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := newStyles(m.state.DarkMode)

	var b strings.Builder
	if m.state.DarkMode {
		b.WriteString(s.star.Render(starLines(m.state.Stars, m.width, starRows)))
		b.WriteString("\n")
	}

	if m.state.Selected != nil {
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(s.help.Render("↑/↓ scroll · esc back · ctrl+t theme · ctrl+c quit"))
		return s.doc.Render(b.String())
	}

	b.WriteString(s.title.Render(m.site.Title))
	b.WriteString(" ")
	b.WriteString(s.meta.Render(m.site.Tagline))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	view := m.state.View(m.posts)

	tags := make([]string, 0, len(view.Tags))
	for _, t := range view.Tags {
		if t == m.state.TagFilter {
			tags = append(tags, s.activeTag.Render(t))
		} else {
			tags = append(tags, s.tag.Render(t))
		}
	}
	b.WriteString(strings.Join(tags, " "))
	b.WriteString("\n\n")

	switch {
	case view.Filtered == 0:
		b.WriteString(s.meta.Render(fmt.Sprintf("nothing here matches %q.", m.state.Query)))
		b.WriteString("\n")
	case len(view.Posts) == 0:
		b.WriteString(s.meta.Render("no posts on this page."))
		b.WriteString("\n")
	}
	for i, p := range view.Posts {
		title := s.item.Render(p.Title)
		if i == m.cursor {
			title = s.cursor.Render("> " + p.Title)
		} else {
			title = "  " + title
		}
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString("  " + s.meta.Render(fmt.Sprintf("%s · %s · %s", displayDate(p), p.Tag, p.ReadTime())))
		b.WriteString("\n")
		if excerpt := m.renderer.Excerpt(p, excerptLength); excerpt != "" {
			b.WriteString("  " + s.excerpt.Render(excerpt))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if view.TotalPages > 1 {
		pages := make([]string, 0, len(view.PageNumbers))
		for _, n := range view.PageNumbers {
			if n == view.CurrentPage {
				pages = append(pages, s.activeTag.Render(fmt.Sprint(n)))
			} else {
				pages = append(pages, s.tag.Render(fmt.Sprint(n)))
			}
		}
		b.WriteString(strings.Join(pages, " "))
		b.WriteString("\n")
	}

	b.WriteString(s.help.Render("type to search · tab tags · ←/→ page · ↑/↓ move · enter open · ctrl+t theme · ctrl+c quit"))
	b.WriteString("\n")
	b.WriteString(s.meta.Render(m.site.Footer))
	return s.doc.Render(b.String())
}

// cycle returns the entry of tags step positions away from current, wrapping
// around. An unknown current starts from the first entry.
func cycle(tags []string, current string, step int) string {
	if len(tags) == 0 {
		return blog.AllTags
	}
	i := 0
	for j, t := range tags {
		if t == current {
			i = j
			break
		}
	}
	n := len(tags)
	return tags[((i+step)%n+n)%n]
}

// starLines maps the star field onto rows lines of the given width.
func starLines(stars []blog.Star, width, rows int) string {
	if width <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for _, st := range stars {
		x := min(int(st.X/100*float64(width)), width-1)
		y := min(int(st.Y/100*float64(rows)), rows-1)
		grid[y][x] = starGlyph(st)
	}
	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func starGlyph(st blog.Star) rune {
	switch {
	case st.Size >= 2.5:
		return '*'
	case st.Size >= 1.8:
		return '+'
	default:
		return '.'
	}
}

func displayDate(p blog.Post) string {
	if p.Date == "" {
		return "undated"
	}
	return p.Date
}

// markdown renders a post body for the terminal. If glamour fails the raw
// text is shown.
func markdown(content string, dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

type styles struct {
	doc       lipgloss.Style
	title     lipgloss.Style
	meta      lipgloss.Style
	item      lipgloss.Style
	cursor    lipgloss.Style
	excerpt   lipgloss.Style
	tag       lipgloss.Style
	activeTag lipgloss.Style
	star      lipgloss.Style
	help      lipgloss.Style
}

func newStyles(dark bool) styles {
	fg, muted, accent, faint := lipgloss.Color("#1f2937"), lipgloss.Color("#6b7280"), lipgloss.Color("#7c3aed"), lipgloss.Color("#9ca3af")
	if dark {
		fg, muted, accent, faint = lipgloss.Color("#e5e7eb"), lipgloss.Color("#9ca3af"), lipgloss.Color("#c4b5fd"), lipgloss.Color("#4b5563")
	}
	return styles{
		doc:       lipgloss.NewStyle().Padding(0, 1),
		title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		meta:      lipgloss.NewStyle().Foreground(muted),
		item:      lipgloss.NewStyle().Foreground(fg),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		excerpt:   lipgloss.NewStyle().Foreground(faint),
		tag:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		activeTag: lipgloss.NewStyle().Bold(true).Foreground(fg).Background(accent).Padding(0, 1),
		star:      lipgloss.NewStyle().Foreground(lipgloss.Color("#fef3c7")),
		help:      lipgloss.NewStyle().Foreground(faint).Italic(true),
	}
}
