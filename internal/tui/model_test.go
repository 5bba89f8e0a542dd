package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"midnight/internal/blog"
)

func newTestModel() Model {
	return New(blog.SamplePosts(), blog.DefaultProfile(), nil, 42)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	st := newTestModel().State()
	assert.Equal(t, "", st.Query)
	assert.Equal(t, blog.AllTags, st.TagFilter)
	assert.Equal(t, 1, st.CurrentPage)
	assert.True(t, st.DarkMode)
	assert.Len(t, st.Stars, blog.StarCount)
	assert.Nil(t, st.Selected)
}

func TestTypingSetsQuery(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), key(tea.KeyRight))
	assert.Equal(t, 2, m.State().CurrentPage)

	m = press(t, m, typed("coffee"))
	st := m.State()
	assert.Equal(t, "coffee", st.Query)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Equal(t, 2, st.View(blog.SamplePosts()).Filtered)

	m = press(t, m, key(tea.KeyBackspace))
	assert.Equal(t, "coffe", m.State().Query)
}

func TestPageKeys(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), key(tea.KeyLeft))
	assert.Equal(t, 1, m.State().CurrentPage, "no page before the first")

	m = press(t, m, key(tea.KeyRight), key(tea.KeyRight))
	assert.Equal(t, 2, m.State().CurrentPage, "no page after the last")

	m = press(t, m, key(tea.KeyLeft))
	assert.Equal(t, 1, m.State().CurrentPage)
}

func TestTagCycle(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), key(tea.KeyRight), key(tea.KeyTab))
	assert.Equal(t, "thoughts", m.State().TagFilter)
	assert.Equal(t, 1, m.State().CurrentPage)

	m = press(t, m, key(tea.KeyShiftTab), key(tea.KeyShiftTab))
	assert.Equal(t, "social", m.State().TagFilter)
}

func TestOpenAndBack(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), typed("a"), key(tea.KeyDown), key(tea.KeyEnter))
	st := m.State()
	require.NotNil(t, st.Selected)
	assert.Equal(t, "2", st.Selected.Slug)
	assert.Contains(t, m.View(), "esc back")

	// Typing in the detail view does not touch the search box.
	m = press(t, m, typed("zzz"), key(tea.KeyEsc))
	st = m.State()
	assert.Nil(t, st.Selected)
	assert.Equal(t, "a", st.Query)
	assert.Equal(t, 1, st.CurrentPage)
}

func TestCursorBounds(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), key(tea.KeyUp))
	assert.Zero(t, m.cursor)

	m = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	assert.Equal(t, 2, m.cursor)

	m = press(t, m, key(tea.KeyRight))
	assert.Zero(t, m.cursor)
}

func TestThemeToggle(t *testing.T) {
	t.Parallel()

	m := press(t, newTestModel(), key(tea.KeyCtrlT))
	assert.False(t, m.State().DarkMode)
	assert.Empty(t, m.State().Stars)

	m = press(t, m, key(tea.KeyCtrlT))
	assert.True(t, m.State().DarkMode)
	assert.Len(t, m.State().Stars, blog.StarCount)
}

func TestQuit(t *testing.T) {
	t.Parallel()

	next, cmd := newTestModel().Update(key(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestListView(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	out := m.View()
	assert.Contains(t, out, "midnight.thoughts")
	assert.Contains(t, out, "why i think at 3am better than 3pm")
	assert.NotContains(t, out, "introvert survival guide")

	m = press(t, m, typed("no such words"))
	assert.Contains(t, m.View(), "nothing here matches")
}

func TestCycle(t *testing.T) {
	t.Parallel()

	tags := []string{"all", "a", "b"}
	assert.Equal(t, "a", cycle(tags, "all", 1))
	assert.Equal(t, "all", cycle(tags, "b", 1))
	assert.Equal(t, "b", cycle(tags, "all", -1))
	assert.Equal(t, "a", cycle(tags, "missing", 1))
	assert.Equal(t, blog.AllTags, cycle(nil, "x", 1))
}

func TestStarLines(t *testing.T) {
	t.Parallel()

	stars := []blog.Star{
		{X: 0, Y: 0, Size: 1},
		{X: 99.9, Y: 99.9, Size: 2.9},
		{X: 50, Y: 10, Size: 2},
	}
	lines := strings.Split(starLines(stars, 10, 2), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ".    +", lines[0])
	assert.Equal(t, "         *", lines[1])

	assert.Empty(t, starLines(stars, 0, 2))
}
