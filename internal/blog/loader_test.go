package blog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugs(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func doc(title, date, tag, body string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\ntag: " + tag + "\n---\n" + body
}

func TestLoadSortsNewestFirst(t *testing.T) {
	t.Parallel()

	posts := NewLoader(nil).Load([]Source{
		{Key: "posts/coffee.md", Text: doc("my coffee dependency: a timeline", "nov 5", "life", "age 15")},
		{Key: "posts/introvert.md", Text: doc("introvert survival guide", "oct 30", "social", "someone")},
		{Key: "posts/3am.md", Text: doc("why i think at 3am better than 3pm", "nov 8", "thoughts", "quiet")},
		{Key: "posts/productive.md", Text: doc("the art of pretending to be productive", "nov 2", "mood", "laptop")},
	})

	want := []string{"3am", "coffee", "productive", "introvert"}
	if diff := cmp.Diff(want, slugs(posts)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	for _, p := range posts {
		assert.True(t, p.Dated(), p.Slug)
	}
}

func TestLoadUndatedPostsSortLast(t *testing.T) {
	t.Parallel()

	posts := NewLoader(nil).Load([]Source{
		{Key: "zeta.md", Text: doc("z", "someday", "x", "")},
		{Key: "old.md", Text: doc("old", "2020-01-01", "x", "")},
		{Key: "alpha.md", Text: "no metadata at all"},
		{Key: "new.md", Text: doc("new", "2024-06-01", "x", "")},
	})

	assert.Equal(t, []string{"new", "old", "alpha", "zeta"}, slugs(posts))
}

func TestLoadFieldsAndFallbacks(t *testing.T) {
	t.Parallel()

	posts := NewLoader(nil).Load([]Source{
		{Key: "./posts/hello-world.md", Text: "---\ntitle: \"Hello: World\"\ndate: '2024-03-09'\ntags: [notes, misc]\n---\n# Hi\n"},
		{Key: "broken.md", Text: "---\ntitle: never closed\n"},
		{Key: "nested/hello-world.md", Text: "duplicate slug"},
	})
	require.Len(t, posts, 2)

	hello := posts[0]
	assert.Equal(t, "hello-world", hello.Slug)
	assert.Equal(t, "Hello: World", hello.Title)
	assert.Equal(t, "2024-03-09", hello.Date)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), hello.Published)
	assert.Equal(t, "notes", hello.Tag)
	assert.Equal(t, "# Hi\n", hello.Content)

	broken := posts[1]
	assert.Equal(t, "broken", broken.Slug)
	assert.Equal(t, "broken", broken.Title)
	assert.Equal(t, "---\ntitle: never closed\n", broken.Content)
	assert.False(t, broken.Dated())
}

type failingFS struct {
	fstest.MapFS
	bad string
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	if name == f.bad {
		return nil, errors.New("disk on fire")
	}
	return f.MapFS.ReadFile(name)
}

func TestLoadDirSkipsUnreadableFiles(t *testing.T) {
	t.Parallel()

	fsys := failingFS{
		MapFS: fstest.MapFS{
			"a.md":      {Data: []byte(doc("a", "2024-01-01", "x", "a"))},
			"b.md":      {Data: []byte(doc("b", "2024-01-02", "x", "b"))},
			"notes.txt": {Data: []byte("ignored")},
		},
		bad: "a.md",
	}

	posts, err := NewLoader(nil).LoadDir(context.Background(), fsys, "*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, slugs(posts))
}

func TestLoadDirHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).LoadDir(ctx, fstest.MapFS{"a.md": {Data: []byte("x")}}, "*.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadDirBadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(nil).LoadDir(context.Background(), fstest.MapFS{}, "[")
	assert.Error(t, err)
}

func TestLoadRecords(t *testing.T) {
	t.Parallel()

	input := `[
		// exported from the old site
		{"id": 1, "title": "one", "date": "nov 8", "tag": "thoughts", "content": "first"},
		{"id": "two", "title": "two", "date": "nov 9", "tag": "life", "content": "second"},
		{"slug": "three", "title": "three", "date": "bad", "content": "third"},
		{"id": 1, "title": "dup", "date": "nov 10"},
		{"title": "no id"},
	]`

	posts, err := NewLoader(nil).LoadRecords(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "1", "three"}, slugs(posts))
	assert.Equal(t, "thoughts", posts[1].Tag)
	assert.Equal(t, "first", posts[1].Content)
}

func TestLoadRecordsInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(nil).LoadRecords(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = NewLoader(nil).LoadRecords(strings.NewReader(`[{`))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2024-11-08", time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{"2024-11-08T10:30:00Z", time.Date(2024, 11, 8, 10, 30, 0, 0, time.UTC), true},
		{"2024-11-08 10:30", time.Date(2024, 11, 8, 10, 30, 0, 0, time.UTC), true},
		{"November 8, 2024", time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{"Nov 8, 2024", time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{"8 Nov 2024", time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{"nov 8", time.Date(0, 11, 8, 0, 0, 0, 0, time.UTC), true},
		{" oct 30 ", time.Date(0, 10, 30, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}
