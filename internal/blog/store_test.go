package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStore(SamplePosts())
	require.NoError(t, err)

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, []string{"1", "2", "3", "4"}, slugs(store.List()))

	post, err := store.GetBySlug("2")
	require.NoError(t, err)
	assert.Equal(t, "my coffee dependency: a timeline", post.Title)

	_, err = store.GetBySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{AllTags, "thoughts", "life", "mood", "social"}, store.Tags())
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStore(SamplePosts())
	require.NoError(t, err)

	list := store.List()
	list[0].Title = "changed"

	post, err := store.GetBySlug(list[0].Slug)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", post.Title)
}

func TestMemoryStoreReplace(t *testing.T) {
	t.Parallel()

	store, err := NewMemoryStore(SamplePosts())
	require.NoError(t, err)

	err = store.Replace([]Post{{Slug: "a"}, {Slug: "a"}})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.Equal(t, 4, store.Len(), "failed replace keeps the old snapshot")

	err = store.Replace([]Post{{Slug: ""}})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	require.NoError(t, store.Replace([]Post{{Slug: "only"}}))
	assert.Equal(t, []string{"only"}, slugs(store.List()))
}

func TestMemoryStoreGetRelated(t *testing.T) {
	t.Parallel()

	posts := NewLoader(nil).Load([]Source{
		{Key: "a.md", Text: doc("a", "2024-01-04", "life", "")},
		{Key: "b.md", Text: doc("b", "2024-01-03", "life", "")},
		{Key: "c.md", Text: doc("c", "2024-01-02", "mood", "")},
		{Key: "d.md", Text: doc("d", "2024-01-01", "life", "")},
	})
	store, err := NewMemoryStore(posts)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "d"}, slugs(store.GetRelated("b", 3)))
	assert.Equal(t, []string{"b"}, slugs(store.GetRelated("a", 1)))
	assert.Empty(t, store.GetRelated("c", 3))
	assert.Empty(t, store.GetRelated("missing", 3))
}
