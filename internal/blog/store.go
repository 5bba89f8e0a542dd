package blog

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNotFound = errors.New("post not found")
var ErrDuplicateSlug = errors.New("post slug already exists")
var ErrInvalidSlug = errors.New("post slug is required")

// MemoryStore holds an immutable snapshot of posts. Replace swaps the whole
// snapshot; individual posts are never edited in place.
type MemoryStore struct {
	mu    sync.RWMutex
	posts []Post
	index map[string]int
}

func NewMemoryStore(posts []Post) (*MemoryStore, error) {
	store := &MemoryStore{}
	if err := store.Replace(posts); err != nil {
		return nil, err
	}
	return store, nil
}

// Replace validates posts, sorts them newest first and installs them as the
// new snapshot. The previous snapshot stays in place when validation fails.
func (s *MemoryStore) Replace(posts []Post) error {
	next := make([]Post, len(posts))
	copy(next, posts)
	SortPosts(next)

	index := make(map[string]int, len(next))
	for i, post := range next {
		if post.Slug == "" {
			return ErrInvalidSlug
		}
		if _, ok := index[post.Slug]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, post.Slug)
		}
		index[post.Slug] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = next
	s.index = index
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

func (s *MemoryStore) List() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// 返回副本，避免外部修改内部切片
	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// GetBySlug returns the post with the given slug or ErrNotFound.
func (s *MemoryStore) GetBySlug(slug string) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[slug]
	if !ok {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return s.posts[i], nil
}

func (s *MemoryStore) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Tags(s.posts)
}

// GetRelated returns up to n other posts sharing the post's tag, newest first.
func (s *MemoryStore) GetRelated(slug string, n int) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[slug]
	if !ok || s.posts[i].Tag == "" || n <= 0 {
		return []Post{}
	}
	tag := s.posts[i].Tag

	related := []Post{}
	for _, p := range s.posts {
		if p.Slug == slug || p.Tag != tag {
			continue
		}
		related = append(related, p)
		if len(related) == n {
			break
		}
	}
	return related
}
