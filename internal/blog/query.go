package blog

import "strings"

// AllTags is the wildcard tag filter.
const AllTags = "all"

// Filter returns the posts matching both the text query and the tag filter,
// in their original order. The query is matched case-insensitively against
// title and content; an empty query matches every post.
func Filter(posts []Post, query, tagFilter string) []Post {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !matchesQuery(p, q) || !matchesTag(p, tagFilter) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesQuery(p Post, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q)
}

func matchesTag(p Post, tagFilter string) bool {
	return tagFilter == AllTags || p.Tag == tagFilter
}

// Tags lists AllTags followed by each distinct tag in order of first
// appearance. Posts without a tag contribute nothing.
func Tags(posts []Post) []string {
	tags := []string{AllTags}
	seen := map[string]struct{}{}
	for _, p := range posts {
		if p.Tag == "" {
			continue
		}
		if _, ok := seen[p.Tag]; ok {
			continue
		}
		seen[p.Tag] = struct{}{}
		tags = append(tags, p.Tag)
	}
	return tags
}
