package blog

// Store is a read-only, date-ordered collection of posts.
type Store interface {
	List() []Post
	GetBySlug(slug string) (Post, error)
	GetRelated(slug string, n int) []Post
	Tags() []string
}
