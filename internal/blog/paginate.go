package blog

// PageSize is the fixed number of posts per list page.
const PageSize = 3

// TotalPages is never less than one, so an empty result still has a page.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	totalPages := (count + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// Paginate returns the posts on page (1-indexed) and the total page count.
// A page outside 1..totalPages yields an empty slice; the page is not clamped.
func Paginate(posts []Post, pageSize, page int) ([]Post, int) {
	total := TotalPages(len(posts), pageSize)
	if page < 1 || page > total || pageSize < 1 {
		return []Post{}, total
	}

	start := (page - 1) * pageSize
	if start >= len(posts) {
		return []Post{}, total
	}
	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end], total
}

// PageNumbers lists 1..totalPages for pager controls.
func PageNumbers(totalPages int) []int {
	numbers := make([]int, 0, totalPages)
	for n := 1; n <= totalPages; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}
