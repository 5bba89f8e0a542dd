package blog

import (
	"fmt"
	"time"
)

// Post is a single entry of the corpus. Posts are never modified after load.
type Post struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Published time.Time `json:"-"`
	Tag       string    `json:"tag"`
	Content   string    `json:"content"`
}

// Dated reports whether the post's date could be parsed.
func (p Post) Dated() bool {
	return !p.Published.IsZero()
}

func (p Post) ReadTime() string {
	words := 0
	inWord := false
	for _, r := range p.Content {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}
	minutes := words / 200
	if minutes < 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}
