package blog

import (
	"strings"
	"time"
)

// Filter holds the transient list filter criteria. Empty fields always pass
// their condition; Date, when set, must be a YYYY-MM-DD calendar date.
type Filter struct {
	Content string
	Author  string
	Date    string
}

// Matches reports whether the post passes all three filter conditions:
// case-insensitive substring containment for content and author, and exact
// calendar-date equality (ignoring time of day) when a date is set.
func (f Filter) Matches(post Post) bool {
	if !containsFold(post.Content, f.Content) {
		return false
	}
	if !containsFold(post.Author, f.Author) {
		return false
	}
	if f.Date == "" {
		return true
	}

	want, err := time.Parse("2006-01-02", f.Date)
	if err != nil {
		return false
	}

	created := post.CreatedTime()
	if created.IsZero() {
		return false
	}

	return sameDay(created, want)
}

// Apply returns the posts passing the filter, preserving input order. The
// input slice is never modified, so re-applying with unchanged inputs yields
// the same result.
func (f Filter) Apply(posts []Post) []Post {
	filtered := make([]Post, 0, len(posts))
	for _, post := range posts {
		if f.Matches(post) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
