package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPosts() []Post {
	return []Post{
		{
			ID:        1,
			Title:     "Post 1",
			Content:   "Content 1",
			Author:    "Author 1",
			CreatedAt: "2024-11-05T09:30:00",
			Status:    StatusPublished,
		},
		{
			ID:        2,
			Title:     "Post 2",
			Content:   "Content 2",
			Author:    "Author 2",
			CreatedAt: "2024-11-06T18:45:00",
			Status:    StatusPublished,
		},
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{
			name:    "empty filter passes everything",
			filter:  Filter{},
			wantIDs: []int{1, 2},
		},
		{
			name:    "content filter matches single post",
			filter:  Filter{Content: "Content 1"},
			wantIDs: []int{1},
		},
		{
			name:    "content filter is case-insensitive",
			filter:  Filter{Content: "cOnTeNt 2"},
			wantIDs: []int{2},
		},
		{
			name:    "author substring matches",
			filter:  Filter{Author: "author"},
			wantIDs: []int{1, 2},
		},
		{
			name:    "date matches calendar day ignoring time",
			filter:  Filter{Date: "2024-11-05"},
			wantIDs: []int{1},
		},
		{
			name:    "all conditions must hold",
			filter:  Filter{Content: "Content 1", Author: "Author 2"},
			wantIDs: []int{},
		},
		{
			name:    "content and author and date combined",
			filter:  Filter{Content: "content", Author: "Author 2", Date: "2024-11-06"},
			wantIDs: []int{2},
		},
		{
			name:    "unparseable date filter matches nothing",
			filter:  Filter{Date: "not-a-date"},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(testPosts())

			ids := make([]int, 0, len(got))
			for _, post := range got {
				ids = append(ids, post.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_Apply_Idempotent(t *testing.T) {
	posts := testPosts()
	filter := Filter{Content: "content", Author: "Author 1"}

	first := filter.Apply(posts)
	second := filter.Apply(posts)

	assert.Equal(t, first, second)
}

func TestFilter_Apply_DoesNotMutateInput(t *testing.T) {
	posts := testPosts()
	filter := Filter{Content: "Content 2"}

	filtered := filter.Apply(posts)

	require.Len(t, filtered, 1)
	assert.Len(t, posts, 2)
	assert.Equal(t, 1, posts[0].ID)
}

func TestFilter_Matches_DateAgainstRFC3339(t *testing.T) {
	post := Post{
		Content:   "anything",
		Author:    "anyone",
		CreatedAt: "2024-11-05T23:59:59Z",
	}

	assert.True(t, Filter{Date: "2024-11-05"}.Matches(post))
	assert.False(t, Filter{Date: "2024-11-06"}.Matches(post))
}

func TestFilter_Matches_MissingCreatedAt(t *testing.T) {
	post := Post{Content: "c", Author: "a"}

	assert.True(t, Filter{}.Matches(post))
	assert.False(t, Filter{Date: "2024-11-05"}.Matches(post))
}
