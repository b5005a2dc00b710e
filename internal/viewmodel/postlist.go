package viewmodel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
)

// PostList backs the published posts view. It owns the collection it
// fetched; the filtered slice starts equal to the full collection and is
// recomputed synchronously by ApplyFilters.
type PostList struct {
	posts *client.PostClient
	log   *slog.Logger

	Filters  blog.Filter
	all      []blog.Post
	filtered []blog.Post
}

func NewPostList(posts *client.PostClient, log *slog.Logger) *PostList {
	return &PostList{
		posts: posts,
		log:   log,
	}
}

// Load fetches the published posts, always re-fetching; there is no
// client-side cache. The current filters are re-applied to the fresh data.
func (l *PostList) Load(ctx context.Context) error {
	posts, err := l.posts.Published(ctx)
	if err != nil {
		return fmt.Errorf("load published posts: %w", err)
	}

	l.all = posts
	l.ApplyFilters()
	return nil
}

// ApplyFilters recomputes the filtered posts from the full collection. It is
// idempotent: unchanged inputs and filters yield the same result.
func (l *PostList) ApplyFilters() {
	l.filtered = l.Filters.Apply(l.all)
}

// Posts returns the current filtered view of the collection.
func (l *PostList) Posts() []blog.Post {
	return l.filtered
}
