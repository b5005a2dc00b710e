package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
)

// ConceptList backs the moderation queue: every post that is not yet
// published, with the same in-memory filtering as the published list.
type ConceptList struct {
	posts *client.PostClient
	log   *slog.Logger

	Filters  blog.Filter
	all      []blog.Post
	filtered []blog.Post
}

func NewConceptList(posts *client.PostClient, log *slog.Logger) *ConceptList {
	return &ConceptList{
		posts: posts,
		log:   log,
	}
}

func (l *ConceptList) Load(ctx context.Context) error {
	posts, err := l.posts.NotPublished(ctx)
	if err != nil {
		return fmt.Errorf("load concept posts: %w", err)
	}

	l.all = posts
	l.ApplyFilters()
	return nil
}

func (l *ConceptList) ApplyFilters() {
	l.filtered = l.Filters.Apply(l.all)
}

func (l *ConceptList) Posts() []blog.Post {
	return l.filtered
}

// Publish moves an approved post to PUBLISHED and reloads the queue.
func (l *ConceptList) Publish(ctx context.Context, id int) error {
	if _, err := l.posts.Publish(ctx, id); err != nil {
		return fmt.Errorf("publish post %d: %w", id, err)
	}
	return l.Load(ctx)
}

// EditPost opens the edit dialog with a snapshot of the post. On confirm the
// dialog result is shallow-merged onto the snapshot, PUT as a full object
// and the queue reloaded. A cancelled dialog changes nothing.
func (l *ConceptList) EditPost(ctx context.Context, post blog.Post, dialog Dialog[blog.Post, PostEdit]) error {
	edit, ok := dialog.Open(ctx, post)
	if !ok {
		return nil
	}

	if strings.TrimSpace(edit.Title) == "" || strings.TrimSpace(edit.Content) == "" {
		return nil
	}

	post.Title = edit.Title
	post.Content = edit.Content

	if _, err := l.posts.Update(ctx, post.ID, post); err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return l.Load(ctx)
}
