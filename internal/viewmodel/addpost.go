package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/guard"
)

// AddPost backs the new-post form. The author is always the logged-in user;
// the form tracks dirtiness and submission for the leave guard.
type AddPost struct {
	posts    *client.PostClient
	identity client.IdentitySource
	log      *slog.Logger

	Title     string
	Content   string
	IsConcept bool
	Form      guard.FormState
}

func NewAddPost(posts *client.PostClient, identity client.IdentitySource, log *slog.Logger) *AddPost {
	return &AddPost{
		posts:    posts,
		identity: identity,
		log:      log,
	}
}

// SetTitle and SetContent mark the form dirty on any change.
func (f *AddPost) SetTitle(title string) {
	if title != f.Title {
		f.Title = title
		f.Form.Dirty = true
	}
}

func (f *AddPost) SetContent(content string) {
	if content != f.Content {
		f.Content = content
		f.Form.Dirty = true
	}
}

func (f *AddPost) SetIsConcept(isConcept bool) {
	if isConcept != f.IsConcept {
		f.IsConcept = isConcept
		f.Form.Dirty = true
	}
}

// Valid reports whether the form may be submitted: both text fields filled
// and a logged-in author present.
func (f *AddPost) Valid() bool {
	return strings.TrimSpace(f.Title) != "" &&
		strings.TrimSpace(f.Content) != "" &&
		f.identity.Current() != nil
}

// Submit creates the post. The status is CONCEPT when saved as a draft and
// PUBLISHED otherwise; createdAt is stamped client-side. An invalid form is
// a local no-op, no backend call is made.
func (f *AddPost) Submit(ctx context.Context) (*blog.Post, error) {
	if !f.Valid() {
		return nil, nil
	}

	status := blog.StatusPublished
	if f.IsConcept {
		status = blog.StatusConcept
	}

	post := blog.Post{
		Title:     f.Title,
		Content:   f.Content,
		Author:    f.identity.Current().Username,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
	}

	created, err := f.posts.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	f.Form.Submitted = true
	return created, nil
}

// AllowLeave runs the navigation-abort check for this form.
func (f *AddPost) AllowLeave(confirm guard.Confirmer) bool {
	return guard.AllowLeave(f.Form, confirm)
}
