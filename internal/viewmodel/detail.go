package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/session"
)

// PostDetail backs the single-post view: the post, its comments and the
// review actions available to editors. Comment mutations reconcile the local
// list in place instead of reloading the whole page.
type PostDetail struct {
	posts    *client.PostClient
	comments *client.CommentClient
	reviews  *client.ReviewClient
	identity client.IdentitySource
	nav      session.Navigator
	log      *slog.Logger

	Post     *blog.Post
	Comments []blog.Comment
}

func NewPostDetail(
	posts *client.PostClient,
	comments *client.CommentClient,
	reviews *client.ReviewClient,
	identity client.IdentitySource,
	nav session.Navigator,
	log *slog.Logger,
) *PostDetail {
	return &PostDetail{
		posts:    posts,
		comments: comments,
		reviews:  reviews,
		identity: identity,
		nav:      nav,
		log:      log,
	}
}

// Load fetches the post and its comments. A comment fetch failure is not
// fatal for the view; the post renders with an empty comment list.
func (d *PostDetail) Load(ctx context.Context, id int) error {
	post, err := d.posts.ByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load post %d: %w", id, err)
	}
	d.Post = post

	comments, err := d.comments.ByPostID(ctx, id)
	if err != nil {
		d.log.Warn("failed to load comments", "postID", id, "error", err)
		comments = nil
	}
	d.Comments = comments

	return nil
}

// IsEditor reports whether the current identity may review posts.
func (d *PostDetail) IsEditor() bool {
	identity := d.identity.Current()
	return identity != nil && identity.Role == blog.RoleEditor
}

// AddComment opens the add-comment dialog with the post id. Whitespace-only
// input never reaches the backend. On success the new comment is appended to
// the local list.
func (d *PostDetail) AddComment(ctx context.Context, dialog Dialog[int, string]) error {
	if d.Post == nil {
		return nil
	}

	text, ok := dialog.Open(ctx, d.Post.ID)
	if !ok {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	comment, err := d.comments.Add(ctx, d.Post.ID, text)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}

	d.Comments = append(d.Comments, *comment)
	return nil
}

// EditComment opens the edit dialog with the comment snapshot and, on a
// confirmed non-empty result, updates the backend and the local list entry.
func (d *PostDetail) EditComment(ctx context.Context, comment blog.Comment, dialog Dialog[EditCommentData, string]) error {
	text, ok := dialog.Open(ctx, EditCommentData{
		CommentID:   comment.ID,
		CurrentText: comment.Text,
	})
	if !ok {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	updated, err := d.comments.Update(ctx, comment.ID, text)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", comment.ID, err)
	}

	for i := range d.Comments {
		if d.Comments[i].ID == comment.ID {
			d.Comments[i].Text = updated.Text
			break
		}
	}
	return nil
}

// DeleteComment removes the comment and drops it from the local list.
func (d *PostDetail) DeleteComment(ctx context.Context, id int) error {
	if err := d.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	remaining := d.Comments[:0]
	for _, comment := range d.Comments {
		if comment.ID != id {
			remaining = append(remaining, comment)
		}
	}
	d.Comments = remaining
	return nil
}

// Review submits the editorial verdict. Approval goes straight to the
// backend with an empty comment; rejection first collects the review comment
// through the dialog and does nothing when it is cancelled. After a
// submitted review the editor is sent back to the moderation queue.
func (d *PostDetail) Review(ctx context.Context, approve bool, rejectDialog Dialog[int, string]) error {
	identity := d.identity.Current()
	if d.Post == nil || identity == nil {
		return nil
	}

	reviewComment := ""
	if !approve {
		comment, ok := rejectDialog.Open(ctx, d.Post.ID)
		if !ok {
			return nil
		}
		reviewComment = comment
	}

	if err := d.reviews.Submit(ctx, d.Post.ID, identity.Username, approve, reviewComment); err != nil {
		return fmt.Errorf("review post %d: %w", d.Post.ID, err)
	}

	if d.nav != nil {
		d.nav.Navigate("/concepts")
	}
	return nil
}
