package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

const commentsPath = "/api/comments"

// CommentClient wraps the comment service REST API.
type CommentClient struct {
	api apiClient
}

func NewCommentClient(baseURL string, httpClient *http.Client, identity IdentitySource, log *slog.Logger) *CommentClient {
	return &CommentClient{
		api: newAPIClient(baseURL, httpClient, identity, log),
	}
}

type addCommentRequest struct {
	PostID int    `json:"postId"`
	Text   string `json:"text"`
}

type updateCommentRequest struct {
	Text string `json:"text"`
}

func (c *CommentClient) ByPostID(ctx context.Context, postID int) ([]blog.Comment, error) {
	var comments []blog.Comment
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", commentsPath, postID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *CommentClient) Add(ctx context.Context, postID int, text string) (*blog.Comment, error) {
	var comment blog.Comment
	req := addCommentRequest{PostID: postID, Text: text}
	if err := c.api.do(ctx, http.MethodPost, commentsPath, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update changes the text of an existing comment; all other fields are
// immutable after creation.
func (c *CommentClient) Update(ctx context.Context, id int, text string) (*blog.Comment, error) {
	var comment blog.Comment
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", commentsPath, id), updateCommentRequest{Text: text}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *CommentClient) Delete(ctx context.Context, id int) error {
	return c.api.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", commentsPath, id), nil, nil)
}
