package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

const postsPath = "/api/posts"

// PostClient wraps the post service REST API.
type PostClient struct {
	api apiClient
}

func NewPostClient(baseURL string, httpClient *http.Client, identity IdentitySource, log *slog.Logger) *PostClient {
	return &PostClient{
		api: newAPIClient(baseURL, httpClient, identity, log),
	}
}

// Create posts a new draft; the server assigns the id.
func (c *PostClient) Create(ctx context.Context, post blog.Post) (*blog.Post, error) {
	var created blog.Post
	if err := c.api.do(ctx, http.MethodPost, postsPath, post, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *PostClient) ByID(ctx context.Context, id int) (*blog.Post, error) {
	var post blog.Post
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", postsPath, id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *PostClient) ByStatus(ctx context.Context, status blog.PostStatus) ([]blog.Post, error) {
	var posts []blog.Post
	if err := c.api.do(ctx, http.MethodGet, fmt.Sprintf("%s/status/%s", postsPath, status), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *PostClient) Published(ctx context.Context) ([]blog.Post, error) {
	var posts []blog.Post
	if err := c.api.do(ctx, http.MethodGet, postsPath+"/publishedPosts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *PostClient) NotPublished(ctx context.Context) ([]blog.Post, error) {
	var posts []blog.Post
	if err := c.api.do(ctx, http.MethodGet, postsPath+"/not-published", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update replaces the post with a full-object PUT.
func (c *PostClient) Update(ctx context.Context, id int, post blog.Post) (*blog.Post, error) {
	var updated blog.Post
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", postsPath, id), post, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Publish PUTs an empty JSON body to the per-post publish endpoint and
// returns the updated post.
func (c *PostClient) Publish(ctx context.Context, id int) (*blog.Post, error) {
	var published blog.Post
	if err := c.api.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d/publish", postsPath, id), struct{}{}, &published); err != nil {
		return nil, err
	}
	return &published, nil
}
