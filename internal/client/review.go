package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

const reviewPath = "/api/review"

// ReviewClient wraps the review service REST API. Approve and reject share
// one endpoint, distinguished only by the approved flag.
type ReviewClient struct {
	api apiClient
}

func NewReviewClient(baseURL string, httpClient *http.Client, identity IdentitySource, log *slog.Logger) *ReviewClient {
	return &ReviewClient{
		api: newAPIClient(baseURL, httpClient, identity, log),
	}
}

type reviewRequest struct {
	Editor        string `json:"editor"`
	Approved      bool   `json:"approved"`
	ReviewComment string `json:"reviewComment"`
}

func (c *ReviewClient) Submit(ctx context.Context, postID int, editor string, approved bool, reviewComment string) error {
	req := reviewRequest{
		Editor:        editor,
		Approved:      approved,
		ReviewComment: reviewComment,
	}
	return c.api.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d", reviewPath, postID), req, nil)
}
