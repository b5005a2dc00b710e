package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

// GenericMessage is the user-facing text shown for any backend failure. The
// original cause stays wrapped inside the APIError and in the logs.
const GenericMessage = "Something bad happened; please try again later."

// identity header names expected by the backend services.
const (
	headerUser = "user"
	headerRole = "role"
)

// IdentitySource yields the identity snapshot attached to outbound calls.
// Clients never cache it; every call reads the value current at call time.
type IdentitySource interface {
	Current() *blog.Identity
}

// APIError is the single error type surfaced by all resource clients, for
// reads and writes alike. Status is zero when the request never reached the
// backend.
type APIError struct {
	Status int
	Err    error
}

func (e *APIError) Error() string {
	return GenericMessage
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// apiClient is the shared transport under the three resource clients.
type apiClient struct {
	baseURL  string
	http     *http.Client
	identity IdentitySource
	log      *slog.Logger
}

func newAPIClient(baseURL string, httpClient *http.Client, identity IdentitySource, log *slog.Logger) apiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return apiClient{
		baseURL:  baseURL,
		http:     httpClient,
		identity: identity,
		log:      log,
	}
}

// do performs one JSON round trip. A nil body sends no payload; a non-nil
// out receives the decoded response. Every failure is logged with its
// original cause and mapped to *APIError.
func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return c.fail(method, path, 0, fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(method, path, 0, fmt.Errorf("build request: %w", err))
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if identity := c.identity.Current(); identity != nil {
		req.Header.Set(headerUser, identity.Username)
		req.Header.Set(headerRole, string(identity.Role))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(method, path, 0, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return c.fail(method, path, resp.StatusCode,
			fmt.Errorf("backend returned %s: %s", resp.Status, detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return c.fail(method, path, resp.StatusCode, fmt.Errorf("decode response body: %w", err))
		}
	}

	return nil
}

func (c *apiClient) fail(method, path string, status int, err error) error {
	c.log.Error("backend call failed",
		"method", method,
		"path", path,
		"status", status,
		"error", err,
	)
	return &APIError{Status: status, Err: err}
}
