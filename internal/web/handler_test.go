package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/session"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend emulates the three REST services behind one mux.
func fakeBackend(t *testing.T) *http.ServeMux {
	t.Helper()

	posts := []blog.Post{
		{ID: 7, Title: "First post", Content: "Content 1", Author: "alice", CreatedAt: "2024-11-05T09:00:00", Status: blog.StatusPublished},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/posts/publishedPosts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(posts)
	})
	mux.HandleFunc("GET /api/posts/not-published", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]blog.Post{
			{ID: 8, Title: "Draft", Content: "wip", Author: "bob", Status: blog.StatusConcept},
		})
	})
	mux.HandleFunc("GET /api/posts/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(posts[0])
	})
	mux.HandleFunc("GET /api/comments/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]blog.Comment{
			{ID: 1, PostID: 7, Commenter: "bob", Text: "nice one", AddedAt: "2024-11-05T10:00:00"},
		})
	})
	return mux
}

type testApp struct {
	echo   *echo.Echo
	cookie *http.Cookie
}

func newTestApp(t *testing.T, backend http.Handler) *testApp {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	sessions := session.NewManager(session.NewMemoryStorage(), noOpLogger())
	clients := func(identity client.IdentitySource) Clients {
		return Clients{
			Posts:    client.NewPostClient(server.URL, server.Client(), identity, noOpLogger()),
			Comments: client.NewCommentClient(server.URL, server.Client(), identity, noOpLogger()),
			Reviews:  client.NewReviewClient(server.URL, server.Client(), identity, noOpLogger()),
		}
	}

	handler := NewHandler(sessions, clients, noOpLogger())
	e, err := handler.RegisterRoutes()
	require.NoError(t, err)

	return &testApp{echo: e}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookie {
			a.cookie = cookie
		}
	}
	return rec
}

func (a *testApp) login(t *testing.T, username string, role blog.Role) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"role":     {string(role)},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHomeRedirectsToPosts(t *testing.T) {
	app := newTestApp(t, fakeBackend(t))

	rec := app.do(t, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/posts", rec.Header().Get("Location"))
}

func TestRouteGuards(t *testing.T) {
	t.Run("anonymous is sent to login", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))

		rec := app.do(t, http.MethodGet, "/posts", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("user role is denied the moderation queue", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))
		app.login(t, "u", blog.RoleUser)

		rec := app.do(t, http.MethodGet, "/concepts", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("editor passes the moderation queue", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))
		app.login(t, "e", blog.RoleEditor)

		rec := app.do(t, http.MethodGet, "/concepts", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Draft")
	})

	t.Run("user role is denied add-post", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))
		app.login(t, "u", blog.RoleUser)

		rec := app.do(t, http.MethodGet, "/add-post", nil)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	t.Run("missing fields re-render the form", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))

		rec := app.do(t, http.MethodPost, "/login", url.Values{"username": {""}, "role": {"editor"}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "All fields are required.")
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))

		rec := app.do(t, http.MethodPost, "/login", url.Values{"username": {"u"}, "role": {"admin"}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("logout clears the session", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))
		app.login(t, "u", blog.RoleUser)

		rec := app.do(t, http.MethodPost, "/logout", nil)
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))

		rec = app.do(t, http.MethodGet, "/posts", nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestPostList(t *testing.T) {
	app := newTestApp(t, fakeBackend(t))
	app.login(t, "u", blog.RoleUser)

	t.Run("renders published posts", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/posts", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "First post")
	})

	t.Run("filters narrow the list", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/posts?content=no+such+content", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "First post")
		assert.Contains(t, rec.Body.String(), "No posts found.")
	})
}

func TestPostDetail(t *testing.T) {
	app := newTestApp(t, fakeBackend(t))
	app.login(t, "u", blog.RoleUser)

	rec := app.do(t, http.MethodGet, "/posts/7", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "First post")
	assert.Contains(t, body, "nice one")
}

func TestAddComment(t *testing.T) {
	t.Run("posts the comment and returns to the detail view", func(t *testing.T) {
		backend := fakeBackend(t)
		added := false
		backend.HandleFunc("POST /api/comments", func(w http.ResponseWriter, r *http.Request) {
			added = true
			_ = json.NewEncoder(w).Encode(blog.Comment{ID: 2, PostID: 7, Text: "hi"})
		})

		app := newTestApp(t, backend)
		app.login(t, "u", blog.RoleUser)

		rec := app.do(t, http.MethodPost, "/posts/7/comments", url.Values{"text": {"hi"}})

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/posts/7", rec.Header().Get("Location"))
		assert.True(t, added)
	})

	t.Run("whitespace-only text never reaches the backend", func(t *testing.T) {
		backend := fakeBackend(t)
		backend.HandleFunc("POST /api/comments", func(w http.ResponseWriter, r *http.Request) {
			t.Error("creation call must not happen")
		})

		app := newTestApp(t, backend)
		app.login(t, "u", blog.RoleUser)

		rec := app.do(t, http.MethodPost, "/posts/7/comments", url.Values{"text": {"   "}})

		assert.Equal(t, http.StatusFound, rec.Code)
	})
}

func TestReview(t *testing.T) {
	backend := fakeBackend(t)
	var review map[string]any
	backend.HandleFunc("POST /api/review/7", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&review))
		w.WriteHeader(http.StatusOK)
	})

	app := newTestApp(t, backend)
	app.login(t, "eve", blog.RoleEditor)

	rec := app.do(t, http.MethodPost, "/posts/7/review", url.Values{
		"verdict":       {"reject"},
		"reviewComment": {"needs work"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/concepts", rec.Header().Get("Location"))
	assert.Equal(t, false, review["approved"])
	assert.Equal(t, "eve", review["editor"])
	assert.Equal(t, "needs work", review["reviewComment"])
}

func TestAddPost(t *testing.T) {
	t.Run("creates and redirects to the new post", func(t *testing.T) {
		backend := fakeBackend(t)
		var created blog.Post
		backend.HandleFunc("POST /api/posts", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			created.ID = 42
			_ = json.NewEncoder(w).Encode(created)
		})

		app := newTestApp(t, backend)
		app.login(t, "eve", blog.RoleEditor)

		rec := app.do(t, http.MethodPost, "/add-post", url.Values{
			"title":     {"New post"},
			"content":   {"Body"},
			"isConcept": {"on"},
		})

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/posts/42", rec.Header().Get("Location"))
		assert.Equal(t, blog.StatusConcept, created.Status)
		assert.Equal(t, "eve", created.Author)
	})

	t.Run("invalid form re-renders with an error", func(t *testing.T) {
		app := newTestApp(t, fakeBackend(t))
		app.login(t, "eve", blog.RoleEditor)

		rec := app.do(t, http.MethodPost, "/add-post", url.Values{
			"title":   {"  "},
			"content": {"Body"},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Title and content are required.")
	})
}

func TestLeaveAddPost(t *testing.T) {
	tests := []struct {
		name         string
		form         url.Values
		wantLocation string
	}{
		{
			name: "dirty unsubmitted and prompt cancelled stays on the form",
			form: url.Values{
				"dirty": {"true"}, "submitted": {"false"}, "confirm": {"no"}, "to": {"/posts"},
			},
			wantLocation: "/add-post",
		},
		{
			name: "dirty unsubmitted and prompt confirmed leaves",
			form: url.Values{
				"dirty": {"true"}, "submitted": {"false"}, "confirm": {"yes"}, "to": {"/posts"},
			},
			wantLocation: "/posts",
		},
		{
			name: "dirty but submitted leaves without confirmation",
			form: url.Values{
				"dirty": {"true"}, "submitted": {"true"}, "confirm": {"no"}, "to": {"/posts"},
			},
			wantLocation: "/posts",
		},
		{
			name: "clean form leaves freely",
			form: url.Values{
				"dirty": {"false"}, "submitted": {"false"}, "confirm": {"no"},
			},
			wantLocation: "/posts",
		},
		{
			name: "external target falls back to the post list",
			form: url.Values{
				"dirty": {"false"}, "to": {"https://evil.example"},
			},
			wantLocation: "/posts",
		},
		{
			name: "protocol-relative target falls back to the post list",
			form: url.Values{
				"dirty": {"false"}, "to": {"//evil.example/phish"},
			},
			wantLocation: "/posts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, fakeBackend(t))
			app.login(t, "eve", blog.RoleEditor)

			rec := app.do(t, http.MethodPost, "/add-post/leave", tt.form)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestPublishConcept(t *testing.T) {
	backend := fakeBackend(t)
	published := false
	backend.HandleFunc("PUT /api/posts/8/publish", func(w http.ResponseWriter, r *http.Request) {
		published = true
		_ = json.NewEncoder(w).Encode(blog.Post{ID: 8, Status: blog.StatusPublished})
	})

	app := newTestApp(t, backend)
	app.login(t, "eve", blog.RoleEditor)

	rec := app.do(t, http.MethodPost, "/concepts/8/publish", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/concepts", rec.Header().Get("Location"))
	assert.True(t, published)
}

func TestEditConcept(t *testing.T) {
	backend := fakeBackend(t)
	backend.HandleFunc("GET /api/posts/8", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(blog.Post{ID: 8, Title: "Draft", Content: "wip", Author: "bob", Status: blog.StatusConcept})
	})
	var updated blog.Post
	backend.HandleFunc("PUT /api/posts/8", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		_ = json.NewEncoder(w).Encode(updated)
	})

	app := newTestApp(t, backend)
	app.login(t, "eve", blog.RoleEditor)

	rec := app.do(t, http.MethodPost, "/concepts/8/edit", url.Values{
		"title":   {"Better draft"},
		"content": {"expanded"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "Better draft", updated.Title)
	assert.Equal(t, "expanded", updated.Content)
	assert.Equal(t, "bob", updated.Author, "untouched fields survive the merge")
}

func TestIdentityHeadersFlowThrough(t *testing.T) {
	backend := fakeBackend(t)
	var user, role string
	captured := http.NewServeMux()
	captured.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		user = r.Header.Get("user")
		role = r.Header.Get("role")
		backend.ServeHTTP(w, r)
	})

	app := newTestApp(t, captured)
	app.login(t, "carol", blog.RoleUser)

	rec := app.do(t, http.MethodGet, "/posts", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "carol", user)
	assert.Equal(t, "user", role)
}
