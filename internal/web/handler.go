package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/guard"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/session"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/viewmodel"
)

// Clients bundles the three resource clients bound to one session's
// identity.
type Clients struct {
	Posts    *client.PostClient
	Comments *client.CommentClient
	Reviews  *client.ReviewClient
}

// ClientFactory builds the resource clients around an identity source.
type ClientFactory func(identity client.IdentitySource) Clients

// Handler is the delivery layer: it maps routes onto the view-models and
// renders their state as HTML.
type Handler struct {
	sessions *session.Manager
	clients  ClientFactory
	log      *slog.Logger
}

func NewHandler(sessions *session.Manager, clients ClientFactory, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		clients:  clients,
		log:      log,
	}
}

// RegisterRoutes builds the echo instance with every route of the
// application. Guarded routes follow the route table: any authenticated user
// for the post views, editor only for add-post and the moderation queue.
func (h *Handler) RegisterRoutes() (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(h.loggingMiddleware, h.withSession)

	e.GET("/", h.Home)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.POST("/logout", h.Logout)

	authed := h.requireRole("")
	editor := h.requireRole(blog.RoleEditor)

	e.GET("/posts", h.PostList, authed)
	e.GET("/posts/:id", h.PostDetail, authed)
	e.POST("/posts/:id/comments", h.AddComment, authed)
	e.POST("/posts/:id/review", h.Review, editor)
	e.POST("/comments/:id/edit", h.EditComment, authed)
	e.POST("/comments/:id/delete", h.DeleteComment, authed)

	e.GET("/add-post", h.AddPostForm, editor)
	e.POST("/add-post", h.AddPost, editor)
	e.POST("/add-post/leave", h.LeaveAddPost, editor)

	e.GET("/concepts", h.ConceptList, editor)
	e.POST("/concepts/:id/publish", h.PublishPost, editor)
	e.POST("/concepts/:id/edit", h.EditPost, editor)

	return e, nil
}

func (h *Handler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/posts")
}

func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{})
}

func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	role := blog.Role(c.FormValue("role"))

	if username == "" || (role != blog.RoleUser && role != blog.RoleEditor) {
		return c.Render(http.StatusBadRequest, "login.html", loginPage{
			Error: "All fields are required.",
		})
	}

	if err := h.store(c).Login(username, role); err != nil {
		h.log.Error("login failed", "username", username, "error", err)
		return c.Render(http.StatusInternalServerError, "login.html", loginPage{
			Error: "Login failed, please try again.",
		})
	}

	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.store(c).Logout(); err != nil {
		h.log.Error("logout failed", "error", err)
	}
	return c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) PostList(c echo.Context) error {
	list := viewmodel.NewPostList(h.clientsFor(c).Posts, h.log)
	list.Filters = filtersFromQuery(c)

	page := postListPage{
		User:    h.store(c).Current(),
		Filters: list.Filters,
	}

	if err := list.Load(c.Request().Context()); err != nil {
		page.Error = userMessage(err)
		return c.Render(http.StatusOK, "posts.html", page)
	}

	page.Posts = list.Posts()
	return c.Render(http.StatusOK, "posts.html", page)
}

func (h *Handler) PostDetail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}

	detail := h.detailFor(c)
	page := postDetailPage{User: h.store(c).Current()}

	if err := detail.Load(c.Request().Context(), id); err != nil {
		page.Error = userMessage(err)
		return c.Render(http.StatusOK, "post.html", page)
	}

	page.Post = detail.Post
	page.Comments = detail.Comments
	page.IsEditor = detail.IsEditor()
	return c.Render(http.StatusOK, "post.html", page)
}

// AddComment feeds the submitted text into the add-comment dialog flow. The
// flow itself drops whitespace-only input before any backend call.
func (h *Handler) AddComment(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}

	detail := h.detailFor(c)
	if err := detail.Load(c.Request().Context(), id); err != nil {
		return c.Redirect(http.StatusFound, postPath(id))
	}

	text := c.FormValue("text")
	dialog := viewmodel.DialogFunc[int, string](func(context.Context, int) (string, bool) {
		return text, true
	})

	if err := detail.AddComment(c.Request().Context(), dialog); err != nil {
		h.log.Error("add comment failed", "postID", id, "error", err)
	}
	return c.Redirect(http.StatusFound, postPath(id))
}

func (h *Handler) EditComment(c echo.Context) error {
	commentID, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}
	postID, err := strconv.Atoi(c.FormValue("postId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}

	detail := h.detailFor(c)
	if err := detail.Load(c.Request().Context(), postID); err != nil {
		return c.Redirect(http.StatusFound, postPath(postID))
	}

	var snapshot *blog.Comment
	for i := range detail.Comments {
		if detail.Comments[i].ID == commentID {
			snapshot = &detail.Comments[i]
			break
		}
	}
	if snapshot == nil {
		return c.Redirect(http.StatusFound, postPath(postID))
	}

	text := c.FormValue("text")
	dialog := viewmodel.DialogFunc[viewmodel.EditCommentData, string](
		func(context.Context, viewmodel.EditCommentData) (string, bool) {
			return text, true
		})

	err = detail.EditComment(c.Request().Context(), *snapshot, dialog)
	if err != nil {
		h.log.Error("edit comment failed", "commentID", commentID, "error", err)
	}
	return c.Redirect(http.StatusFound, postPath(postID))
}

func (h *Handler) DeleteComment(c echo.Context) error {
	commentID, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}
	postID, err := strconv.Atoi(c.FormValue("postId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/posts")
	}

	detail := h.detailFor(c)
	if err := detail.Load(c.Request().Context(), postID); err != nil {
		return c.Redirect(http.StatusFound, postPath(postID))
	}

	if err := detail.DeleteComment(c.Request().Context(), commentID); err != nil {
		h.log.Error("delete comment failed", "commentID", commentID, "error", err)
	}
	return c.Redirect(http.StatusFound, postPath(postID))
}

// Review handles both verdicts. A reject arrives with the collected review
// comment; the approve path submits with an empty one. The view-model
// navigates back to the moderation queue afterwards.
func (h *Handler) Review(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/concepts")
	}

	var target string
	nav := session.NavigatorFunc(func(path string) { target = path })

	clients := h.clientsFor(c)
	detail := viewmodel.NewPostDetail(
		clients.Posts, clients.Comments, clients.Reviews,
		h.store(c), nav, h.log,
	)
	if err := detail.Load(c.Request().Context(), id); err != nil {
		return c.Redirect(http.StatusFound, postPath(id))
	}

	approve := c.FormValue("verdict") == "approve"
	comment := c.FormValue("reviewComment")
	// an empty reject reason counts as a cancelled dialog
	rejectDialog := viewmodel.DialogFunc[int, string](func(context.Context, int) (string, bool) {
		if strings.TrimSpace(comment) == "" {
			return "", false
		}
		return comment, true
	})

	if err := detail.Review(c.Request().Context(), approve, rejectDialog); err != nil {
		h.log.Error("review failed", "postID", id, "error", err)
		return c.Redirect(http.StatusFound, postPath(id))
	}

	if target == "" {
		target = postPath(id)
	}
	return c.Redirect(http.StatusFound, target)
}

func (h *Handler) AddPostForm(c echo.Context) error {
	return c.Render(http.StatusOK, "add_post.html", addPostPage{
		User: h.store(c).Current(),
	})
}

func (h *Handler) AddPost(c echo.Context) error {
	form := viewmodel.NewAddPost(h.clientsFor(c).Posts, h.store(c), h.log)
	form.SetTitle(c.FormValue("title"))
	form.SetContent(c.FormValue("content"))
	form.SetIsConcept(c.FormValue("isConcept") == "on")

	page := addPostPage{
		User:      h.store(c).Current(),
		Title:     form.Title,
		Content:   form.Content,
		IsConcept: form.IsConcept,
	}

	if !form.Valid() {
		page.Error = "Title and content are required."
		return c.Render(http.StatusBadRequest, "add_post.html", page)
	}

	created, err := form.Submit(c.Request().Context())
	if err != nil {
		page.Error = userMessage(err)
		return c.Render(http.StatusOK, "add_post.html", page)
	}

	return c.Redirect(http.StatusFound, postPath(created.ID))
}

// LeaveAddPost runs the navigation-abort check. The browser posts the form
// state along with the answer to the confirmation prompt; a blocked
// navigation returns to the form.
func (h *Handler) LeaveAddPost(c echo.Context) error {
	form := guard.FormState{
		Dirty:     c.FormValue("dirty") == "true",
		Submitted: c.FormValue("submitted") == "true",
	}
	answer := c.FormValue("confirm")
	confirm := guard.ConfirmerFunc(func(string) bool { return answer == "yes" })

	if !guard.AllowLeave(form, confirm) {
		return c.Redirect(http.StatusFound, "/add-post")
	}

	// only same-origin paths; protocol-relative targets resolve externally
	target := c.FormValue("to")
	if target == "" || target[0] != '/' || strings.HasPrefix(target, "//") {
		target = "/posts"
	}
	return c.Redirect(http.StatusFound, target)
}

func (h *Handler) ConceptList(c echo.Context) error {
	list := viewmodel.NewConceptList(h.clientsFor(c).Posts, h.log)
	list.Filters = filtersFromQuery(c)

	page := conceptListPage{
		User:    h.store(c).Current(),
		Filters: list.Filters,
	}

	if err := list.Load(c.Request().Context()); err != nil {
		page.Error = userMessage(err)
		return c.Render(http.StatusOK, "concepts.html", page)
	}

	page.Posts = list.Posts()
	return c.Render(http.StatusOK, "concepts.html", page)
}

func (h *Handler) PublishPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/concepts")
	}

	list := viewmodel.NewConceptList(h.clientsFor(c).Posts, h.log)
	if err := list.Publish(c.Request().Context(), id); err != nil {
		h.log.Error("publish failed", "postID", id, "error", err)
	}
	return c.Redirect(http.StatusFound, "/concepts")
}

func (h *Handler) EditPost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.Redirect(http.StatusFound, "/concepts")
	}

	clients := h.clientsFor(c)
	post, err := clients.Posts.ByID(c.Request().Context(), id)
	if err != nil {
		return c.Redirect(http.StatusFound, "/concepts")
	}

	edit := viewmodel.PostEdit{
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
	}
	dialog := viewmodel.DialogFunc[blog.Post, viewmodel.PostEdit](
		func(context.Context, blog.Post) (viewmodel.PostEdit, bool) {
			return edit, true
		})

	list := viewmodel.NewConceptList(clients.Posts, h.log)
	if err := list.EditPost(c.Request().Context(), *post, dialog); err != nil {
		h.log.Error("edit post failed", "postID", id, "error", err)
	}
	return c.Redirect(http.StatusFound, "/concepts")
}

func (h *Handler) detailFor(c echo.Context) *viewmodel.PostDetail {
	clients := h.clientsFor(c)
	return viewmodel.NewPostDetail(
		clients.Posts, clients.Comments, clients.Reviews,
		h.store(c), nil, h.log,
	)
}

func filtersFromQuery(c echo.Context) blog.Filter {
	return blog.Filter{
		Content: c.QueryParam("content"),
		Author:  c.QueryParam("author"),
		Date:    c.QueryParam("date"),
	}
}

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func postPath(id int) string {
	return "/posts/" + strconv.Itoa(id)
}

// userMessage keeps the generic client message for backend failures and
// falls back to a neutral one for anything else.
func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "Something went wrong."
}
