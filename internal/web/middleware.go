package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/guard"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/session"
)

const (
	sessionCookie = "sid"

	ctxStore   = "web.session.store"
	ctxClients = "web.clients"
)

// withSession resolves the browser session from the cookie, creating a fresh
// session id when none is present, and stashes the session store plus the
// identity-bound resource clients on the request context.
func (h *Handler) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid := ""
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			sid = cookie.Value
		}

		if sid == "" {
			generated, err := session.NewSessionID()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session init failed")
			}
			sid = generated
			c.SetCookie(&http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
			})
		}

		store := h.sessions.Store(sid)
		c.Set(ctxStore, store)
		c.Set(ctxClients, h.clients(store))

		return next(c)
	}
}

// requireRole gates a route on the current identity. An empty role lets any
// authenticated user through; denial is a redirect, not an error.
func (h *Handler) requireRole(role blog.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := guard.CheckAccess(h.store(c).Current(), role)
			if !decision.Allowed {
				return c.Redirect(http.StatusFound, decision.RedirectTo)
			}
			return next(c)
		}
	}
}

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.Request().RemoteAddr,
		)
		return err
	}
}

func (h *Handler) store(c echo.Context) *session.Store {
	return c.Get(ctxStore).(*session.Store)
}

func (h *Handler) clientsFor(c echo.Context) Clients {
	return c.Get(ctxClients).(Clients)
}
