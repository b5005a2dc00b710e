package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pxlit-projects/project-IanNotermansPXL/config"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/client"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/session"
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/web"
)

type App struct {
	Logger *slog.Logger
	Echo   *echo.Echo
	Config *config.Config
}

// New wires the session manager, the identity-bound resource clients and the
// web handler into a runnable application.
func New(cfg *config.Config, storage session.Storage, logger *slog.Logger) (*App, error) {
	sessions := session.NewManager(storage, logger)

	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	clients := func(identity client.IdentitySource) web.Clients {
		return web.Clients{
			Posts:    client.NewPostClient(cfg.Backend.PostURL, httpClient, identity, logger),
			Comments: client.NewCommentClient(cfg.Backend.CommentURL, httpClient, identity, logger),
			Reviews:  client.NewReviewClient(cfg.Backend.ReviewURL, httpClient, identity, logger),
		}
	}

	handler := web.NewHandler(sessions, clients, logger)
	e, err := handler.RegisterRoutes()
	if err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &App{
		Logger: logger,
		Echo:   e,
		Config: cfg,
	}, nil
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, port)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
