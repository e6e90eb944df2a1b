package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/goby-auth/internal/app"
	"github.com/nfrund/goby-auth/internal/config"
	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/handlers"
	appmiddleware "github.com/nfrund/goby-auth/internal/middleware"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Cfg  config.Provider
	Deps app.Dependencies

	homeHandler *handlers.HomeHandler
	authHandler *handlers.AuthHandler
}

// New creates a new Server instance with middleware and routes registered.
func New(deps app.Dependencies) *Server {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = deps.Rules

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger(deps.Logger))

	// Configure and use session middleware (flash messages).
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	s := &Server{
		E:           e,
		Cfg:         cfg,
		Deps:        deps,
		homeHandler: handlers.NewHomeHandler(deps.Renderer, cfg.GetLoginPath()),
		authHandler: handlers.NewAuthHandler(
			deps.Rules,
			deps.Accounts,
			deps.Requests,
			deps.Confirms,
			deps.Renderer,
			cfg.GetLoginPath(),
			flow.WithRedirectDelay(cfg.GetResetRedirectDelay()),
		),
	}
	s.setupErrorHandling()
	s.RegisterRoutes()
	return s
}

// HTTPErrorHandler renders not-found pages for unknown routes and logs
// anything that is not an *echo.HTTPError with a stack trace.
func (s *Server) HTTPErrorHandler(err error, c echo.Context) {
	handleError(err, c, s.homeHandler.NotFound)
}

func (s *Server) setupErrorHandling() {
	s.E.HTTPErrorHandler = s.HTTPErrorHandler
}

// setupErrorHandling installs the central error handler on e without a
// not-found page.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handleError(err, c, nil)
	}
}

func logger(c echo.Context) *slog.Logger {
	return appmiddleware.FromContext(c.Request().Context())
}
