package server

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/goby-auth/internal/handlers"
	"github.com/nfrund/goby-auth/internal/middleware"
	"github.com/nfrund/goby-auth/web"
	"github.com/nfrund/goby-auth/web/src/templates/pages"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.Cfg.GetRateLimitPerMinute())

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.GET(s.Cfg.GetLoginPath(), s.homeHandler.LoginGet)

	s.E.GET(pages.ForgotPasswordPath, s.authHandler.ForgotPasswordGet)
	s.E.POST(pages.ForgotPasswordPath, s.authHandler.ForgotPasswordPost, rateLimiter)

	s.E.GET(pages.ResetPasswordPath, s.authHandler.ResetPasswordGet)
	s.E.POST(pages.ResetPasswordPath, s.authHandler.ResetPasswordPost, rateLimiter)
	s.E.GET(pages.ResetPasswordStatusPath, s.authHandler.ResetPasswordStatus)

	s.E.GET("/health", handlers.Health)
	if s.Cfg.GetMetricsEnabled() && s.Deps.Metrics != nil {
		s.E.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Deps.Metrics, promhttp.HandlerOpts{})))
	}

	s.E.StaticFS("/static", web.Static())
}

// Route is one registered method and path.
type Route struct {
	Method string
	Path   string
}

// Routes lists the registered routes sorted by path then method.
func (s *Server) Routes() []Route {
	var out []Route
	for _, r := range s.E.Routes() {
		if r.Method == echo.RouteNotFound || r.Method == http.MethodHead {
			continue
		}
		out = append(out, Route{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}
