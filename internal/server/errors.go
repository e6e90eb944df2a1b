package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	"github.com/nfrund/goby-auth/web/src/templates/pages"
)

func handleError(err error, c echo.Context, notFound echo.HandlerFunc) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound && notFound != nil && acceptsHTML(c) {
			if rerr := notFound(c); rerr != nil {
				logger(c).Error("Failed to render not found page", "error", rerr)
			}
			return
		}
		if he.Code >= http.StatusInternalServerError {
			logger(c).Error("HTTP error", "status", he.Code, "error", err)
		}
		_ = c.JSON(he.Code, map[string]any{"message": he.Message})
		return
	}

	logger(c).Error("Internal Server Error (Unhandled)",
		"error", err.Error(),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack_trace", string(debug.Stack()),
	)

	if !acceptsHTML(c) {
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	page := layouts.Base("Something Went Wrong", view.FlashData{}, view.AdaptGomponentToTempl(pages.ServerError()))
	if rerr := c.Render(http.StatusInternalServerError, "", page); rerr != nil {
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// acceptsHTML is false only for clients that explicitly ask for JSON.
func acceptsHTML(c echo.Context) bool {
	return c.Request().Header.Get(echo.HeaderAccept) != echo.MIMEApplicationJSON
}
