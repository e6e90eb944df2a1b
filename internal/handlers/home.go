package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/goby-auth/internal/rendering"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	"github.com/nfrund/goby-auth/web/src/templates/pages"
)

// HomeHandler serves the pages that are not part of a flow.
type HomeHandler struct {
	renderer  rendering.Renderer
	loginPath string
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer rendering.Renderer, loginPath string) *HomeHandler {
	return &HomeHandler{renderer: renderer, loginPath: loginPath}
}

// HomeGet sends visitors to the login page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, h.loginPath)
}

// LoginGet renders the login placeholder.
func (h *HomeHandler) LoginGet(c echo.Context) error {
	page := layouts.Base("Sign In", view.GetFlashData(c), view.AdaptGomponentToTempl(pages.Login()))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// NotFound renders the not-found page with a 404 status.
func (h *HomeHandler) NotFound(c echo.Context) error {
	page := layouts.Base("Page Not Found", view.FlashData{}, view.AdaptGomponentToTempl(pages.NotFound(h.loginPath)))
	return h.renderer.RenderPage(c, http.StatusNotFound, page)
}

// Health reports liveness.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
