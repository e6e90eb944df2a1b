package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/goby-auth/internal/domain"
	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/middleware"
	"github.com/nfrund/goby-auth/internal/rendering"
	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	"github.com/nfrund/goby-auth/web/src/templates/pages"
	cmp "maragu.dev/gomponents"
)

// MsgPageExpired is flashed when a form is posted for a flow instance that
// no longer exists.
const MsgPageExpired = "This page has expired. Please try again."

const (
	headerHXRequest  = "HX-Request"
	headerHXRedirect = "HX-Redirect"

	// statusStopPolling tells htmx to stop an "every" trigger.
	statusStopPolling = 286
)

// AuthHandler serves the forgot-password and reset-password pages. Each GET
// starts a flow instance; the POSTs are submit attempts against it.
type AuthHandler struct {
	rules    *validation.Rules
	accounts domain.AccountService
	requests *flow.Registry[*flow.RequestFlow]
	confirms *flow.Registry[*flow.ConfirmFlow]
	renderer  rendering.Renderer
	loginPath string
	flowOpts  []flow.Option
}

// NewAuthHandler creates a new AuthHandler. loginPath is linked from the
// pages and is where a completed reset navigates to. opts are applied to
// every flow instance the handler creates.
func NewAuthHandler(
	rules *validation.Rules,
	accounts domain.AccountService,
	requests *flow.Registry[*flow.RequestFlow],
	confirms *flow.Registry[*flow.ConfirmFlow],
	renderer rendering.Renderer,
	loginPath string,
	opts ...flow.Option,
) *AuthHandler {
	return &AuthHandler{
		rules:     rules,
		accounts:  accounts,
		requests:  requests,
		confirms:  confirms,
		renderer:  renderer,
		loginPath: loginPath,
		flowOpts:  append([]flow.Option{flow.WithLoginPath(loginPath)}, opts...),
	}
}

func (h *AuthHandler) options(logger *slog.Logger, extra ...flow.Option) []flow.Option {
	opts := append([]flow.Option{flow.WithLogger(logger)}, h.flowOpts...)
	return append(opts, extra...)
}

// ForgotPasswordGet renders the request page (GET /forgot-password).
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	f := flow.NewRequestFlow(h.rules, h.accounts, h.options(logger)...)
	id := h.requests.Add(f)

	return h.page(c, http.StatusOK, pages.ForgotPasswordTitle, pages.ForgotPassword(id, f.State(), h.loginPath))
}

// ForgotPasswordPost handles one submit attempt (POST /forgot-password).
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	id := c.FormValue(pages.FlowField)

	f, ok := h.requests.Get(id)
	if !ok {
		return h.expired(c, pages.ForgotPasswordPath)
	}

	in := validation.EmailRequestInput{Email: c.FormValue(validation.FieldEmail)}
	st, err := f.Submit(c.Request().Context(), in)
	if errors.Is(err, flow.ErrFlowClosed) {
		h.requests.Remove(id)
		return h.expired(c, pages.ForgotPasswordPath)
	}
	status := submitStatus(logger, err)

	if isHTMX(c) {
		return h.renderer.RenderPage(c, status, pages.ForgotPasswordCard(id, st, h.loginPath))
	}
	return h.page(c, status, pages.ForgotPasswordTitle, pages.ForgotPassword(id, st, h.loginPath))
}

// ResetPasswordGet renders the confirmation page (GET /reset-password?token=...).
// The token is read here once and kept on the flow instance.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	token := c.QueryParam("token")

	nav := flow.NavigatorFunc(func(path string) {
		logger.Info("Reset flow navigated", "to", path)
	})
	f := flow.NewConfirmFlow(token, h.rules, h.accounts, h.options(logger, flow.WithNavigator(nav))...)
	id := h.confirms.Add(f)

	return h.page(c, http.StatusOK, pages.ResetPasswordTitle, pages.ResetPassword(id, f.State(), h.loginPath))
}

// ResetPasswordPost handles one submit attempt (POST /reset-password).
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())
	id := c.FormValue(pages.FlowField)

	f, ok := h.confirms.Get(id)
	if !ok {
		return h.expired(c, pages.ResetPasswordPath)
	}

	in := validation.PasswordResetInput{
		Password:        c.FormValue(validation.FieldPassword),
		ConfirmPassword: c.FormValue(validation.FieldConfirmPassword),
	}
	st, err := f.Submit(c.Request().Context(), in)
	if errors.Is(err, flow.ErrFlowClosed) {
		h.confirms.Remove(id)
		if st.Redirect != "" {
			// Already navigated away; finish the trip instead of flashing.
			return h.redirect(c, st.Redirect)
		}
		return h.expired(c, pages.ResetPasswordPath)
	}
	status := submitStatus(logger, err)

	if isHTMX(c) {
		return h.renderer.RenderPage(c, status, pages.ResetPasswordCard(id, st, h.loginPath))
	}
	return h.page(c, status, pages.ResetPasswordTitle, pages.ResetPassword(id, st, h.loginPath))
}

// ResetPasswordStatus is polled by the success card
// (GET /reset-password/status?flow=...). It answers 204 while the redirect is
// pending and tells htmx to navigate once it has fired.
func (h *AuthHandler) ResetPasswordStatus(c echo.Context) error {
	id := c.QueryParam(pages.FlowField)
	f, ok := h.confirms.Get(id)
	if !ok {
		return c.NoContent(statusStopPolling)
	}

	st := f.State()
	if st.Status != flow.StatusNavigated {
		return c.NoContent(http.StatusNoContent)
	}
	h.confirms.Remove(id)
	c.Response().Header().Set(headerHXRedirect, st.Redirect)
	return c.NoContent(http.StatusOK)
}

// submitStatus maps a submit error to the response status. Only a rejected
// double submit is a client error; everything else renders the form as-is.
func submitStatus(logger *slog.Logger, err error) int {
	var fieldErrs validation.FieldErrors
	var svcErr *flow.ServiceError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, flow.ErrSubmitInFlight):
		logger.Warn("Submit rejected while another is pending")
		return http.StatusConflict
	case errors.As(err, &fieldErrs):
		logger.Debug("Submit failed validation", "errors", fieldErrs.Error())
		return http.StatusOK
	case errors.As(err, &svcErr):
		logger.Error("Account service call failed", "op", svcErr.Op, "error", svcErr.Err)
		return http.StatusOK
	default:
		logger.Info("Submit rejected", "error", err)
		return http.StatusOK
	}
}

// expired flashes MsgPageExpired and sends the user back to a fresh form.
func (h *AuthHandler) expired(c echo.Context, path string) error {
	view.SetFlashError(c, MsgPageExpired)
	return h.redirect(c, path)
}

// redirect issues a 303, or an HX-Redirect for htmx requests since htmx
// would otherwise swap the followed page into the card.
func (h *AuthHandler) redirect(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set(headerHXRedirect, path)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

func (h *AuthHandler) page(c echo.Context, status int, title string, content cmp.Node) error {
	flashData := view.GetFlashData(c)
	finalComponent := layouts.Base(title, flashData, view.AdaptGomponentToTempl(content))
	return h.renderer.RenderPage(c, status, finalComponent)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get(headerHXRequest) == "true"
}
