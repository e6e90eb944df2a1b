package pages

import (
	"net/url"

	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/nfrund/goby-auth/web/src/templates/components"
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	ResetPasswordPath       = "/reset-password"
	ResetPasswordStatusPath = "/reset-password/status"
	ResetPasswordCardID     = "reset-password-card"
	ResetPasswordTitle      = "Set a New Password"
)

const passwordPlaceholder = "••••••••"

// ResetPassword is the full confirmation page.
func ResetPassword(flowID string, st flow.ConfirmState, loginPath string) cmp.Node {
	return layouts.Auth(ResetPasswordTitle, ResetPasswordCard(flowID, st, loginPath))
}

// ResetPasswordCard is the part of the page swapped by htmx on submit.
// Password values are never rendered back.
func ResetPasswordCard(flowID string, st flow.ConfirmState, loginPath string) cmp.Node {
	if st.Status == flow.StatusSuccess || st.Status == flow.StatusNavigated {
		return resetComplete(flowID, st, loginPath)
	}

	return g.Div(g.ID(ResetPasswordCardID), g.Class("card"),
		cardHeader("Create New Password", "Please enter your new password below. Make sure it's strong and memorable."),
		messageBanner(st.Message),
		cmp.If(st.TokenRejected(), g.P(g.Class("card-lead"),
			g.A(g.Href(ForgotPasswordPath), cmp.Text("Request a new reset link")),
		)),
		g.FormEl(
			g.Method("post"),
			g.Action(ResetPasswordPath),
			cmp.Attr("novalidate"),
			hx.Post(ResetPasswordPath),
			hx.Target("#"+ResetPasswordCardID),
			hx.Swap("outerHTML"),
			cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
			g.Input(g.Type("hidden"), g.Name(FlowField), g.Value(flowID)),
			components.Input(components.Field{
				Name:         validation.FieldPassword,
				Label:        "New Password",
				Type:         "password",
				Placeholder:  passwordPlaceholder,
				Error:        st.FieldError(validation.FieldPassword),
				AutoComplete: "new-password",
			}),
			components.Input(components.Field{
				Name:         validation.FieldConfirmPassword,
				Label:        "Confirm New Password",
				Type:         "password",
				Placeholder:  passwordPlaceholder,
				Error:        st.FieldError(validation.FieldConfirmPassword),
				AutoComplete: "new-password",
			}),
			components.SubmitButton("Reset Password", "Resetting...", st.Busy()),
		),
		backToLogin(loginPath),
	)
}

// resetComplete shows the success banner and polls until the server side
// navigation timer has fired.
func resetComplete(flowID string, st flow.ConfirmState, loginPath string) cmp.Node {
	return g.Div(g.ID(ResetPasswordCardID), g.Class("card"),
		cardHeader("Create New Password", "Your password has been updated."),
		messageBanner(st.Message),
		g.Div(
			g.Class("redirect-notice"),
			hx.Get(ResetPasswordStatusPath+"?"+url.Values{FlowField: {flowID}}.Encode()),
			hx.Trigger("every 1s"),
			hx.Swap("none"),
			cmp.Text("Redirecting to login... "),
			g.A(g.Href(loginPath), cmp.Text("Continue now")),
		),
	)
}
