package pages

import (
	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/validation"
	"github.com/nfrund/goby-auth/web/src/templates/components"
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	ForgotPasswordPath   = "/forgot-password"
	ForgotPasswordCardID = "forgot-password-card"
	ForgotPasswordTitle  = "Forgot Your Password?"
)

// ForgotPassword is the full request page.
func ForgotPassword(flowID string, st flow.RequestState, loginPath string) cmp.Node {
	return layouts.Auth(ForgotPasswordTitle, ForgotPasswordCard(flowID, st, loginPath))
}

// ForgotPasswordCard is the part of the page swapped by htmx on submit.
func ForgotPasswordCard(flowID string, st flow.RequestState, loginPath string) cmp.Node {
	return g.Div(g.ID(ForgotPasswordCardID), g.Class("card"),
		cardHeader("Reset Password", "Enter your email address below and we'll send you a link to reset your password."),
		messageBanner(st.Message),
		g.FormEl(
			g.Method("post"),
			g.Action(ForgotPasswordPath),
			cmp.Attr("novalidate"),
			hx.Post(ForgotPasswordPath),
			hx.Target("#"+ForgotPasswordCardID),
			hx.Swap("outerHTML"),
			cmp.Attr("hx-disabled-elt", "find button[type='submit']"),
			g.Input(g.Type("hidden"), g.Name(FlowField), g.Value(flowID)),
			components.Input(components.Field{
				Name:         validation.FieldEmail,
				Label:        "Email Address",
				Type:         "email",
				Value:        st.Values.Email,
				Placeholder:  "name@example.com",
				Error:        st.FieldError(validation.FieldEmail),
				AutoComplete: "email",
			}),
			components.SubmitButton("Send Reset Link", "Sending...", st.Busy()),
		),
		backToLogin(loginPath),
	)
}
