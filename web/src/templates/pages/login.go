package pages

import (
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Login is a placeholder for the sign in page, which lives outside this app.
func Login() cmp.Node {
	return layouts.Auth("Sign In",
		g.Div(g.Class("card"),
			g.P(g.Class("card-lead"), cmp.Text("Sign in is handled by the account service.")),
			g.P(g.A(g.Href(ForgotPasswordPath), cmp.Text("Forgot your password?"))),
		),
	)
}
