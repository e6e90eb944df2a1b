package pages

import (
	"github.com/nfrund/goby-auth/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// NotFound is rendered for unknown routes.
func NotFound(loginPath string) cmp.Node {
	return layouts.Auth("Page Not Found",
		g.Div(g.Class("card"),
			g.P(cmp.Text("The page you were looking for does not exist.")),
			g.P(g.A(g.Href(loginPath), cmp.Text("Go to login"))),
		),
	)
}

// ServerError is rendered when a handler fails unexpectedly.
func ServerError() cmp.Node {
	return layouts.Auth("Something Went Wrong",
		g.Div(g.Class("card"),
			g.P(cmp.Text("An unexpected error occurred. Please try again later.")),
		),
	)
}
