package layouts

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Auth centers its children on the page, with an optional title above them.
func Auth(title string, children ...cmp.Node) cmp.Node {
	return g.Div(g.Class("auth-shell"),
		g.Div(g.Class("auth-panel"),
			cmp.If(title != "", g.H2(g.Class("auth-title"), cmp.Text(title))),
			cmp.Group(children),
		),
	)
}
