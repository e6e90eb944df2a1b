package pages

import (
	"github.com/nfrund/goby-auth/internal/flow"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/nfrund/goby-auth/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// FlowField is the hidden form field carrying the flow instance id.
const FlowField = "flow"

func messageBanner(msg *flow.Message) cmp.Node {
	if msg == nil {
		return nil
	}
	return view.AdaptTemplToGomponent(components.Alert(string(msg.Kind), msg.Text))
}

func cardHeader(title, description string) cmp.Node {
	return g.Div(g.Class("card-header"),
		g.H3(g.Class("card-title"), cmp.Text(title)),
		g.P(g.Class("card-lead"), cmp.Text(description)),
	)
}

func backToLogin(loginPath string) cmp.Node {
	return g.P(g.Class("card-footer"), g.A(g.Href(loginPath), cmp.Text("Back to Login")))
}
