package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/nfrund/goby-auth/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	g "maragu.dev/gomponents/html"
)

// HTMXSource is the htmx build loaded by every page.
const HTMXSource = "https://unpkg.com/htmx.org@2.0.3"

// Base renders the HTML document around content, with any flash banners
// above it.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		banners := make([]cmp.Node, 0, len(flashes.Messages))
		for _, m := range flashes.Messages {
			banners = append(banners, view.AdaptTemplToGomponentContext(ctx, components.Alert(m.Kind, m.Text)))
		}

		doc := c.HTML5(c.HTML5Props{
			Title:    CalculateTitle(title),
			Language: "en",
			Head: []cmp.Node{
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src(HTMXSource), g.Defer()),
			},
			Body: []cmp.Node{
				g.Class("page"),
				g.Header(g.Class("page-header"), g.A(g.Href("/"), cmp.Text(AppName))),
				cmp.If(len(banners) > 0, g.Div(g.Class("flashes"), g.Role("status"), cmp.Group(banners))),
				g.Main(view.AdaptTemplToGomponentContext(ctx, content)),
			},
		})
		return doc.Render(w)
	})
}
