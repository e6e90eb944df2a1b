package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// gomponentComponent lets a gomponents.Node be rendered where a templ.Component
// is expected, e.g. page content inside the Base layout.
type gomponentComponent struct {
	node gomponents.Node
}

func (a gomponentComponent) Render(_ context.Context, w io.Writer) error {
	if a.node == nil {
		return nil
	}
	return a.node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents.Node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return gomponentComponent{node: node}
}

// templNode lets a templ.Component be placed inside a gomponents tree.
type templNode struct {
	ctx       context.Context
	component templ.Component
}

func (a templNode) Render(w io.Writer) error {
	return a.component.Render(a.ctx, w)
}

// AdaptTemplToGomponent converts a templ.Component into a gomponents.Node.
// gomponents does not pass a context while rendering, so the component is
// rendered with context.Background().
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return AdaptTemplToGomponentContext(context.Background(), component)
}

// AdaptTemplToGomponentContext is AdaptTemplToGomponent with an explicit
// render context, usually the request context.
func AdaptTemplToGomponentContext(ctx context.Context, component templ.Component) gomponents.Node {
	return templNode{ctx: ctx, component: component}
}
