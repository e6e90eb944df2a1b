package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Field describes one labelled form input.
type Field struct {
	Name         string
	Label        string
	Type         string
	Value        string
	Placeholder  string
	Error        string
	AutoComplete string
}

// Input renders a label, the input and its inline error.
func Input(f Field) cmp.Node {
	errID := f.Name + "-error"
	return g.Div(g.Class("field"),
		g.Label(g.For(f.Name), cmp.Text(f.Label)),
		g.Input(
			g.ID(f.Name),
			g.Name(f.Name),
			g.Type(f.Type),
			cmp.If(f.Value != "", g.Value(f.Value)),
			cmp.If(f.Placeholder != "", g.Placeholder(f.Placeholder)),
			cmp.If(f.AutoComplete != "", g.AutoComplete(f.AutoComplete)),
			cmp.If(f.Error != "", cmp.Group([]cmp.Node{
				g.Class("input-invalid"),
				g.Aria("invalid", "true"),
				g.Aria("describedby", errID),
			})),
		),
		cmp.If(f.Error != "", g.P(g.ID(errID), g.Class("field-error"), cmp.Text(f.Error))),
	)
}

// SubmitButton renders the submit control, disabled with the busy label
// while a submission is pending.
func SubmitButton(label, busyLabel string, busy bool) cmp.Node {
	text := label
	if busy {
		text = busyLabel
	}
	return g.Button(
		g.Type("submit"),
		g.Class("button"),
		cmp.Attr("data-busy-label", busyLabel),
		cmp.If(busy, g.Disabled()),
		cmp.Text(text),
	)
}
