package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Alert renders a flow or flash message banner. kind is "success" or "error";
// anything else renders as an informational banner.
func Alert(kind, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class, role := "alert alert-info", "status"
		switch kind {
		case "success":
			class = "alert alert-success"
		case "error":
			class, role = "alert alert-error", "alert"
		}
		_, err := fmt.Fprintf(w, `<div class="%s" role="%s">%s</div>`,
			templ.EscapeString(class), role, templ.EscapeString(text))
		return err
	})
}
