package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/goby-auth/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func TestAdapters(t *testing.T) {
	t.Run("gomponent inside templ", func(t *testing.T) {
		var buf bytes.Buffer
		c := view.AdaptGomponentToTempl(g.P(cmp.Text("hi & bye")))
		require.NoError(t, c.Render(context.Background(), &buf))
		assert.Equal(t, "<p>hi &amp; bye</p>", buf.String())
	})

	t.Run("templ inside gomponent", func(t *testing.T) {
		inner := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<em>x</em>")
			return err
		})
		var buf bytes.Buffer
		require.NoError(t, g.Div(view.AdaptTemplToGomponent(inner)).Render(&buf))
		assert.Equal(t, "<div><em>x</em></div>", buf.String())
	})
}
