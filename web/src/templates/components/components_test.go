package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlert(t *testing.T) {
	cases := []struct {
		kind, want string
	}{
		{"success", `<div class="alert alert-success" role="status">a &lt;b&gt;</div>`},
		{"error", `<div class="alert alert-error" role="alert">a &lt;b&gt;</div>`},
		{"", `<div class="alert alert-info" role="status">a &lt;b&gt;</div>`},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		require.NoError(t, Alert(tc.kind, "a <b>").Render(context.Background(), &buf))
		assert.Equal(t, tc.want, buf.String())
	}
}

func TestInput(t *testing.T) {
	t.Run("error marks the input invalid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Input(Field{Name: "email", Label: "Email", Type: "email", Value: "x", Error: "bad"}).Render(&buf))
		out := buf.String()
		assert.Contains(t, out, `value="x"`)
		assert.Contains(t, out, `aria-invalid="true"`)
		assert.Contains(t, out, `<p id="email-error" class="field-error">bad</p>`)
	})

	t.Run("clean input has no error markup", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Input(Field{Name: "password", Label: "New Password", Type: "password"}).Render(&buf))
		out := buf.String()
		assert.NotContains(t, out, "value=")
		assert.NotContains(t, out, "field-error")
		assert.NotContains(t, out, "placeholder")
	})

	t.Run("placeholder", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Input(Field{Name: "email", Label: "Email Address", Type: "email", Placeholder: "name@example.com"}).Render(&buf))
		assert.Contains(t, buf.String(), `placeholder="name@example.com"`)
	})
}

func TestSubmitButton(t *testing.T) {
	var idle, busy bytes.Buffer
	require.NoError(t, SubmitButton("Send Reset Link", "Sending...", false).Render(&idle))
	require.NoError(t, SubmitButton("Send Reset Link", "Sending...", true).Render(&busy))

	assert.Contains(t, idle.String(), ">Send Reset Link</button>")
	assert.NotContains(t, idle.String(), "disabled")
	assert.Contains(t, busy.String(), ">Sending...</button>")
	assert.Contains(t, busy.String(), "disabled")
}
