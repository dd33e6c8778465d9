package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestFormInput(t *testing.T) {
	t.Run("no error line without an error", func(t *testing.T) {
		out := render(t, FormInput(InputProps{Label: "Email", Name: "email", Value: "a@b.co"}))
		assert.Contains(t, out, `<label for="email"`)
		assert.Contains(t, out, `type="text"`)
		assert.Contains(t, out, `value="a@b.co"`)
		assert.NotContains(t, out, "text-red-600")
	})

	t.Run("error line and red border with an error", func(t *testing.T) {
		out := render(t, FormInput(InputProps{Label: "CIN", Name: "CIN", Error: "Invalid CIN format"}))
		assert.Contains(t, out, `<p class="mt-1 text-sm text-red-600">Invalid CIN format</p>`)
		assert.Contains(t, out, "border-red-300")
	})

	t.Run("password values are never echoed", func(t *testing.T) {
		out := render(t, FormInput(InputProps{Label: "Password", Name: "password", Type: "password", Value: "hunter22"}))
		assert.NotContains(t, out, "hunter22")
	})

	t.Run("icon is rendered when given", func(t *testing.T) {
		out := render(t, FormInput(InputProps{Label: "Password", Name: "password", Icon: cmp.Text("🔒")}))
		assert.Contains(t, out, "🔒")
	})
}

func TestSelectMarksCurrentValue(t *testing.T) {
	out := render(t, Select("Type", "account_type", "savings", "", []SelectOption{
		{Value: "checking", Label: "Checking"},
		{Value: "savings", Label: "Savings"},
	}))
	assert.Contains(t, out, `<option value="savings" selected>Savings</option>`)
	assert.Contains(t, out, `<option value="checking">Checking</option>`)
}
