package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_RendersAllBuiltins(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	data := TemplateData{
		"Name":     "Alice",
		"JobTitle": "Landing page redesign",
		"Action":   "blocked",
	}

	for name := range builtinTemplates {
		body, err := tm.Render(name, data)
		require.NoError(t, err, "template %s", name)
		assert.Contains(t, body, "Alice", "template %s", name)
	}
}

func TestTemplateManager_EscapesHTML(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	body, err := tm.Render(TemplateWelcome, TemplateData{"Name": "<script>"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	t.Parallel()

	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("no_such_template", nil)
	assert.Error(t, err)
}
