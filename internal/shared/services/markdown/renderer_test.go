package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RenderHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderHTML("Kitchen sink **leaking** badly")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>leaking</strong>")
}

func TestRenderer_RenderHTML_StripsScripts(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderHTML("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
}
