package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderBody(t *testing.T, body string) string {
	t.Helper()
	out, err := NewMarkdownRenderer().Render([]byte(body))
	require.NoError(t, err)
	return string(out)
}

func TestRenderTable(t *testing.T) {
	out := renderBody(t, "| A | B |\n|---|---|\n| 1 | 2 |\n")

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestRenderHardWraps(t *testing.T) {
	out := renderBody(t, "first line\nsecond line\n")

	assert.Contains(t, out, "<br")
}

func TestRenderStrikethrough(t *testing.T) {
	out := renderBody(t, "~~gone~~\n")

	assert.Contains(t, out, "<del>gone</del>")
}

func TestRenderAutoHeadingID(t *testing.T) {
	out := renderBody(t, "# Getting Started\n")

	assert.Contains(t, out, `<h1 id="getting-started">Getting Started</h1>`)
}

func TestRenderRawHTMLPassthrough(t *testing.T) {
	out := renderBody(t, "before\n\n<div data-x=\"1\">inline</div>\n\nafter\n")

	assert.Contains(t, out, `<div data-x="1">inline</div>`)
}

func TestRenderFencedCodeLanguageClass(t *testing.T) {
	out := renderBody(t, "```go\nfmt.Println(1 < 2)\n```\n")

	assert.Contains(t, out, `<pre><code class="language-go">`)
	assert.Contains(t, out, "fmt.Println(1 &lt; 2)")
	assert.NotContains(t, out, "1 < 2")
}

func TestRenderFencedCodeNoLanguage(t *testing.T) {
	out := renderBody(t, "```\nplain\n```\n")

	assert.Contains(t, out, "<pre><code>plain\n</code></pre>")
}

func TestRenderFencedCodeEscapesContent(t *testing.T) {
	out := renderBody(t, "```html\n<script>alert(1)</script>\n```\n")

	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestRenderFencedCodeEscapesLanguageTag(t *testing.T) {
	out := renderBody(t, "```c\"><script>\nx\n```\n")

	assert.NotContains(t, out, "<script>")
}
