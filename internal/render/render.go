// Package render turns Markdown bodies into sanitized HTML fragments and
// rewrites the references they carry.
//
// The pipeline is small on purpose: Goldmark converts, bluemonday strips,
// and an HTML-level pass rewrites reference-carrying attributes. The first
// two steps sit behind the Renderer and Sanitizer interfaces so callers can
// substitute their own implementations.
package render

// Renderer converts a Markdown body (frontmatter already removed) into an
// HTML fragment.
type Renderer interface {
	Render(body []byte) ([]byte, error)
}

// Sanitizer reduces an HTML fragment to the allowed markup.
//
// bluemonday's *Policy satisfies this interface directly.
type Sanitizer interface {
	SanitizeBytes(b []byte) []byte
}
