package site

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// absoluteURLPattern matches references with an optional scheme followed by
// "//" (http://..., https://..., protocol-relative //host/...).
var absoluteURLPattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*:)?//`)

// IsExternal reports whether a reference can never be local: absolute URLs,
// mailto: and tel: schemes.
func IsExternal(ref string) bool {
	if absoluteURLPattern.MatchString(ref) {
		return true
	}
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}

// Ref is a decomposed in-document reference: path-part plus optional query
// and fragment, each carrying its own delimiter.
type Ref struct {
	Path     string
	Query    string
	Fragment string
}

// ParseRef splits a reference into path, query and fragment. The fragment
// starts at the first "#", the query at the first "?" of what precedes it,
// mirroring URL semantics.
func ParseRef(raw string) Ref {
	var r Ref
	rest := raw
	if i := strings.Index(rest, "#"); i >= 0 {
		r.Fragment = rest[i:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "?"); i >= 0 {
		r.Query = rest[i:]
		rest = rest[:i]
	}
	r.Path = rest
	return r
}

// String reassembles the reference: path, then query, then fragment.
func (r Ref) String() string {
	return r.Path + r.Query + r.Fragment
}

// Resolver rewrites in-document references onto the output layout.
type Resolver struct {
	mapper *Mapper
}

// NewResolver returns a Resolver sharing the given Mapper.
func NewResolver(mapper *Mapper) *Resolver {
	return &Resolver{mapper: mapper}
}

// Rewrite maps one href/src value found in the sanitized HTML of the
// document at sourceRel (root-relative) onto the output tree. It never
// fails; references it cannot interpret pass through unchanged.
//
// Authors write links as they are valid when browsing the raw Markdown
// tree, so the path-part resolves against the source document's directory,
// never against the output layout. Percent-escapes are decoded before
// resolution and not re-encoded on output; filenames with characters unsafe
// in unescaped form do not round-trip.
func (rv *Resolver) Rewrite(ref string, sourceRel string) string {
	if ref == "" || strings.HasPrefix(ref, "#") || IsExternal(ref) {
		return ref
	}

	parsed := ParseRef(ref)
	if parsed.Path == "" {
		return ref
	}

	pathPart := parsed.Path
	if decoded, err := url.PathUnescape(pathPart); err == nil {
		pathPart = decoded
	}

	// Resolving against the source directory may escape the content root;
	// that is legal and yields up-segments in the result.
	target := path.Join(path.Dir(path.Clean(sourceRel)), pathPart)
	fromDir := rv.mapper.OutputDir(sourceRel)

	if IsMarkdown(pathPart) {
		rel := relativePath(fromDir, rv.mapper.OutputPath(target))
		parsed.Path = trimIndexSuffix(rel)
	} else {
		parsed.Path = relativePath(fromDir, rv.mapper.AssetPath(target))
	}
	return parsed.String()
}

// RelativeTo computes the reference from the page whose output location is
// pageOut to an arbitrary output-tree location, without extensionless
// trimming. Used for stylesheet and asset links injected by the assembler.
func RelativeTo(pageOut, target string) string {
	return relativePath(path.Dir(pageOut), target)
}
