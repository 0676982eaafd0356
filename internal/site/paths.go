package site

import (
	"path"
)

// Mapper computes canonical output locations for documents and assets. The
// mapping is a pure function of a document's root-relative path and the home
// document's root-relative path; it never depends on build order or on any
// other document.
type Mapper struct {
	home string
}

// NewMapper returns a Mapper for the site whose home document lives at
// homeRel (slash path relative to the content root).
func NewMapper(homeRel string) *Mapper {
	return &Mapper{home: path.Clean(homeRel)}
}

// Home returns the home document's root-relative path.
func (m *Mapper) Home() string { return m.home }

// IsHome reports whether rel names the home document.
func (m *Mapper) IsHome(rel string) bool { return path.Clean(rel) == m.home }

// OutputPath maps a root-relative Markdown path to its output location.
//
// The home document maps to index.html at the output root. Any other
// document maps to <dir>/<name>/index.html, except that index.* and README.*
// collapse to their directory's own index.html so directory URLs serve
// directly.
func (m *Mapper) OutputPath(rel string) string {
	rel = path.Clean(rel)
	if rel == m.home {
		return "index.html"
	}

	dir := path.Dir(rel)
	name := StripMarkdownExt(path.Base(rel))
	if name == "index" || name == "README" {
		return path.Join(dir, "index.html")
	}
	return path.Join(dir, name, "index.html")
}

// OutputDir returns the directory of a document's output location. Relative
// references in the rendered page resolve against this directory.
func (m *Mapper) OutputDir(rel string) string {
	return path.Dir(m.OutputPath(rel))
}

// AssetPath maps a root-relative non-Markdown path to its output location:
// the identity mapping, mirrored byte-for-byte.
func (m *Mapper) AssetPath(rel string) string {
	return path.Clean(rel)
}
