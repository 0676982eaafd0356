// Package site implements the output-layout and reference-resolution core:
// mapping source Markdown paths to canonical output locations, rewriting
// in-document references for the generated tree, and resolving declarative
// navigation.
//
// All paths handled here are slash-separated and relative to the content
// root (source side) or the output root (output side). Both roots stay
// explicit caller concerns; nothing in this package touches globals.
package site

import (
	"path"
	"strings"
)

// markdownExtensions are the file extensions treated as renderable documents.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsMarkdown reports whether p names a Markdown document.
func IsMarkdown(p string) bool {
	return markdownExtensions[strings.ToLower(path.Ext(p))]
}

// StripMarkdownExt removes a recognized Markdown extension from the final
// element of p. Non-Markdown paths pass through unchanged.
func StripMarkdownExt(p string) string {
	if ext := path.Ext(p); markdownExtensions[strings.ToLower(ext)] {
		return p[:len(p)-len(ext)]
	}
	return p
}

// splitSegments breaks a cleaned slash path into its segments, dropping
// "." and empty elements.
func splitSegments(p string) []string {
	if p == "" || p == "." {
		return nil
	}
	parts := strings.Split(p, "/")
	segs := parts[:0]
	for _, s := range parts {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}

// relativePath computes the path from directory from to target to, both
// root-relative. Pure segment math: unlike filepath.Rel it tolerates targets
// that escape the root with up-segments.
func relativePath(from, to string) string {
	fromSeg := splitSegments(path.Clean(from))
	toSeg := splitSegments(path.Clean(to))

	common := 0
	for common < len(fromSeg) && common < len(toSeg) && fromSeg[common] == toSeg[common] {
		// Up-segments in the target never match real directories.
		if toSeg[common] == ".." {
			break
		}
		common++
	}

	segs := make([]string, 0, len(fromSeg)-common+len(toSeg)-common)
	for i := common; i < len(fromSeg); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, toSeg[common:]...)

	if len(segs) == 0 {
		return "."
	}
	return strings.Join(segs, "/")
}

// trimIndexSuffix strips a trailing "index.html" or "index" segment and a
// trailing ".html" extension from a relative path so links between pages stay
// extensionless. A fully emptied path becomes the current-directory marker.
func trimIndexSuffix(rel string) string {
	segs := splitSegments(rel)
	if n := len(segs); n > 0 {
		switch last := segs[n-1]; {
		case last == "index.html" || last == "index":
			segs = segs[:n-1]
		case strings.HasSuffix(last, ".html"):
			segs[n-1] = strings.TrimSuffix(last, ".html")
		}
	}
	if len(segs) == 0 {
		return "."
	}
	return strings.Join(segs, "/")
}
