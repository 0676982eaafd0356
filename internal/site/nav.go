package site

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
)

var (
	// ErrNavTargetNotFound indicates a navigation entry names a Markdown file
	// that does not exist under the content root.
	ErrNavTargetNotFound = errors.New("navigation target not found")

	// ErrNavIndexNotFound indicates a directory navigation entry has neither
	// a README.md nor an index.md.
	ErrNavIndexNotFound = errors.New("navigation directory has no README.md or index.md")
)

// directoryIndexNames are probed in order when a navigation entry names a
// directory; first match wins.
var directoryIndexNames = []string{"README.md", "index.md"}

// firstHeadingPattern matches a level-1 ATX heading with up to three leading
// spaces, per the no-nesting rule of lightweight markup.
var firstHeadingPattern = regexp.MustCompile(`(?m)^ {0,3}#[ \t]+(.+)$`)

// FirstHeading returns the text of the first top-level heading in a Markdown
// body (frontmatter already stripped), or "" when the document has none.
func FirstHeading(body []byte) string {
	if m := firstHeadingPattern.FindSubmatch(body); m != nil {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}

// NavSpec is one declarative navigation entry: a Markdown path, a directory,
// or an external URL, with an optional display title.
type NavSpec struct {
	Key   string
	Title string
}

// NavEntry is a resolved navigation item, ordered as declared.
type NavEntry struct {
	Title    string
	External bool
	URL      string // external target, verbatim
	Source   string // root-relative source document for internal targets
	Output   string // output location for internal targets
}

// NavBuilder resolves declarative navigation against the content root. It is
// invoked exactly once per build; the resulting slice is read-only afterwards
// and shared by every page render.
type NavBuilder struct {
	root   string
	mapper *Mapper
}

// NewNavBuilder returns a NavBuilder reading documents under root.
func NewNavBuilder(root string, mapper *Mapper) *NavBuilder {
	return &NavBuilder{root: root, mapper: mapper}
}

// Build resolves every entry in declaration order. An external URL passes
// through; a Markdown key resolves to that document; any other key is a
// directory probed for README.md then index.md. A directory without either,
// or a Markdown key without a file, fails the build.
func (b *NavBuilder) Build(specs []NavSpec) ([]NavEntry, error) {
	entries := make([]NavEntry, 0, len(specs))
	for _, spec := range specs {
		if IsExternal(spec.Key) {
			title := spec.Title
			if title == "" {
				title = spec.Key
			}
			entries = append(entries, NavEntry{Title: title, External: true, URL: spec.Key})
			continue
		}

		rel := path.Clean(spec.Key)
		if !IsMarkdown(rel) {
			indexRel, err := b.resolveDirectoryIndex(rel)
			if err != nil {
				return nil, fmt.Errorf("nav entry %q: %w", spec.Key, err)
			}
			rel = indexRel
		}

		entry, err := b.resolveDocument(rel, spec.Title)
		if err != nil {
			return nil, fmt.Errorf("nav entry %q: %w", spec.Key, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// resolveDirectoryIndex probes a directory key for its index document.
func (b *NavBuilder) resolveDirectoryIndex(dir string) (string, error) {
	for _, name := range directoryIndexNames {
		rel := path.Join(dir, name)
		if _, err := os.Stat(filepath.Join(b.root, filepath.FromSlash(rel))); err == nil {
			return rel, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNavIndexNotFound, dir)
}

// resolveDocument reads a Markdown target and derives its display title:
// configured title, else first level-1 heading, else "Home" for the home
// document, else the filename without extension.
func (b *NavBuilder) resolveDocument(rel, configuredTitle string) (NavEntry, error) {
	content, err := os.ReadFile(filepath.Join(b.root, filepath.FromSlash(rel)))
	if err != nil {
		return NavEntry{}, fmt.Errorf("%w: %s: %w", ErrNavTargetNotFound, rel, err)
	}

	title := configuredTitle
	if title == "" {
		body := content
		// Malformed frontmatter surfaces when the document renders; title
		// derivation stays best effort.
		if _, b, _, err := frontmatter.Split(content); err == nil {
			body = b
		}
		title = FirstHeading(body)
	}
	if title == "" {
		if b.mapper.IsHome(rel) {
			title = "Home"
		} else {
			title = StripMarkdownExt(path.Base(rel))
		}
	}

	return NavEntry{
		Title:  title,
		Source: rel,
		Output: b.mapper.OutputPath(rel),
	}, nil
}

// EntryHref renders the reference to a resolved entry from the page whose
// output location is pageOut, applying the same extensionless normalization
// as in-document links.
func EntryHref(entry NavEntry, pageOut string) string {
	if entry.External {
		return entry.URL
	}
	rel := relativePath(path.Dir(pageOut), entry.Output)
	return trimIndexSuffix(rel)
}

// HomeHref renders the distinguished site-title link to the root index from
// the page whose output location is pageOut.
func HomeHref(pageOut string) string {
	rel := relativePath(path.Dir(pageOut), "index.html")
	return trimIndexSuffix(rel)
}
