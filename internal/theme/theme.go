// Package theme renders documentation pages into the site's HTML layout.
//
// The layout and stylesheet are embedded in the binary. The stylesheet is
// published under a content-hashed name so pages can reference it with a
// long-lived cache.
package theme

import (
	"crypto/sha256"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"
)

//go:embed assets/page.html.tmpl
var pageTemplateSrc string

//go:embed assets/site.css
var stylesheetCSS []byte

// NavLink is a single entry in the page header navigation.
type NavLink struct {
	Title    string
	Href     string
	External bool
}

// Page carries everything the layout needs for one rendered page.
type Page struct {
	SiteTitle       string
	SiteDescription string
	Title           string
	Description     string
	HomeHref        string
	Nav             []NavLink
	StylesheetHref  string
	EditHref        string
	Body            template.HTML
}

// Theme holds the parsed layout and the stylesheet it references.
type Theme struct {
	page       *template.Template
	stylesheet []byte
	cssName    string
}

// New parses the embedded layout.
func New() (*Theme, error) {
	tpl, err := template.New("page").Option("missingkey=error").Parse(pageTemplateSrc)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Theme{
		page:       tpl,
		stylesheet: stylesheetCSS,
		cssName:    hashedName("site.css", stylesheetCSS),
	}, nil
}

// RenderPage writes the complete HTML document for data to w.
func (t *Theme) RenderPage(w io.Writer, data Page) error {
	return t.page.Execute(w, data)
}

// Stylesheet returns the stylesheet content.
func (t *Theme) Stylesheet() []byte {
	return t.stylesheet
}

// StylesheetName returns the content-hashed file name the stylesheet is
// published under, e.g. "site-4f9d2c01.css".
func (t *Theme) StylesheetName() string {
	return t.cssName
}

// hashedName derives a cache-busting file name from content.
func hashedName(name string, data []byte) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s-%x%s", base, sum[:4], ext)
}
