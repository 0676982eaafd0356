package build

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/frontmatter"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/render"
	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/theme"
)

// renderPage runs one document through the full render pipeline: split
// frontmatter, render markdown, sanitize, rewrite references onto the
// output layout, wrap in the page template, and write into staging.
func renderPage(st *State, doc content.File) error {
	raw, err := doc.Load()
	if err != nil {
		return errors.RenderError(doc.Rel, err)
	}

	fm, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return errors.Wrap(err, errors.CategoryContent, errors.SeverityFatal,
			"malformed frontmatter in "+doc.Rel).WithContext("file", doc.Rel)
	}
	meta, err := frontmatter.Parse(fm)
	if err != nil {
		return errors.Wrap(err, errors.CategoryContent, errors.SeverityFatal,
			"invalid frontmatter in "+doc.Rel).WithContext("file", doc.Rel)
	}

	rendered, err := st.Renderer.Render(body)
	if err != nil {
		return errors.RenderError(doc.Rel, err)
	}
	clean := st.Sanitizer.SanitizeBytes(rendered)
	rewritten, err := render.RewriteReferences(clean, func(ref string) string {
		return st.Resolver.Rewrite(ref, doc.Rel)
	})
	if err != nil {
		return errors.RenderError(doc.Rel, err)
	}

	outPath := st.Mapper.OutputPath(doc.Rel)

	var buf bytes.Buffer
	if err := st.Theme.RenderPage(&buf, pageData(st, doc, meta, body, outPath, rewritten)); err != nil {
		return errors.RenderError(doc.Rel, err)
	}

	dest := filepath.Join(st.StageDir, filepath.FromSlash(outPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.RenderError(doc.Rel, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return errors.RenderError(doc.Rel, err)
	}

	slog.Debug("Rendered page", logfields.File(doc.Rel), logfields.Path(outPath))
	return nil
}

// pageData assembles the template input for one document. Title falls back
// from frontmatter to the first heading; an untitled page shows the site
// title alone. The template prefers the page description over the site
// description.
func pageData(st *State, doc content.File, meta frontmatter.Meta, body []byte, outPath string, rendered []byte) theme.Page {
	title := meta.Title
	if title == "" {
		title = site.FirstHeading(body)
	}

	nav := make([]theme.NavLink, len(st.Nav))
	for i, e := range st.Nav {
		nav[i] = theme.NavLink{
			Title:    e.Title,
			Href:     site.EntryHref(e, outPath),
			External: e.External,
		}
	}

	editHref := ""
	if st.Config.EditLinksEnabled() && st.Git != nil {
		editHref = st.Git.EditURL(st.Git.RelPath(doc.AbsPath))
	}

	return theme.Page{
		SiteTitle:       st.Config.SiteTitle,
		SiteDescription: st.Config.SiteDescription,
		Title:           title,
		Description:     meta.Description,
		HomeHref:        site.HomeHref(outPath),
		Nav:             nav,
		StylesheetHref:  site.RelativeTo(outPath, path.Join("assets", st.Theme.StylesheetName())),
		EditHref:        editHref,
		Body:            template.HTML(rendered),
	}
}
