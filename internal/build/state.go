package build

import (
	"sync/atomic"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/gitmeta"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
	"git.home.luguber.info/inful/mdsite/internal/render"
	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/theme"
)

// State carries mutable build state across stages. Stages populate it in
// order: discovery fills the file lists, navigation fills Nav, rendering and
// asset copying consume them. Nav is read-only once built; page rendering
// runs in parallel against it.
type State struct {
	Config      *config.Config
	ContentRoot string
	OutputRoot  string
	StageDir    string

	Docs   []content.File
	Assets []content.File

	Mapper   *site.Mapper
	Resolver *site.Resolver
	Nav      []site.NavEntry

	Theme     *theme.Theme
	Renderer  render.Renderer
	Sanitizer render.Sanitizer

	Git    *gitmeta.Info
	Report *Report

	builder  *Builder
	recorder metrics.Recorder
	pages    atomic.Int64
	assets   atomic.Int64
}

// pageRendered counts one written page; safe under parallel rendering.
func (st *State) pageRendered() { st.pages.Add(1) }

func (st *State) assetCopied() { st.assets.Add(1) }
