package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// DiscoverCmd implements the 'discover' command: a mapping audit listing
// every discovered file with its computed output location, writing nothing.
type DiscoverCmd struct{}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	builder, err := build.New(cfg, root.Config)
	if err != nil {
		return err
	}
	docs, assets, err := builder.ScanContent()
	if err != nil {
		return err
	}
	return renderMappings(os.Stdout, site.NewMapper(cfg.HomeMD), docs, assets)
}

func renderMappings(out io.Writer, mapper *site.Mapper, docs, assets []content.File) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tSOURCE\tOUTPUT")
	for _, f := range docs {
		fmt.Fprintf(w, "doc\t%s\t%s\n", f.Rel, mapper.OutputPath(f.Rel))
	}
	for _, f := range assets {
		fmt.Fprintf(w, "asset\t%s\t%s\n", f.Rel, mapper.AssetPath(f.Rel))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d documents, %d assets\n", len(docs), len(assets))
	return err
}
