package build

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// stageRenderPages renders every discovered document in parallel. The first
// failure cancels the group and aborts the build; navigation and the
// resolver are read-only at this point, so pages share them freely.
func stageRenderPages(ctx context.Context, st *State) error {
	defer func() { st.Report.RenderedPages = int(st.pages.Load()) }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, doc := range st.Docs {
		doc := doc
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if err := renderPage(st, doc); err != nil {
				return err
			}
			st.pageRendered()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Rendered pages", slog.Int("count", int(st.pages.Load())))
	return nil
}
