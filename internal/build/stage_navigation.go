package build

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// stageNavigation resolves the declared navigation exactly once. The result
// is shared read-only by every page render.
func stageNavigation(ctx context.Context, st *State) error {
	nb := site.NewNavBuilder(st.ContentRoot, st.Mapper)
	entries, err := nb.Build(st.Config.NavSpecs())
	if err != nil {
		return newFatalStageError(StageNavigation, errors.NavError(err))
	}
	st.Nav = entries
	st.Report.NavEntries = len(entries)
	slog.Info("Navigation resolved", slog.Int("entries", len(entries)))
	return nil
}
