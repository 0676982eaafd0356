package build

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// stageStylesheet writes the embedded stylesheet once under assets/, at the
// content-hashed name every page already references.
func stageStylesheet(ctx context.Context, st *State) error {
	name := st.Theme.StylesheetName()
	dest := filepath.Join(st.StageDir, "assets", name)
	if err := os.WriteFile(dest, st.Theme.Stylesheet(), 0o644); err != nil {
		return newFatalStageError(StageStylesheet, err)
	}
	slog.Debug("Wrote stylesheet", logfields.Path(path.Join("assets", name)))
	return nil
}
