package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/gitmeta"
)

// stagePrepare creates the staging directory skeleton and detects git
// metadata for edit links and build provenance. A content tree outside any
// repository is normal; only real detection failures are logged.
func stagePrepare(ctx context.Context, st *State) error {
	if err := os.MkdirAll(filepath.Join(st.StageDir, "assets"), 0o755); err != nil {
		return newFatalStageError(StagePrepare, err)
	}

	info, err := gitmeta.Detect(st.ContentRoot)
	if err != nil {
		slog.Debug("Git metadata unavailable", "error", err)
		return nil
	}
	if info != nil {
		st.Git = info
		st.Report.Commit = info.ShortCommit
		st.Report.Branch = info.Branch
		slog.Debug("Detected git metadata",
			slog.String("commit", info.ShortCommit),
			slog.String("branch", info.Branch),
			slog.Bool("dirty", info.Dirty))
	}
	return nil
}
