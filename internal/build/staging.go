package build

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Staging and backup directories are siblings of the output root, named by
// appending these suffixes.
const (
	StageSuffix = "_stage"
	PrevSuffix  = ".prev"
)

// beginStaging creates an isolated staging directory for atomic build output.
// The staging dir is a sibling of the output dir: <output>_stage, never
// inside it.
func (b *Builder) beginStaging() error {
	stage := b.outputRoot + StageSuffix
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("clear stale staging: %w", err)
	}
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return err
	}
	b.stageDir = stage
	slog.Debug("Initialized staging directory", "staging", stage, "final", b.outputRoot)
	return nil
}

// finalizeStaging promotes the staging directory to the final output
// location. Strategy:
//  1. Move existing output (if any) to <output>.prev, clearing an older
//     backup first.
//  2. Rename staging -> output.
//  3. Remove the backup asynchronously best-effort.
//
// A failed build never reaches this point, so the previous output stays
// intact until a complete replacement exists.
func (b *Builder) finalizeStaging() error {
	if b.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	if _, err := os.Stat(b.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := b.outputRoot + PrevSuffix
	if _, err := os.Stat(prev); err == nil {
		if err := os.RemoveAll(prev); err != nil {
			return fmt.Errorf("remove stale backup: %w", err)
		}
	}
	if _, err := os.Stat(b.outputRoot); err == nil {
		if err := os.Rename(b.outputRoot, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
	}
	if err := os.Rename(b.stageDir, b.outputRoot); err != nil {
		return fmt.Errorf("promote staging: %w", err)
	}
	b.stageDir = ""

	go func(p string) {
		if err := os.RemoveAll(p); err != nil {
			slog.Warn("Failed to remove previous backup", logfields.Path(p), "error", err)
		}
	}(prev)

	slog.Info("Promoted staging directory", "output", b.outputRoot)
	return nil
}

// abortStaging removes any existing staging directory after a failed build
// to avoid orphaned temp dirs.
func (b *Builder) abortStaging() {
	if b.stageDir == "" {
		return
	}
	dir := b.stageDir
	b.stageDir = "" // prevent double cleanup
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory after abort", "staging", dir, "error", err)
	} else {
		slog.Debug("Removed staging directory after abort", "staging", dir)
	}
}
