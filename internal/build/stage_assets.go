package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/content"
)

// stageCopyAssets mirrors every non-markdown file byte-for-byte to its
// identity location in the output tree.
func stageCopyAssets(ctx context.Context, st *State) error {
	defer func() { st.Report.CopiedAssets = int(st.assets.Load()) }()

	for _, asset := range st.Assets {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageCopyAssets, ctx.Err())
		default:
		}
		if err := copyAsset(st, asset); err != nil {
			return newFatalStageError(StageCopyAssets,
				fmt.Errorf("failed to copy asset %s: %w", asset.Rel, err))
		}
		st.assetCopied()
	}

	if len(st.Assets) > 0 {
		slog.Info("Copied assets", slog.Int("count", len(st.Assets)))
	}
	return nil
}

func copyAsset(st *State, f content.File) error {
	dest := filepath.Join(st.StageDir, filepath.FromSlash(st.Mapper.AssetPath(f.Rel)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := os.Open(f.AbsPath)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
