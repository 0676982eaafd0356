package build

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/site"
)

// stageDiscover walks the content root, classifies documents and assets,
// verifies the home document exists, and rejects output path collisions
// before any rendering work starts.
func stageDiscover(ctx context.Context, st *State) error {
	docs, assets, err := st.builder.ScanContent()
	if err != nil {
		return newFatalStageError(StageDiscover, err)
	}

	st.Docs, st.Assets = docs, assets
	st.Report.Documents = len(st.Docs)
	st.Report.Assets = len(st.Assets)

	if !hasDocument(st.Docs, st.Config.HomeMD) {
		return newFatalStageError(StageDiscover,
			errors.ContentError("home document not found: "+st.Config.HomeMD).
				WithContext("home_md", st.Config.HomeMD))
	}

	if err := checkCollisions(st.Mapper, st.Docs, st.Assets); err != nil {
		return newFatalStageError(StageDiscover, err)
	}
	return nil
}

func hasDocument(docs []content.File, rel string) bool {
	for _, d := range docs {
		if d.Rel == rel {
			return true
		}
	}
	return false
}

// checkCollisions rejects source trees in which two files map to the same
// output location, such as a/b.md next to a/b/README.md. Inputs are sorted,
// so the reported pair is deterministic.
func checkCollisions(mapper *site.Mapper, docs, assets []content.File) error {
	owners := make(map[string]string, len(docs)+len(assets))
	claim := func(out, source string) error {
		if prev, ok := owners[out]; ok {
			return errors.ContentError(
				fmt.Sprintf("output path collision at %s between %s and %s", out, prev, source)).
				WithContext("output", out).
				WithContext("sources", prev+", "+source)
		}
		owners[out] = source
		return nil
	}
	for _, f := range docs {
		if err := claim(mapper.OutputPath(f.Rel), f.Rel); err != nil {
			return err
		}
	}
	for _, f := range assets {
		if err := claim(mapper.AssetPath(f.Rel), f.Rel); err != nil {
			return err
		}
	}
	return nil
}

// ScanContent walks the content tree exactly the way a build does and
// returns the discovered documents and assets, sorted by relative path.
func (b *Builder) ScanContent() (docs, assets []content.File, err error) {
	scanner := content.NewScanner(b.contentRoot, b.cfg.ExcludeDirs, b.scannerExcludes())
	files, err := scanner.Scan()
	if err != nil {
		return nil, nil, errors.DiscoveryError(err)
	}
	docs, assets = content.Partition(files)
	return docs, assets, nil
}

// scannerExcludes lists root-relative paths the scanner must not descend
// into: the output tree and its staging/backup siblings when nested under
// the content root, and the configuration file itself.
func (b *Builder) scannerExcludes() []string {
	var paths []string
	add := func(target string) {
		if target == "" {
			return
		}
		rel, err := filepath.Rel(b.contentRoot, target)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	add(b.outputRoot)
	add(b.outputRoot + StageSuffix)
	add(b.outputRoot + PrevSuffix)
	add(b.configPath)
	return paths
}
