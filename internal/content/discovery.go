// Package content discovers the source tree: Markdown documents to render
// and every other file, which passes through as an asset.
package content

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/site"
	"git.home.luguber.info/inful/mdsite/internal/util/sets"
)

var (
	// ErrWalkFailed indicates filesystem traversal of the content root failed.
	ErrWalkFailed = errors.New("content root walk failed")

	// ErrFileReadFailed indicates reading a discovered file failed.
	ErrFileReadFailed = errors.New("content file read failed")
)

// reservedDirNames are never descended into at any level: version control
// state and dependency caches.
var reservedDirNames = sets.New(
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
)

// IsReservedDir reports whether name is a directory name that is never
// scanned, at any depth.
func IsReservedDir(name string) bool {
	return reservedDirNames.Has(name)
}

// File is one discovered entry of the content tree.
type File struct {
	AbsPath string // absolute path on disk
	Rel     string // slash path relative to the content root
	IsDoc   bool   // true for Markdown documents, false for assets
}

// Load reads the file's content.
func (f *File) Load() ([]byte, error) {
	content, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileReadFailed, f.Rel, err)
	}
	return content, nil
}

// Scanner discovers documents and assets under a content root.
type Scanner struct {
	root         string
	excludeNames sets.Set[string]
	excludePaths sets.Set[string]
}

// NewScanner returns a Scanner for root. extraNames holds additional
// directory names excluded at any depth (config exclude_dirs); extraPaths
// holds root-relative slash paths excluded entirely, such as a nested output
// directory.
func NewScanner(root string, extraNames, extraPaths []string) *Scanner {
	names := reservedDirNames.Clone()
	for _, n := range extraNames {
		if n != "" {
			names.Add(n)
		}
	}
	paths := sets.New[string]()
	for _, p := range extraPaths {
		if p != "" && p != "." {
			paths.Add(filepath.ToSlash(p))
		}
	}
	return &Scanner{root: root, excludeNames: names, excludePaths: paths}
}

// Scan walks the content root once and returns every candidate document and
// asset, sorted by relative path for deterministic builds. Reserved
// directories, explicitly excluded paths, and entries whose name begins with
// the hidden-file marker are skipped.
func (s *Scanner) Scan() ([]File, error) {
	var files []File

	err := filepath.Walk(s.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == s.root {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		name := info.Name()
		if info.IsDir() {
			if strings.HasPrefix(name, ".") || s.excludeNames.Has(name) || s.excludePaths.Has(rel) {
				slog.Debug("Skipping directory", logfields.Path(rel))
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || s.excludePaths.Has(rel) {
			return nil
		}

		f := File{
			AbsPath: p,
			Rel:     rel,
			IsDoc:   site.IsMarkdown(name),
		}
		files = append(files, f)

		fileType := "asset"
		if f.IsDoc {
			fileType = "document"
		}
		slog.Debug("Discovered file", logfields.File(rel), slog.String("type", fileType))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWalkFailed, s.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })

	docs, assets := Partition(files)
	slog.Info("Content discovered",
		slog.Int("documents", len(docs)),
		slog.Int("assets", len(assets)))
	return files, nil
}

// Partition splits discovered files into documents and assets, preserving
// order.
func Partition(files []File) (docs, assets []File) {
	for _, f := range files {
		if f.IsDoc {
			docs = append(docs, f)
		} else {
			assets = append(assets, f)
		}
	}
	return docs, assets
}
