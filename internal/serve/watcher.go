package serve

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdsite/internal/build"
	"git.home.luguber.info/inful/mdsite/internal/content"
	"git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// setupWatcher watches the content root recursively, plus the directory
// holding the configuration file when that lives outside the content root.
func (s *Server) setupWatcher() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.ServeError("failed to create file watcher", err)
	}
	if err := s.addDirsRecursive(watcher, s.contentRoot); err != nil {
		_ = watcher.Close()
		return nil, errors.ServeError("failed to watch content root", err)
	}

	configDir := filepath.Dir(s.configPath)
	if !underRoot(configDir, s.contentRoot) {
		if err := watcher.Add(configDir); err != nil {
			slog.Warn("Failed to watch config directory",
				logfields.Path(configDir), logfields.Error(err))
		}
	}
	return watcher, nil
}

// addDirsRecursive registers root and every descendant directory that is not
// skipped. Unreadable entries are ignored; a watch that cannot be added is
// logged and skipped.
func (s *Server) addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && s.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// handleEvent classifies one filesystem event. Configuration file changes
// mark the config dirty before triggering so the next rebuild reloads it;
// new content directories are added to the watch set.
func (s *Server) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if ev.Name == s.configPath {
		if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
			slog.Debug("Config change detected", logfields.Path(ev.Name))
			s.configDirty.Store(true)
			trigger()
		}
		return
	}

	if s.shouldIgnore(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = s.addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

// shouldIgnore returns true for events that must not trigger rebuilds:
// anything outside the content root, the output tree the builds themselves
// write, skipped directory names, and editor temp files.
func (s *Server) shouldIgnore(path string) bool {
	if !underRoot(path, s.contentRoot) {
		return true
	}
	if s.inOutputTree(path) {
		return true
	}
	base := filepath.Base(path)
	if s.skipDirName(base) {
		return true
	}
	return isTempFile(base)
}

// skipDir reports whether a directory is excluded from watching entirely.
func (s *Server) skipDir(path string) bool {
	return s.skipDirName(filepath.Base(path)) || s.inOutputTree(path)
}

// skipDirName covers hidden names, reserved directories, and the configured
// exclude_dirs.
func (s *Server) skipDirName(name string) bool {
	if strings.HasPrefix(name, ".") || content.IsReservedDir(name) {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ex := range s.cfg.ExcludeDirs {
		if name == ex {
			return true
		}
	}
	return false
}

// inOutputTree reports whether path falls inside the output directory, its
// staging sibling, or the previous-output backup. Builds write there; a
// watcher that rebuilt on those writes would loop forever.
func (s *Server) inOutputTree(path string) bool {
	out := s.outputRoot()
	return underRoot(path, out) ||
		underRoot(path, out+build.StageSuffix) ||
		underRoot(path, out+build.PrevSuffix)
}

// isTempFile matches editor swap and backup artifacts. Hidden files are
// already excluded by name before this check.
func isTempFile(base string) bool {
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") {
		return true
	}
	if strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

// underRoot reports whether path is root itself or below it. Both paths must
// be in the same form (absolute in practice).
func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
