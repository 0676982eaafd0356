// Package gitmeta reads repository metadata for the content tree: current
// commit, branch, origin URL and a worktree-dirty flag. The metadata feeds
// build reports and per-page edit links. A content tree outside any git
// repository is not an error; Detect then returns nil.
package gitmeta

import (
	"errors"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Info describes the repository state at build time.
type Info struct {
	Commit      string // full hash
	ShortCommit string // first 8 characters
	Branch      string // empty on detached HEAD
	RemoteURL   string // origin URL normalized to a browsable form
	Root        string // absolute worktree root
	Dirty       bool   // uncommitted changes in the worktree
}

// Detect opens the repository containing dir, walking upward the way git
// does. It returns nil without error when dir is not inside a repository or
// the repository has no commits yet.
func Detect(dir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, nil
	}

	info := &Info{Commit: head.Hash().String()}
	if len(info.Commit) >= 8 {
		info.ShortCommit = info.Commit[:8]
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if remote, rerr := repo.Remote("origin"); rerr == nil && len(remote.Config().URLs) > 0 {
		info.RemoteURL = NormalizeRemoteURL(remote.Config().URLs[0])
	}

	if wt, werr := repo.Worktree(); werr == nil {
		info.Root = wt.Filesystem.Root()
		if status, serr := wt.Status(); serr == nil {
			info.Dirty = !status.IsClean()
		}
	}
	return info, nil
}

// NormalizeRemoteURL converts common remote forms (scp-like SSH, ssh://,
// http(s)://) into a browsable URL without the .git suffix. Remotes with no
// browsable form yield "".
func NormalizeRemoteURL(remote string) string {
	remote = strings.TrimSpace(remote)
	switch {
	case remote == "":
		return ""
	case strings.HasPrefix(remote, "ssh://"):
		trimmed := strings.TrimPrefix(remote, "ssh://")
		if at := strings.Index(trimmed, "@"); at >= 0 {
			trimmed = trimmed[at+1:]
		}
		remote = "https://" + trimmed
	case strings.HasPrefix(remote, "git@"):
		trimmed := strings.TrimPrefix(remote, "git@")
		remote = "https://" + strings.Replace(trimmed, ":", "/", 1)
	case strings.HasPrefix(remote, "http://"), strings.HasPrefix(remote, "https://"):
		// Already browsable.
	default:
		return ""
	}
	remote = strings.TrimSuffix(remote, ".git")
	return strings.TrimSuffix(remote, "/")
}
