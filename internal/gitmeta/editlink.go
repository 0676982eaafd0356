package gitmeta

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type forgeKind int

const (
	forgeUnknown forgeKind = iota
	forgeGitHub
	forgeGitLab
	forgeGitea
)

func detectForge(host string) forgeKind {
	host = strings.ToLower(host)
	switch {
	case host == "github.com" || strings.HasSuffix(host, ".github.com"):
		return forgeGitHub
	case strings.Contains(host, "gitlab"):
		return forgeGitLab
	case strings.Contains(host, "gitea") || strings.Contains(host, "forgejo") || host == "codeberg.org":
		return forgeGitea
	default:
		return forgeUnknown
	}
}

// EditURL returns the forge web edit URL for a file given its slash path
// relative to the repository root. It returns "" when the remote, branch or
// forge shape is unknown.
func (i *Info) EditURL(relPath string) string {
	if i == nil || i.RemoteURL == "" || i.Branch == "" || relPath == "" {
		return ""
	}
	u, err := url.Parse(i.RemoteURL)
	if err != nil {
		return ""
	}
	base := strings.TrimSuffix(i.RemoteURL, "/")
	switch detectForge(u.Host) {
	case forgeGitHub:
		return fmt.Sprintf("%s/edit/%s/%s", base, i.Branch, relPath)
	case forgeGitLab:
		return fmt.Sprintf("%s/-/edit/%s/%s", base, i.Branch, relPath)
	case forgeGitea:
		return fmt.Sprintf("%s/_edit/%s/%s", base, i.Branch, relPath)
	default:
		return ""
	}
}

// RelPath returns p's slash path relative to the worktree root, or "" when
// the root is unknown or p lies outside it.
func (i *Info) RelPath(p string) string {
	if i == nil || i.Root == "" {
		return ""
	}
	rel, err := filepath.Rel(i.Root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}
