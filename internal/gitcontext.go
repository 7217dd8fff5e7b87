package internal

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// gitTimeout bounds the total time spent shelling out to git
const gitTimeout = 5 * time.Second

// ResolveGitContext resolves repository metadata for dir by invoking the
// git binary. It returns nil for anything that is not a repository with a
// resolvable branch and commit — partial metadata is never returned, with
// the one exception that the remote may be absent. This is a boundary
// call: it degrades, it never fails the ingestion.
func ResolveGitContext(ctx context.Context, dir string) *GitInfo {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	if _, err := runGit(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil {
		LogDebug("Not a git repository: %s", dir)
		return nil
	}

	branch, err := runGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		LogDebug("Failed to resolve branch in %s: %v", dir, err)
		return nil
	}
	commit, err := runGit(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		LogDebug("Failed to resolve commit in %s: %v", dir, err)
		return nil
	}

	info := &GitInfo{Branch: branch, Commit: commit}
	if remote, err := runGit(ctx, dir, "remote", "get-url", "origin"); err == nil {
		info.Remote = &remote
	}
	return info
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
