// Package gitrepo shells out to git for the handful of plumbing commands
// the dataset builder needs: clone, rev-list, ls-tree, and show.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Repo is a local checkout, usually a temporary clone.
type Repo struct {
	Dir string

	temp bool
}

// Open wraps an existing checkout directory.
func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

// Clone clones url into a temporary directory. Pass branch to check out a
// specific branch or tag; empty means the remote default. The caller owns
// the clone and should Remove it when done.
func Clone(ctx context.Context, url, branch string) (*Repo, error) {
	dir, err := os.MkdirTemp("", "linemap-dataset-*")
	if err != nil {
		return nil, fmt.Errorf("gitrepo: temp dir: %w", err)
	}

	args := []string{"clone", url, dir}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("gitrepo: clone %s: %w: %s", url, err, strings.TrimSpace(stderr.String()))
	}
	return &Repo{Dir: dir, temp: true}, nil
}

// Remove deletes a temporary clone. Opened checkouts are left alone.
func (r *Repo) Remove() error {
	if !r.temp {
		return nil
	}
	return os.RemoveAll(r.Dir)
}

// RecentCommits returns count+1 commit hashes starting at HEAD, newest
// first, so callers can form count adjacent pairs. An error is returned
// when the history is too shallow to form even one pair.
func (r *Repo) RecentCommits(ctx context.Context, count int) ([]string, error) {
	out, err := r.git(ctx, "rev-list", fmt.Sprintf("--max-count=%d", count+1), "HEAD")
	if err != nil {
		return nil, err
	}
	commits := nonEmptyLines(out)
	if len(commits) < 2 {
		return nil, fmt.Errorf("gitrepo: not enough history to compare commits (got %d)", len(commits))
	}
	return commits, nil
}

// Files lists every path tracked at HEAD.
func (r *Repo) Files(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "ls-tree", "-r", "--name-only", "HEAD")
	if err != nil {
		return nil, err
	}
	return nonEmptyLines(out), nil
}

// Show returns the content of path at commit. ok is false when the file
// does not exist at that commit, which is not an error.
func (r *Repo) Show(ctx context.Context, commit, path string) (content string, ok bool, err error) {
	out, err := r.git(ctx, "show", commit+":"+path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, err
	}
	return out, true, nil
}

// git runs one git command inside the checkout and returns trimmed stdout.
func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", r.Dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("gitrepo: git %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
