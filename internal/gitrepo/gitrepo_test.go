package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo builds a two-commit repository in a temp dir.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-q", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("one\ntwo\n"), 0o644))
	run("add", "file.txt")
	run("commit", "-q", "-m", "first")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("one\nthree\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("x\n"), 0o644))
	run("add", "file.txt", "extra.txt")
	run("commit", "-q", "-m", "second")
	return dir
}

func TestRecentCommitsAndShow(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)
	ctx := context.Background()

	commits, err := repo.RecentCommits(ctx, 1)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	newText, ok, err := repo.Show(ctx, commits[0], "file.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one\nthree", newText)

	oldText, ok, err := repo.Show(ctx, commits[1], "file.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one\ntwo", oldText)

	// extra.txt does not exist at the first commit.
	_, ok, err = repo.Show(ctx, commits[1], "extra.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFiles(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)

	files, err := repo.Files(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"file.txt", "extra.txt"}, files)
}

func TestRecentCommitsShallowHistory(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	cmd := exec.Command("git", "-C", dir, "init", "-q", "-b", "main")
	require.NoError(t, cmd.Run())

	_, err := Open(dir).RecentCommits(context.Background(), 1)
	require.Error(t, err)
}

func TestCloneLocalRepo(t *testing.T) {
	src := initTestRepo(t)

	repo, err := Clone(context.Background(), src, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Remove() })

	files, err := repo.Files(context.Background())
	require.NoError(t, err)
	assert.Contains(t, files, "file.txt")

	require.NoError(t, repo.Remove())
	_, err = os.Stat(repo.Dir)
	assert.True(t, os.IsNotExist(err))
}
