package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnanigans/linemap/pkg/linemap"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "a\nb\nc\n")
	newPath := writeFile(t, dir, "new.txt", "a\nc\nd\n")

	pairs, err := BuildFromFiles([]LocalPair{{OldPath: oldPath, NewPath: newPath}}, Options{
		Config: linemap.DefaultConfig(),
		Logger: quietLogger(),
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	pair := pairs[0]
	assert.Equal(t, 1, pair.Pair)
	assert.Equal(t, []string{"a", "b", "c"}, pair.OldLines)
	assert.Equal(t, []string{"a", "c", "d"}, pair.NewLines)

	// Three old-line entries plus the inserted "d".
	require.Len(t, pair.Mappings, 4)
	assert.Equal(t, 1, *pair.Mappings[0].Orig)
	assert.Equal(t, 1, *pair.Mappings[0].New)
	assert.Nil(t, pair.Mappings[1].New, "deleted line b")
	assert.Equal(t, 2, *pair.Mappings[2].New)
	assert.Nil(t, pair.Mappings[3].Orig, "inserted line d")
	assert.Equal(t, 3, *pair.Mappings[3].New)
}

func TestBuildFromFilesHonorsLineCap(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeFile(t, dir, "old.txt", "a\nb\nc\nd\ne\n")
	newPath := writeFile(t, dir, "new.txt", "a\nb\nc\nd\ne\n")

	pairs, err := BuildFromFiles([]LocalPair{{OldPath: oldPath, NewPath: newPath}}, Options{
		TargetLines: 3,
		Config:      linemap.DefaultConfig(),
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Len(t, pairs[0].Mappings, 3, "final pair trimmed to the cap")
}

func TestBuildFromFilesHonorsPairCap(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "x\n")
	b := writeFile(t, dir, "b.txt", "x\n")

	local := []LocalPair{
		{OldPath: a, NewPath: b},
		{OldPath: a, NewPath: b},
		{OldPath: a, NewPath: b},
	}
	pairs, err := BuildFromFiles(local, Options{
		MaxPairs: 2,
		Config:   linemap.DefaultConfig(),
		Logger:   quietLogger(),
	})
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}

func TestBuildFromFilesEmpty(t *testing.T) {
	_, err := BuildFromFiles(nil, Options{Config: linemap.DefaultConfig(), Logger: quietLogger()})
	require.Error(t, err)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.go", "main.go", true},
		{"**/*.go", "internal/cli/root.go", true},
		{"**/*.go", "README.md", false},
		{"*.go", "main.go", true},
		{"*.go", "internal/main.go", false},
		{"docs/*.md", "docs/intro.md", true},
		{"docs/*.md", "docs/sub/intro.md", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.path), "%s vs %s", tt.pattern, tt.path)
	}
}

func TestSplitRef(t *testing.T) {
	p, c, ok := splitRef("internal/cli/root.go@abc123")
	require.True(t, ok)
	assert.Equal(t, "internal/cli/root.go", p)
	assert.Equal(t, "abc123", c)

	_, _, ok = splitRef("plain/path.go")
	assert.False(t, ok)
}
