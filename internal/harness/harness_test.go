package harness

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsnanigans/linemap/internal/fixture"
	"github.com/jsnanigans/linemap/pkg/linemap"
)

func intp(i int) *int { return &i }

func writeFixture(t *testing.T, pairs []fixture.Pair) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, fixture.Save(path, pairs))
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunAllPairsPass(t *testing.T) {
	path := writeFixture(t, []fixture.Pair{{
		Pair:     1,
		OldLines: []string{"a", "b", "c"},
		NewLines: []string{"a", "c"},
		Mappings: []fixture.Entry{
			{Orig: intp(1), New: intp(1)},
			{Orig: intp(2)}, // deleted
			{Orig: intp(3), New: intp(2)},
		},
	}})

	summary, err := Run(Options{
		FixturePath: path,
		Config:      linemap.DefaultConfig(),
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	assert.True(t, summary.OK())
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, "All 1 pairs validated successfully.\n", summary.Format())
}

func TestRunReportsMismatches(t *testing.T) {
	path := writeFixture(t, []fixture.Pair{{
		Pair:     1,
		OldLines: []string{"a", "b"},
		NewLines: []string{"a", "b"},
		Mappings: []fixture.Entry{
			{Orig: intp(1), New: intp(1)},
			{Orig: intp(2), New: intp(99)}, // wrong on purpose
		},
	}})

	summary, err := Run(Options{
		FixturePath: path,
		Config:      linemap.DefaultConfig(),
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	assert.False(t, summary.OK())
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0], "orig 2")
	assert.Contains(t, summary.Failures[0], "expected 99, got 2")
	assert.Contains(t, summary.Format(), "FAILED:")
}

func TestRunWritesResultsFile(t *testing.T) {
	path := writeFixture(t, []fixture.Pair{{
		Pair:     1,
		OldLines: []string{"x"},
		NewLines: []string{"x"},
		Mappings: []fixture.Entry{{Orig: intp(1), New: intp(1)}},
	}})
	results := filepath.Join(t.TempDir(), "results.txt")

	summary, err := Run(Options{
		FixturePath: path,
		ResultsPath: results,
		Config:      linemap.DefaultConfig(),
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	require.True(t, summary.OK())

	data, err := os.ReadFile(results)
	require.NoError(t, err)
	assert.Equal(t, summary.Format(), string(data))
}

func TestRunResolvesFileReferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt"), []byte("one\ntwo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("one\ntwo\n"), 0o644))

	path := filepath.Join(dir, "fixture.json")
	require.NoError(t, fixture.Save(path, []fixture.Pair{{
		Pair:    1,
		OldFile: "old.txt",
		NewFile: "new.txt",
		Mappings: []fixture.Entry{
			{Orig: intp(1), New: intp(1)},
			{Orig: intp(2), New: intp(2)},
		},
	}}))

	// BaseDir defaults to the fixture's directory.
	summary, err := Run(Options{
		FixturePath: path,
		Config:      linemap.DefaultConfig(),
		Logger:      quietLogger(),
	})
	require.NoError(t, err)
	assert.True(t, summary.OK())
}
