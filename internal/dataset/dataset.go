// Package dataset builds validation fixtures by sampling old/new file
// pairs, either from explicit local file pairs or from adjacent revisions
// of a git repository. Expected mappings come from the matcher itself, so
// a generated fixture pins today's behavior for regression checking.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jsnanigans/linemap/internal/fixture"
	"github.com/jsnanigans/linemap/internal/gitrepo"
	"github.com/jsnanigans/linemap/pkg/linemap"
)

// Options configures a build. Zero caps fall back to the stated defaults.
type Options struct {
	// Repository sampling.
	RepoURL string
	Branch  string
	// Commits is the number of adjacent commit pairs compared per file
	// (1 means HEAD vs HEAD~1). Default 1.
	Commits int
	// Glob selects repository paths, fnmatch-style. A "**/" prefix matches
	// any directory depth. Default "**/*.go".
	Glob string

	// MaxPairs caps the number of file/commit pairs. Default 25.
	MaxPairs int
	// TargetLines caps the total mapped lines across all pairs; the final
	// pair is trimmed to fit. Default 500.
	TargetLines int
	// Seed drives the deterministic file shuffle. Default 42.
	Seed int64

	// CopyDir, when set, receives pairN_old_/pairN_new_ file copies and the
	// fixture references them instead of commit snapshots.
	CopyDir string

	Config linemap.Config
	Logger *slog.Logger
}

func (o *Options) setDefaults() {
	if o.Commits <= 0 {
		o.Commits = 1
	}
	if o.Glob == "" {
		o.Glob = "**/*.go"
	}
	if o.MaxPairs <= 0 {
		o.MaxPairs = 25
	}
	if o.TargetLines <= 0 {
		o.TargetLines = 500
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// LocalPair names two files on disk to be sampled as one fixture pair.
type LocalPair struct {
	OldPath string
	NewPath string
}

// BuildFromRepo clones the repository and samples file/commit pairs until
// the caps are reached.
func BuildFromRepo(ctx context.Context, opts Options) ([]fixture.Pair, error) {
	opts.setDefaults()
	if opts.RepoURL == "" {
		return nil, fmt.Errorf("dataset: repository URL is required")
	}

	repo, err := gitrepo.Clone(ctx, opts.RepoURL, opts.Branch)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := repo.Remove(); err != nil {
			opts.Logger.Warn("failed to remove clone", "dir", repo.Dir, "error", err)
		}
	}()

	commits, err := repo.RecentCommits(ctx, opts.Commits)
	if err != nil {
		return nil, err
	}
	files, err := repo.Files(ctx)
	if err != nil {
		return nil, err
	}
	var selected []string
	for _, f := range files {
		if matchGlob(opts.Glob, f) {
			selected = append(selected, f)
		}
	}
	opts.Logger.Info("sampling repository",
		"url", opts.RepoURL, "files", len(selected), "commits", len(commits))

	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	var pairs []fixture.Pair
	totalLines := 0
	for _, fpath := range selected {
		if len(pairs) >= opts.MaxPairs || totalLines >= opts.TargetLines {
			break
		}
		for i := 0; i < len(commits)-1; i++ {
			if len(pairs) >= opts.MaxPairs || totalLines >= opts.TargetLines {
				break
			}
			newCommit, oldCommit := commits[i], commits[i+1]
			newText, ok, err := repo.Show(ctx, newCommit, fpath)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			oldText, ok, err := repo.Show(ctx, oldCommit, fpath)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			pair, mapped, err := buildPair(len(pairs)+1,
				fmt.Sprintf("%s@%s", fpath, oldCommit),
				fmt.Sprintf("%s@%s", fpath, newCommit),
				fixture.SplitLines(oldText), fixture.SplitLines(newText),
				opts.TargetLines-totalLines, opts.Config)
			if err != nil {
				return nil, err
			}
			totalLines += mapped
			pairs = append(pairs, pair)
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("dataset: no pairs generated (check commit depth and glob %q)", opts.Glob)
	}

	if opts.CopyDir != "" {
		if err := copyPairFiles(ctx, repo, pairs, opts.CopyDir); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

// BuildFromFiles samples explicit local file pairs under the same caps.
func BuildFromFiles(localPairs []LocalPair, opts Options) ([]fixture.Pair, error) {
	opts.setDefaults()
	if len(localPairs) == 0 {
		return nil, fmt.Errorf("dataset: no file pairs given")
	}

	var pairs []fixture.Pair
	totalLines := 0
	for _, lp := range localPairs {
		if len(pairs) >= opts.MaxPairs || totalLines >= opts.TargetLines {
			break
		}
		oldData, err := os.ReadFile(lp.OldPath)
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		newData, err := os.ReadFile(lp.NewPath)
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		pair, mapped, err := buildPair(len(pairs)+1, lp.OldPath, lp.NewPath,
			fixture.SplitLines(string(oldData)), fixture.SplitLines(string(newData)),
			opts.TargetLines-totalLines, opts.Config)
		if err != nil {
			return nil, err
		}
		totalLines += mapped
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// buildPair maps one old/new pair and converts the result into fixture
// entries: old lines in order (null new for deletions), then insertions.
// The entry list is trimmed to remaining so the dataset respects the total
// line cap.
func buildPair(num int, oldRef, newRef string, oldLines, newLines []string, remaining int, cfg linemap.Config) (fixture.Pair, int, error) {
	res, err := linemap.MapLines(oldLines, newLines, cfg)
	if err != nil {
		return fixture.Pair{}, 0, fmt.Errorf("dataset: map %s vs %s: %w", oldRef, newRef, err)
	}

	entries := make([]fixture.Entry, 0, len(oldLines)+len(res.Inserted))
	for i := 1; i <= len(oldLines); i++ {
		orig := i
		entry := fixture.Entry{Orig: &orig}
		if newLine := res.Mapping[i]; newLine != linemap.Deleted {
			n := newLine
			entry.New = &n
		}
		entries = append(entries, entry)
	}
	for _, newLine := range res.Inserted {
		n := newLine
		entries = append(entries, fixture.Entry{New: &n})
	}
	if len(entries) > remaining {
		entries = entries[:remaining]
	}

	return fixture.Pair{
		Pair:     num,
		OldFile:  oldRef,
		NewFile:  newRef,
		OldLines: oldLines,
		NewLines: newLines,
		Mappings: entries,
	}, len(entries), nil
}

// copyPairFiles persists both sides of every pair for inspection and
// repoints the fixture's file references at the copies.
func copyPairFiles(ctx context.Context, repo *gitrepo.Repo, pairs []fixture.Pair, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("dataset: create %s: %w", destDir, err)
	}
	for i := range pairs {
		oldPath, oldCommit, ok := splitRef(pairs[i].OldFile)
		if !ok {
			continue
		}
		newPath, newCommit, ok := splitRef(pairs[i].NewFile)
		if !ok {
			continue
		}
		oldText, okOld, err := repo.Show(ctx, oldCommit, oldPath)
		if err != nil {
			return err
		}
		newText, okNew, err := repo.Show(ctx, newCommit, newPath)
		if err != nil {
			return err
		}
		if !okOld || !okNew {
			continue
		}
		oldDest := filepath.Join(destDir, fmt.Sprintf("pair%d_old_%s", pairs[i].Pair, filepath.Base(oldPath)))
		newDest := filepath.Join(destDir, fmt.Sprintf("pair%d_new_%s", pairs[i].Pair, filepath.Base(newPath)))
		if err := os.WriteFile(oldDest, []byte(oldText), 0o644); err != nil {
			return fmt.Errorf("dataset: write %s: %w", oldDest, err)
		}
		if err := os.WriteFile(newDest, []byte(newText), 0o644); err != nil {
			return fmt.Errorf("dataset: write %s: %w", newDest, err)
		}
		pairs[i].OldFile = oldDest
		pairs[i].NewFile = newDest
	}
	return nil
}

func splitRef(ref string) (path, commit string, ok bool) {
	i := strings.LastIndex(ref, "@")
	if i < 0 {
		return "", "", false
	}
	return ref[:i], ref[i+1:], true
}

// matchGlob matches a repository path against an fnmatch-style pattern.
// Patterns starting with "**/" match at any depth; everything else goes
// through path.Match against the full slash-separated path.
func matchGlob(pattern, p string) bool {
	if rest, found := strings.CutPrefix(pattern, "**/"); found {
		if ok, _ := path.Match(rest, path.Base(p)); ok {
			return true
		}
		pattern = rest
	}
	ok, _ := path.Match(pattern, p)
	return ok
}
