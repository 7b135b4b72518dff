// Package harness validates fixture datasets against the matcher: it runs
// every pair through linemap.MapLines, compares the result with the
// expected correspondences, and reports a pass/fail summary.
package harness

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsnanigans/linemap/internal/fixture"
	"github.com/jsnanigans/linemap/pkg/linemap"
)

// Options configures a validation run. The harness touches the core only
// through linemap.MapLines.
type Options struct {
	FixturePath string
	// BaseDir resolves relative file references in the fixture; defaults to
	// the fixture's own directory.
	BaseDir string
	// ResultsPath, when set, receives the formatted summary.
	ResultsPath string
	Config      linemap.Config
	Logger      *slog.Logger
}

// Summary is the outcome of one validation run.
type Summary struct {
	Passed   int
	Failed   int
	Failures []string
}

// OK reports whether every pair validated cleanly.
func (s *Summary) OK() bool { return s.Failed == 0 }

// Format renders the summary the way the results file expects it.
func (s *Summary) Format() string {
	if s.OK() {
		return fmt.Sprintf("All %d pairs validated successfully.\n", s.Passed)
	}
	var b strings.Builder
	b.WriteString("FAILED:\n")
	for _, f := range s.Failures {
		fmt.Fprintf(&b, " - %s\n", f)
	}
	fmt.Fprintf(&b, "\nSummary: %d pairs validated; %d passed, %d failed.\n",
		s.Passed+s.Failed, s.Passed, s.Failed)
	return b.String()
}

// Run loads the fixture, validates every pair, and writes the summary to
// the results file when one is configured.
func Run(opts Options) (*Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pairs, err := fixture.Load(opts.FixturePath)
	if err != nil {
		return nil, err
	}
	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(opts.FixturePath)
	}

	summary := &Summary{}
	for _, pair := range pairs {
		failures, err := validatePair(pair, baseDir, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("harness: pair %d: %w", pair.Pair, err)
		}
		if len(failures) == 0 {
			summary.Passed++
			logger.Debug("pair validated", "pair", pair.Pair)
			continue
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, failures...)
		logger.Warn("pair failed validation", "pair", pair.Pair, "mismatches", len(failures))
	}

	logger.Info("validation finished",
		"fixture", opts.FixturePath,
		"passed", summary.Passed,
		"failed", summary.Failed)

	if opts.ResultsPath != "" {
		if err := os.WriteFile(opts.ResultsPath, []byte(summary.Format()), 0o644); err != nil {
			return nil, fmt.Errorf("harness: write results: %w", err)
		}
	}
	return summary, nil
}

// validatePair maps one pair and diffs the actual mapping against every
// expected entry that names an old line.
func validatePair(pair fixture.Pair, baseDir string, cfg linemap.Config) ([]string, error) {
	oldLines, newLines, err := pair.Lines(baseDir)
	if err != nil {
		return nil, err
	}

	res, err := linemap.MapLines(oldLines, newLines, cfg)
	if err != nil {
		return nil, err
	}

	label := pairLabel(pair)
	var failures []string
	for _, entry := range pair.Mappings {
		if entry.Orig == nil {
			continue // insertions have no old-side key to check
		}
		want := linemap.Deleted
		if entry.New != nil {
			want = *entry.New
		}
		got, ok := res.Mapping[*entry.Orig]
		if !ok {
			failures = append(failures, fmt.Sprintf("%s orig %d: missing from mapping", label, *entry.Orig))
			continue
		}
		if got != want {
			failures = append(failures, fmt.Sprintf("%s orig %d: expected %s, got %s",
				label, *entry.Orig, describe(want), describe(got)))
		}
	}
	return failures, nil
}

func pairLabel(pair fixture.Pair) string {
	if pair.OldFile != "" || pair.NewFile != "" {
		return fmt.Sprintf("%s -> %s", filepath.Base(pair.OldFile), filepath.Base(pair.NewFile))
	}
	return fmt.Sprintf("pair %d", pair.Pair)
}

func describe(line int) string {
	if line == linemap.Deleted {
		return "deleted"
	}
	return fmt.Sprintf("%d", line)
}
