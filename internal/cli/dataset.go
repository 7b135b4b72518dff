package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsnanigans/linemap/internal/dataset"
	"github.com/jsnanigans/linemap/internal/fixture"
)

var (
	datasetRepoURL     string
	datasetBranch      string
	datasetCommits     int
	datasetGlob        string
	datasetPairs       int
	datasetTargetLines int
	datasetSeed        int64
	datasetOutput      string
	datasetCopyFiles   bool
	datasetCopyDir     string
)

var datasetCmd = &cobra.Command{
	Use:   "dataset [OLD_FILE NEW_FILE]...",
	Short: "Generate a validation fixture from a git repository or local file pairs",
	Long: `Dataset samples old/new file pairs and writes a fixture consumable by
"linemap validate". Pairs come either from adjacent commits of a git
repository (--repo-url) or from local files given as positional OLD NEW
path pairs.

Expected mappings in the fixture are produced by the current matcher, so a
generated dataset pins present behavior for regression checking.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&datasetRepoURL, "repo-url", "", "git repository URL to sample")
	datasetCmd.Flags().StringVar(&datasetBranch, "branch", "", "branch or tag to check out (default: repo default)")
	datasetCmd.Flags().IntVar(&datasetCommits, "commits", 1, "adjacent commit pairs to compare per file")
	datasetCmd.Flags().StringVar(&datasetGlob, "glob", "**/*.go", "pattern selecting repository paths")
	datasetCmd.Flags().IntVar(&datasetPairs, "pairs", 25, "maximum number of file/commit pairs")
	datasetCmd.Flags().IntVar(&datasetTargetLines, "target-lines", 500, "cap on total mapped lines across all pairs")
	datasetCmd.Flags().Int64Var(&datasetSeed, "seed", 42, "random seed for deterministic sampling")
	datasetCmd.Flags().StringVarP(&datasetOutput, "output", "o", "new_test_data.json", "path for the generated fixture")
	datasetCmd.Flags().BoolVar(&datasetCopyFiles, "copy-files", false, "persist paired file contents for inspection")
	datasetCmd.Flags().StringVar(&datasetCopyDir, "copy-dir", "new-test-data", "directory for --copy-files output")
}

func runDataset(cmd *cobra.Command, args []string) error {
	if datasetRepoURL == "" && len(args) == 0 {
		return fmt.Errorf("either --repo-url or OLD NEW file pairs are required")
	}
	if len(args)%2 != 0 {
		return fmt.Errorf("local file pairs must come as OLD NEW path pairs, got %d paths", len(args))
	}

	opts := dataset.Options{
		RepoURL:     datasetRepoURL,
		Branch:      datasetBranch,
		Commits:     datasetCommits,
		Glob:        datasetGlob,
		MaxPairs:    datasetPairs,
		TargetLines: datasetTargetLines,
		Seed:        datasetSeed,
		Config:      cfg.MatcherConfig(),
		Logger:      logger,
	}
	if datasetCopyFiles {
		opts.CopyDir = datasetCopyDir
	}

	var (
		pairs []fixture.Pair
		err   error
	)
	if datasetRepoURL != "" {
		pairs, err = dataset.BuildFromRepo(cmd.Context(), opts)
	} else {
		var local []dataset.LocalPair
		for i := 0; i < len(args); i += 2 {
			local = append(local, dataset.LocalPair{OldPath: args[i], NewPath: args[i+1]})
		}
		pairs, err = dataset.BuildFromFiles(local, opts)
	}
	if err != nil {
		return err
	}

	if err := fixture.Save(datasetOutput, pairs); err != nil {
		return err
	}
	total := 0
	for _, p := range pairs {
		total += len(p.Mappings)
	}
	fmt.Printf("Wrote %d pairs (%d mapped lines) to %s.\n", len(pairs), total, datasetOutput)
	return nil
}
