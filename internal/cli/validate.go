package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsnanigans/linemap/internal/harness"
)

var (
	validateFixtures string
	validateResults  string
	validateBaseDir  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a fixture dataset against the matcher",
	Long: `Validate runs every pair in a fixture file through the matcher and
compares the produced mapping with the expected one. A summary is printed
and, when --results is set, written to a results file.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFixtures, "fixtures", "f", "test_data.json", "fixture file to validate")
	validateCmd.Flags().StringVarP(&validateResults, "results", "r", "", "optional path for the summary file")
	validateCmd.Flags().StringVar(&validateBaseDir, "base-dir", "", "base directory for relative file references (default: fixture directory)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	summary, err := harness.Run(harness.Options{
		FixturePath: validateFixtures,
		BaseDir:     validateBaseDir,
		ResultsPath: validateResults,
		Config:      cfg.MatcherConfig(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Print(summary.Format())
	if !summary.OK() {
		return errors.New("validation failed")
	}
	return nil
}
