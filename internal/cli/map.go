package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jsnanigans/linemap/internal/fixture"
	"github.com/jsnanigans/linemap/pkg/linemap"
)

var (
	mapColor string
	mapWatch bool
	mapPlain bool
)

var mapCmd = &cobra.Command{
	Use:   "map OLD_FILE NEW_FILE",
	Short: "Print the line correspondence between two files",
	Long: `Map computes the old-line to new-line correspondence between two files and
prints one "old -> new" entry per line, with "-" for lines that exist on
only one side.

With --watch, both files are watched and the mapping reprinted whenever
either changes.`,
	Args: cobra.ExactArgs(2),
	RunE: runMap,
}

func init() {
	mapCmd.Flags().StringVar(&mapColor, "color", "auto", "colorize output: auto, always, or never")
	mapCmd.Flags().BoolVarP(&mapWatch, "watch", "w", false, "re-map whenever either file changes")
	mapCmd.Flags().BoolVar(&mapPlain, "plain", false, "print bare line-number pairs without content")
}

func runMap(cmd *cobra.Command, args []string) error {
	oldPath, newPath := args[0], args[1]

	if err := printMapping(oldPath, newPath); err != nil {
		return err
	}
	if !mapWatch {
		return nil
	}
	return watchAndRemap(cmd, oldPath, newPath)
}

func printMapping(oldPath, newPath string) error {
	oldLines, err := readFileLines(oldPath)
	if err != nil {
		return err
	}
	newLines, err := readFileLines(newPath)
	if err != nil {
		return err
	}

	res, err := linemap.MapLines(oldLines, newLines, cfg.MatcherConfig())
	if err != nil {
		return err
	}
	logger.Debug("mapped files",
		"old", oldPath, "new", newPath,
		"matches", len(res.Matches), "inserted", len(res.Inserted))

	if mapPlain {
		fmt.Print(linemap.FormatMapping(res))
		return nil
	}
	fmt.Print(linemap.RenderResult(oldLines, newLines, res, useColor()))
	return nil
}

// watchAndRemap blocks, reprinting the mapping whenever either file
// changes. Events are debounced because editors typically fire several
// writes per save.
func watchAndRemap(cmd *cobra.Command, oldPath, newPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	for _, p := range []string{oldPath, newPath} {
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}
	logger.Info("watching for changes", "old", oldPath, "new", newPath)

	const debounce = 200 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C
			// Editors that replace files break the watch; re-add.
			if event.Op&fsnotify.Create != 0 {
				_ = watcher.Add(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timerC:
			timerC = nil
			fmt.Println("---")
			if err := printMapping(oldPath, newPath); err != nil {
				logger.Warn("re-map failed", "error", err)
			}
		}
	}
}

func useColor() bool {
	switch mapColor {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

func readFileLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fixture.SplitLines(string(data)), nil
}
