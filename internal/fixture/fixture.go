// Package fixture defines the JSON dataset format shared by the dataset
// builder and the validation harness: a list of old/new pairs, each with
// the expected line correspondences.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Pair is one old/new comparison together with its expected mappings.
// Lines may be stored inline (self-contained fixtures) or as file
// references; inline lines win when both are present.
type Pair struct {
	Pair     int      `json:"pair"`
	OldFile  string   `json:"old_file,omitempty"`
	NewFile  string   `json:"new_file,omitempty"`
	OldLines []string `json:"old_lines,omitempty"`
	NewLines []string `json:"new_lines,omitempty"`
	Mappings []Entry  `json:"mappings"`
}

// Entry is one expected correspondence. New is null for deleted old lines;
// Orig is null for inserted new lines.
type Entry struct {
	Orig *int `json:"orig"`
	New  *int `json:"new"`
}

// Load reads a fixture file.
func Load(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var pairs []Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	return pairs, nil
}

// Save writes pairs as indented JSON.
func Save(path string, pairs []Pair) error {
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("fixture: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("fixture: write %s: %w", path, err)
	}
	return nil
}

// Lines resolves the old and new line slices for the pair. File references
// are resolved relative to baseDir unless absolute. A file reference may
// carry an "@commit" suffix from the dataset builder; such pairs are only
// loadable when lines are inline.
func (p Pair) Lines(baseDir string) (old, new []string, err error) {
	old = p.OldLines
	new = p.NewLines
	if old == nil {
		old, err = readLines(resolve(baseDir, p.OldFile))
		if err != nil {
			return nil, nil, err
		}
	}
	if new == nil {
		new, err = readLines(resolve(baseDir, p.NewFile))
		if err != nil {
			return nil, nil, err
		}
	}
	return old, new, nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("fixture: pair has neither inline lines nor a file reference")
	}
	if strings.Contains(path, "@") {
		return nil, fmt.Errorf("fixture: %s references a commit snapshot; regenerate the fixture with copies or inline lines", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text on newlines without producing a trailing empty
// line for newline-terminated content. Carriage returns are stripped so
// CRLF files compare like LF files.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
