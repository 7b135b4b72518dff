// Package linemap computes a correspondence between the line numbers of an
// old and a new version of the same text, tolerating insertions, deletions,
// reordering, and small edits that defeat purely positional diffing.
//
// The pipeline: each side is normalized into comparable line tokens, the
// two token sequences are aligned into equal/insert/delete/replace runs,
// equal runs become identity anchors, replace runs are resolved by cosine
// similarity and optimal assignment, and the per-run results are assembled
// into one total old→new mapping.
//
// MapLines is pure: no I/O, no shared state, nothing cached across calls.
// Concurrent calls on independent inputs are safe.
package linemap

import (
	"fmt"
	"sort"
)

// MapLines computes the total correspondence between oldLines and newLines.
// Every old line number appears in Result.Mapping exactly once, mapped
// either to a new line number or to Deleted. New lines without a source are
// listed in Result.Inserted.
func MapLines(oldLines, newLines []string, cfg Config) (*Result, error) {
	if oldLines == nil || newLines == nil {
		return nil, fmt.Errorf("%w: old and new line slices must both be non-nil", ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	old := newFileVersion(oldLines)
	new := newFileVersion(newLines)

	var matches []Match
	for _, oc := range opcodes(old, new) {
		switch oc.Op {
		case OpEqual:
			matches = append(matches, anchorRun(old, new, oc)...)
		case OpReplace:
			matches = append(matches, matchReplaceBlock(old, new, oc, cfg)...)
		case OpDelete, OpInsert:
			// Pure one-sided runs need no matching; assemble fills them in.
		}
	}

	return assemble(len(old), len(new), matches), nil
}

// assemble merges per-run matches into the final Result, marking unmatched
// old lines deleted and unmatched new lines inserted. Totality over the old
// line-number domain is guaranteed here.
func assemble(oldLen, newLen int, matches []Match) *Result {
	sort.Slice(matches, func(a, b int) bool { return matches[a].OldLine < matches[b].OldLine })

	mapping := make(Mapping, oldLen)
	for i := 1; i <= oldLen; i++ {
		mapping[i] = Deleted
	}
	matchedNew := make(map[int]bool, len(matches))
	for _, m := range matches {
		mapping[m.OldLine] = m.NewLine
		matchedNew[m.NewLine] = true
	}

	var inserted []int
	for j := 1; j <= newLen; j++ {
		if !matchedNew[j] {
			inserted = append(inserted, j)
		}
	}

	return &Result{Mapping: mapping, Matches: matches, Inserted: inserted}
}
