package linemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ANSI color codes
const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiReset = "\033[0m"
)

// FormatMapping renders a Result as one "old -> new" line per old line,
// with "-" standing in for a missing side, followed by one "- -> new" line
// per inserted line.
func FormatMapping(res *Result) string {
	var b strings.Builder
	oldNumbers := make([]int, 0, len(res.Mapping))
	for oldLine := range res.Mapping {
		oldNumbers = append(oldNumbers, oldLine)
	}
	sort.Ints(oldNumbers)
	for _, oldLine := range oldNumbers {
		newLine := res.Mapping[oldLine]
		if newLine == Deleted {
			fmt.Fprintf(&b, "%d -> -\n", oldLine)
		} else {
			fmt.Fprintf(&b, "%d -> %d\n", oldLine, newLine)
		}
	}
	for _, newLine := range res.Inserted {
		fmt.Fprintf(&b, "- -> %d\n", newLine)
	}
	return b.String()
}

// RenderResult renders the mapping alongside line content. With color
// enabled, deletions are red, insertions green, and assignment matches show
// an intra-line character diff between the old and new text so the edit
// that survived matching is visible.
func RenderResult(oldLines, newLines []string, res *Result, color bool) string {
	newByOld := make(map[int]Match, len(res.Matches))
	for _, m := range res.Matches {
		newByOld[m.OldLine] = m
	}

	var b strings.Builder
	dmp := diffmatchpatch.New()

	for i, text := range oldLines {
		oldLine := i + 1
		newLine := res.Mapping[oldLine]
		if newLine == Deleted {
			line := fmt.Sprintf("%4d -> %4s  %s", oldLine, "-", text)
			if color {
				line = ansiRed + line + ansiReset
			}
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		m := newByOld[oldLine]
		content := text
		if m.Provenance == ProvenanceAssignment && newLine >= 1 && newLine <= len(newLines) {
			content = renderLineDiff(dmp, text, newLines[newLine-1], color)
		}
		fmt.Fprintf(&b, "%4d -> %4d  %s\n", oldLine, newLine, content)
	}

	for _, newLine := range res.Inserted {
		text := ""
		if newLine >= 1 && newLine <= len(newLines) {
			text = newLines[newLine-1]
		}
		line := fmt.Sprintf("%4s -> %4d  %s", "-", newLine, text)
		if color {
			line = ansiGreen + line + ansiReset
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// renderLineDiff shows a single old line with its matched new line's edits
// applied inline: removed spans red, added spans green.
func renderLineDiff(dmp *diffmatchpatch.DiffMatchPatch, oldText, newText string, color bool) string {
	if oldText == newText {
		return oldText
	}
	if !color {
		return oldText + " => " + newText
	}
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(ansiRed)
			b.WriteString(d.Text)
			b.WriteString(ansiReset)
		case diffmatchpatch.DiffInsert:
			b.WriteString(ansiGreen)
			b.WriteString(d.Text)
			b.WriteString(ansiReset)
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
