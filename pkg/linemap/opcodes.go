package linemap

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Op is an operation aligning a run of old lines with a run of new lines.
type Op int

// Operations from the old version to the new version.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
	OpReplace
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Opcode is one aligned run. Ranges are half-open, zero-based indexes into
// the respective FileVersion.
//
// Invariants (enforced by the adapter):
//   - consecutive opcodes tile both sides: no gaps, no overlaps
//   - OldLo..OldHi and NewLo..NewHi jointly cover [0, len(old)) and
//     [0, len(new)) in order
type Opcode struct {
	Op    Op
	OldLo int
	OldHi int
	NewLo int
	NewHi int
}

// opcodes aligns the normalized forms of both versions using difflib's
// SequenceMatcher with autojunk disabled. When several equally long
// alignments exist the matcher prefers the earliest one, which keeps runs
// reproducible across invocations.
func opcodes(old, new FileVersion) []Opcode {
	a := make([]string, len(old))
	for i, rec := range old {
		a[i] = rec.Norm
	}
	b := make([]string, len(new))
	for i, rec := range new {
		b[i] = rec.Norm
	}

	matcher := difflib.NewMatcherWithJunk(a, b, false, nil)
	raw := matcher.GetOpCodes()

	out := make([]Opcode, 0, len(raw))
	for _, oc := range raw {
		var op Op
		switch oc.Tag {
		case 'e':
			op = OpEqual
		case 'r':
			op = OpReplace
		case 'd':
			op = OpDelete
		case 'i':
			op = OpInsert
		default:
			panic(fmt.Sprintf("linemap: unexpected opcode tag %q", oc.Tag))
		}
		out = append(out, Opcode{Op: op, OldLo: oc.I1, OldHi: oc.I2, NewLo: oc.J1, NewHi: oc.J2})
	}

	checkOpcodeCoverage(out, len(a), len(b))
	return out
}

// checkOpcodeCoverage panics if the opcode list does not tile both ranges.
// A violation here means the differ broke its contract, which nothing
// downstream can recover from.
func checkOpcodeCoverage(ops []Opcode, oldLen, newLen int) {
	oldPos, newPos := 0, 0
	for _, oc := range ops {
		if oc.OldLo != oldPos || oc.NewLo != newPos {
			panic(fmt.Sprintf("linemap: opcode gap or overlap at %+v (want old %d, new %d)", oc, oldPos, newPos))
		}
		if oc.OldHi < oc.OldLo || oc.NewHi < oc.NewLo {
			panic(fmt.Sprintf("linemap: inverted opcode range %+v", oc))
		}
		oldPos, newPos = oc.OldHi, oc.NewHi
	}
	if oldPos != oldLen || newPos != newLen {
		panic(fmt.Sprintf("linemap: opcodes cover old %d/%d, new %d/%d", oldPos, oldLen, newPos, newLen))
	}
}
