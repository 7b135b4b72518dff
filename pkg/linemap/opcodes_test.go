package linemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodesPartitionBothSides(t *testing.T) {
	old := newFileVersion([]string{"q", "a", "b", "x", "c", "d"})
	new := newFileVersion([]string{"a", "b", "y", "c", "d", "f"})

	ops := opcodes(old, new)
	require.NotEmpty(t, ops)

	want := []Opcode{
		{Op: OpDelete, OldLo: 0, OldHi: 1, NewLo: 0, NewHi: 0},
		{Op: OpEqual, OldLo: 1, OldHi: 3, NewLo: 0, NewHi: 2},
		{Op: OpReplace, OldLo: 3, OldHi: 4, NewLo: 2, NewHi: 3},
		{Op: OpEqual, OldLo: 4, OldHi: 6, NewLo: 3, NewHi: 5},
		{Op: OpInsert, OldLo: 6, OldHi: 6, NewLo: 5, NewHi: 6},
	}
	assert.Equal(t, want, ops)
}

func TestOpcodesAlignNormalizedForms(t *testing.T) {
	// The two sides differ only in whitespace, which normalization removes,
	// so the whole file is a single equal run.
	old := newFileVersion([]string{"foo  bar", "  baz  "})
	new := newFileVersion([]string{"foo bar", "baz"})

	ops := opcodes(old, new)
	require.Len(t, ops, 1)
	assert.Equal(t, OpEqual, ops[0].Op)
}

func TestOpcodesBothEmpty(t *testing.T) {
	ops := opcodes(newFileVersion(nil), newFileVersion(nil))
	assert.Empty(t, ops)
}

func TestOpcodesPrefersEarliestRun(t *testing.T) {
	// "foo" appears twice; the matcher must anchor the earliest occurrence
	// so repeated runs stay reproducible.
	old := newFileVersion([]string{"foo", "bar"})
	new := newFileVersion([]string{"bar", "foo"})

	ops := opcodes(old, new)
	want := []Opcode{
		{Op: OpInsert, OldLo: 0, OldHi: 0, NewLo: 0, NewHi: 1},
		{Op: OpEqual, OldLo: 0, OldHi: 1, NewLo: 1, NewHi: 2},
		{Op: OpDelete, OldLo: 1, OldHi: 2, NewLo: 2, NewHi: 2},
	}
	assert.Equal(t, want, ops)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "equal", OpEqual.String())
	assert.Equal(t, "replace", OpReplace.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "insert", OpInsert.String())
}
