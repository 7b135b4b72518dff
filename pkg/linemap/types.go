package linemap

// Provenance records how a match was produced.
type Provenance string

// Match provenances.
const (
	// ProvenanceAnchor marks matches taken directly from an equal run of the
	// underlying diff. Anchor matches always have score 1.0.
	ProvenanceAnchor Provenance = "anchor"
	// ProvenanceAssignment marks matches produced by similarity-scored
	// assignment inside a replace block.
	ProvenanceAssignment Provenance = "assignment"
)

// Deleted is the Mapping value for an old line with no counterpart in the
// new version.
const Deleted = -1

// LineRecord is a single line of one file version. Records are built once
// per MapLines call and never mutated.
type LineRecord struct {
	Number int    // 1-based line number within its own version
	Text   string // raw line content as passed by the caller
	Norm   string // whitespace-normalized form used for comparison
	Blank  bool   // true when Norm is empty
}

// FileVersion is the ordered sequence of line records for one side of a
// comparison.
type FileVersion []LineRecord

// Match is a resolved correspondence between one old line and one new line.
type Match struct {
	OldLine    int
	NewLine    int
	Score      float64
	Provenance Provenance
}

// Mapping maps every old line number to its new line number, or to Deleted.
// It is total over [1, len(old)]. New line numbers that never appear as a
// value are implicitly inserted lines.
type Mapping map[int]int

// Result is the full outcome of MapLines.
type Result struct {
	Mapping  Mapping
	Matches  []Match // resolved pairs, ordered by old line number
	Inserted []int   // new line numbers with no old source, ascending
}
