package linemap

// anchorRun resolves one equal run: the old line at offset k within the run
// corresponds to the new line at offset k. No scoring happens here; lines
// identical under normalization are anchors and always score 1.0.
func anchorRun(old, new FileVersion, oc Opcode) []Match {
	n := oc.OldHi - oc.OldLo
	matches := make([]Match, 0, n)
	for k := 0; k < n; k++ {
		matches = append(matches, Match{
			OldLine:    old[oc.OldLo+k].Number,
			NewLine:    new[oc.NewLo+k].Number,
			Score:      1.0,
			Provenance: ProvenanceAnchor,
		})
	}
	return matches
}
