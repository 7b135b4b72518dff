package linemap

import (
	"math"
	"sort"
)

// termVector is a term-frequency vector over line tokens.
type termVector map[string]float64

func (v termVector) add(tokens []string) {
	for _, t := range tokens {
		v[t]++
	}
}

func (v termVector) norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of two term vectors. An all-zero
// (empty) vector on either side yields 0, never NaN.
func cosine(a, b termVector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	var dot float64
	for term, x := range small {
		if y, ok := large[term]; ok {
			dot += x * y
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm() * b.norm())
}

// contextVector aggregates token frequencies over the lines surrounding
// version[idx], up to window lines on each side. The line itself and blank
// lines contribute nothing. The window deliberately ignores block
// boundaries: unchanged neighbours are the strongest context signal.
func contextVector(version FileVersion, idx, window int) termVector {
	vec := make(termVector)
	lo := idx - window
	if lo < 0 {
		lo = 0
	}
	hi := idx + window
	if hi > len(version)-1 {
		hi = len(version) - 1
	}
	for i := lo; i <= hi; i++ {
		if i == idx || version[i].Blank {
			continue
		}
		vec.add(tokenize(version[i].Norm))
	}
	return vec
}

// pairScore combines content and context similarity into the final score
// for one candidate pair: a weighted base, plus a flat positional bonus
// once the base clears the bonus threshold, capped at 1.0. The bonus is
// deliberately not scaled by distance within the block.
func (c Config) pairScore(contentSim, contextSim float64) float64 {
	base := c.ContentWeight*contentSim + c.ContextWeight*contextSim
	score := base
	if base >= c.PositionalBonusThreshold {
		score = base + c.PositionalBonus
	}
	return math.Min(1.0, score)
}

// matchReplaceBlock resolves one replace run by similarity-scored
// assignment. Only non-blank lines participate; blank lines inside the
// block come out as plain deletions or insertions. A block with either
// side empty of scorable lines skips assignment entirely.
func matchReplaceBlock(old, new FileVersion, oc Opcode, cfg Config) []Match {
	var oldIdx, newIdx []int
	for i := oc.OldLo; i < oc.OldHi; i++ {
		if !old[i].Blank {
			oldIdx = append(oldIdx, i)
		}
	}
	for j := oc.NewLo; j < oc.NewHi; j++ {
		if !new[j].Blank {
			newIdx = append(newIdx, j)
		}
	}
	if len(oldIdx) == 0 || len(newIdx) == 0 {
		return nil
	}

	scores := buildScoreMatrix(old, new, oldIdx, newIdx, cfg)

	exact := cfg.MaxExactAssignmentSize == 0 ||
		(len(oldIdx) <= cfg.MaxExactAssignmentSize && len(newIdx) <= cfg.MaxExactAssignmentSize)

	var assigned []int
	if exact {
		assigned = assign(scores)
	} else {
		assigned = greedyAssign(scores)
	}

	var matches []Match
	for i, j := range assigned {
		if j < 0 {
			continue
		}
		score := scores[i][j]
		if score < cfg.AcceptanceThreshold {
			continue
		}
		matches = append(matches, Match{
			OldLine:    old[oldIdx[i]].Number,
			NewLine:    new[newIdx[j]].Number,
			Score:      score,
			Provenance: ProvenanceAssignment,
		})
	}
	sort.Slice(matches, func(a, b int) bool { return matches[a].OldLine < matches[b].OldLine })
	return matches
}

// buildScoreMatrix computes the full old×new pair score matrix for the
// non-blank lines of one replace block.
func buildScoreMatrix(old, new FileVersion, oldIdx, newIdx []int, cfg Config) [][]float64 {
	oldContent := make([]termVector, len(oldIdx))
	oldContext := make([]termVector, len(oldIdx))
	for i, idx := range oldIdx {
		vec := make(termVector)
		vec.add(tokenize(old[idx].Norm))
		oldContent[i] = vec
		oldContext[i] = contextVector(old, idx, cfg.ContextWindowSize)
	}
	newContent := make([]termVector, len(newIdx))
	newContext := make([]termVector, len(newIdx))
	for j, idx := range newIdx {
		vec := make(termVector)
		vec.add(tokenize(new[idx].Norm))
		newContent[j] = vec
		newContext[j] = contextVector(new, idx, cfg.ContextWindowSize)
	}

	scores := make([][]float64, len(oldIdx))
	for i := range oldIdx {
		row := make([]float64, len(newIdx))
		for j := range newIdx {
			contentSim := cosine(oldContent[i], newContent[j])
			contextSim := cosine(oldContext[i], newContext[j])
			row[j] = cfg.pairScore(contentSim, contextSim)
		}
		scores[i] = row
	}
	return scores
}

// greedyAssign is the cheap fallback for oversized blocks: repeatedly take
// the highest-scoring unconflicted pair. Ties break on score, then old
// index, then new index, so the result is deterministic. Returns, per row,
// the chosen column or -1.
func greedyAssign(scores [][]float64) []int {
	type candidate struct {
		i, j  int
		score float64
	}
	var cands []candidate
	for i, row := range scores {
		for j, s := range row {
			if s > 0 {
				cands = append(cands, candidate{i: i, j: j, score: s})
			}
		}
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].score != cands[b].score {
			return cands[a].score > cands[b].score
		}
		if cands[a].i != cands[b].i {
			return cands[a].i < cands[b].i
		}
		return cands[a].j < cands[b].j
	})

	result := make([]int, len(scores))
	for i := range result {
		result[i] = -1
	}
	usedCols := make(map[int]bool)
	for _, c := range cands {
		if result[c.i] >= 0 || usedCols[c.j] {
			continue
		}
		result[c.i] = c.j
		usedCols[c.j] = true
	}
	return result
}
