package linemap

import (
	"fmt"
	"math"
)

// assign solves maximum-weight bipartite assignment over the given score
// matrix. The returned slice has one entry per row: the assigned column, or
// -1 when the row ends up matched to padding (possible whenever the matrix
// is not square). Runs in O(n³) for n = max(rows, cols); callers guard
// block sizes before reaching this point.
//
// The solver must succeed on any finite matrix. Non-finite scores mean a
// scoring bug upstream and are treated as fatal.
func assign(scores [][]float64) []int {
	rows := len(scores)
	if rows == 0 {
		return nil
	}
	cols := len(scores[0])
	n := rows
	if cols > n {
		n = cols
	}

	// Pad to a square minimization problem. Padding cells cost 0, real
	// cells cost the negated score, so a maximum-weight matching of the
	// original matrix is a minimum-cost perfect matching here.
	cost := make([][]float64, n)
	for i := range cost {
		cost[i] = make([]float64, n)
		if i >= rows {
			continue
		}
		for j := 0; j < cols; j++ {
			s := scores[i][j]
			if math.IsNaN(s) || math.IsInf(s, 0) {
				panic(fmt.Sprintf("linemap: non-finite score %v at (%d,%d) in assignment matrix", s, i, j))
			}
			cost[i][j] = -s
		}
	}

	colOfRow := hungarian(cost)

	result := make([]int, rows)
	for i := 0; i < rows; i++ {
		j := colOfRow[i]
		if j >= cols {
			j = -1
		}
		result[i] = j
	}
	return result
}

// hungarian computes a minimum-cost perfect matching on an n×n cost matrix
// using the potentials formulation of the Hungarian algorithm. Returns the
// column assigned to each row.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	rowOfCol := make([]int, n+1) // 1-based row currently assigned to column j; 0 = free
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		rowOfCol[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow an alternating tree from row i until a free column is found.
		for {
			used[j0] = true
			i0 := rowOfCol[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if math.IsInf(delta, 1) {
				panic("linemap: assignment solver failed to extend matching on a finite matrix")
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[rowOfCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowOfCol[j0] == 0 {
				break
			}
		}

		// Flip the augmenting path back to the root.
		for j0 != 0 {
			j1 := way[j0]
			rowOfCol[j0] = rowOfCol[j1]
			j0 = j1
		}
	}

	colOfRow := make([]int, n)
	for j := 1; j <= n; j++ {
		if rowOfCol[j] > 0 {
			colOfRow[rowOfCol[j]-1] = j - 1
		}
	}
	return colOfRow
}
