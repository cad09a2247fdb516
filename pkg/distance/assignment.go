/*
 * Copyright (C) 2022 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package distance

import "math"

// solveAssignment computes a minimum-cost perfect matching of rows to
// columns (the linear assignment problem) with the O(n³) shortest
// augmenting path formulation of the Hungarian algorithm, using row and
// column potentials. It requires len(cost) <= len(cost[0]); callers pad
// shorter dimensions. The returned slice maps each row to its column.
func solveAssignment(cost [][]float64) ([]int, float64) {
	n := len(cost)
	if n == 0 {
		return nil, 0
	}
	m := len(cost[0])

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	matchedRow := make([]int, m+1) // column j -> row matched to it (1-based)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		matchedRow[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := matchedRow[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= m; j++ {
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
			for j := 0; j <= m; j++ {
				if used[j] {
					u[matchedRow[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if matchedRow[j0] == 0 {
				break
			}
		}
		// augment along the found path
		for j0 != 0 {
			j1 := way[j0]
			matchedRow[j0] = matchedRow[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	total := 0.0
	for j := 1; j <= m; j++ {
		if matchedRow[j] > 0 {
			assignment[matchedRow[j]-1] = j - 1
			total += cost[matchedRow[j]-1][j-1]
		}
	}
	return assignment, total
}

// maximizeAssignment solves the profit-maximizing variant by negation.
func maximizeAssignment(profit [][]float64) ([]int, float64) {
	n := len(profit)
	if n == 0 {
		return nil, 0
	}
	cost := make([][]float64, n)
	for i, row := range profit {
		cost[i] = make([]float64, len(row))
		for j, p := range row {
			cost[i][j] = -p
		}
	}
	assignment, total := solveAssignment(cost)
	return assignment, -total
}
