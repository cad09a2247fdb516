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

package tree

// IdxArrays is the read-only view handed to layout and drawing consumers:
// per-node attributes as dense arrays in canonical idx order.
type IdxArrays struct {
	Names    []string
	Dists    []float64
	Supports []float64
	// Parents holds the parent idx of each node, -1 for the root.
	Parents []int
}

// ToIdxArrays flattens the current index into arrays. The result is a
// snapshot: it does not track later edits.
func (t *Tree) ToIdxArrays() IdxArrays {
	n := len(t.nodes)
	arrays := IdxArrays{
		Names:    make([]string, n),
		Dists:    make([]float64, n),
		Supports: make([]float64, n),
		Parents:  make([]int, n),
	}
	for i, node := range t.nodes {
		arrays.Names[i] = node.Name
		arrays.Dists[i] = node.Dist
		arrays.Supports[i] = node.Support
		if node.parent == nil {
			arrays.Parents[i] = -1
		} else {
			arrays.Parents[i] = node.parent.idx
		}
	}
	return arrays
}
