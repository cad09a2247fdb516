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

import (
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// RobinsonFoulds compares the canonical non-trivial bipartition collections
// of two trees on an identical leaf set by exact overlap: canonical
// orientation makes equal splits compare equal, so no matching is needed.
//
// Returned keys: rf (symmetric difference size), max_rf (total split count),
// norm_rf (rf/max_rf), common_splits, treedist_size (shared leaf count).
func RobinsonFoulds(t1, t2 *tree.Tree) (map[string]float64, error) {
	frame, err := sharedTaxa(t1, t2, true)
	if err != nil {
		return nil, err
	}

	splits1 := frame.encodeSplits(t1)
	splits2 := frame.encodeSplits(t2)

	in2 := make(map[string]struct{}, len(splits2))
	for _, s := range splits2 {
		in2[s.Key()] = struct{}{}
	}
	common := 0
	for _, s := range splits1 {
		if _, ok := in2[s.Key()]; ok {
			common++
		}
	}

	rf := float64(len(splits1) + len(splits2) - 2*common)
	maxRF := float64(len(splits1) + len(splits2))
	normRF := 0.0
	if maxRF > 0 {
		normRF = rf / maxRF
	}
	return map[string]float64{
		"rf":            rf,
		"max_rf":        maxRF,
		"norm_rf":       normRF,
		"common_splits": float64(common),
		"treedist_size": float64(frame.len()),
	}, nil
}
