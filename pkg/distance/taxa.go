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
	"sort"

	"github.com/phylokit/treedist-pipeline/pkg/splits"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// taxa is the shared leaf-name frame two trees are compared in. Positions
// are assigned by sorted name so both trees encode their splits over the
// same bit layout.
type taxa struct {
	names []string
	pos   map[string]int
}

// sharedTaxa verifies the leaf-overlap precondition and builds the common
// frame. With strict set, any asymmetry is a *LeafSetMismatchError; without
// it only an empty intersection is.
func sharedTaxa(t1, t2 *tree.Tree, strict bool) (*taxa, error) {
	names1 := t1.LeafNames()
	names2 := t2.LeafNames()
	set1 := make(map[string]struct{}, len(names1))
	for _, n := range names1 {
		set1[n] = struct{}{}
	}
	set2 := make(map[string]struct{}, len(names2))
	for _, n := range names2 {
		set2[n] = struct{}{}
	}

	var only1, only2, shared []string
	for _, n := range names1 {
		if _, ok := set2[n]; ok {
			shared = append(shared, n)
		} else {
			only1 = append(only1, n)
		}
	}
	for _, n := range names2 {
		if _, ok := set1[n]; !ok {
			only2 = append(only2, n)
		}
	}

	if strict && (len(only1) > 0 || len(only2) > 0) {
		return nil, &LeafSetMismatchError{OnlyTree1: only1, OnlyTree2: only2, Strict: true}
	}
	if len(shared) == 0 {
		return nil, &LeafSetMismatchError{OnlyTree1: only1, OnlyTree2: only2}
	}

	sort.Strings(shared)
	frame := &taxa{names: shared, pos: make(map[string]int, len(shared))}
	for i, n := range shared {
		frame.pos[n] = i
	}
	return frame, nil
}

func (f *taxa) len() int { return len(f.names) }

// encodeSplits returns the tree's non-trivial leaf splits as bitsets over
// the shared frame, oriented so the side not holding taxon 0 is stored, and
// deduplicated. Leaves outside the frame must have been pruned beforehand.
func (f *taxa) encodeSplits(t *tree.Tree) []splits.Bitset {
	sets := splits.LeafSets(t)
	ntips := t.NTips()
	leafPos := make([]int, ntips)
	for i, leaf := range t.Leaves() {
		leafPos[i] = f.pos[leaf.Name]
	}

	var out []splits.Bitset
	seen := map[string]struct{}{}
	for _, n := range t.Nodes() {
		if n.IsRoot() {
			continue
		}
		below := sets[n.Idx()]
		cnt := below.Count()
		if cnt < 2 || ntips-cnt < 2 {
			continue
		}
		enc := splits.NewBitset(f.len())
		for _, idx := range below.Indices() {
			enc.Set(leafPos[idx])
		}
		if enc.Has(0) {
			enc = enc.Complement(f.len())
		}
		if _, dup := seen[enc.Key()]; dup {
			continue
		}
		seen[enc.Key()] = struct{}{}
		out = append(out, enc)
	}
	return out
}

// restrict prunes both trees to the shared frame when their leaf sets
// differ, returning trees safe to encode.
func (f *taxa) restrict(t1, t2 *tree.Tree) (*tree.Tree, *tree.Tree, error) {
	r1, r2 := t1, t2
	var err error
	if t1.NTips() != f.len() {
		if r1, err = t1.Prune(f.names, false); err != nil {
			return nil, nil, err
		}
	}
	if t2.NTips() != f.len() {
		if r2, err = t2.Prune(f.names, false); err != nil {
			return nil, nil, err
		}
	}
	return r1, r2, nil
}
