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

package splits

import (
	"sort"
	"strconv"
	"strings"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// LeafSets computes, for every node idx, the set of leaf idx below it: the
// per-call scratch cache of the enumerator. The idx-order walk guarantees
// children are handled before their parents.
func LeafSets(t *tree.Tree) []Bitset {
	sets := make([]Bitset, t.NNodes())
	for _, n := range t.Nodes() {
		b := NewBitset(t.NTips())
		if n.IsLeaf() {
			b.Set(n.Idx())
		} else {
			for _, c := range n.Children() {
				b.OrInPlace(sets[c.Idx()])
			}
		}
		sets[n.Idx()] = b
	}
	return sets
}

// labeler resolves node labels under the configured label source. Unnamed or
// ambiguous internal nodes fall back to their sorted descendant-leaf labels,
// which keeps canonical ordering well-defined when names are not unique.
type labeler struct {
	feature string
	sets    []Bitset
	leaves  []string // label per leaf idx
}

func newLabeler(t *tree.Tree, feature string, sets []Bitset) *labeler {
	l := &labeler{feature: feature, sets: sets}
	l.leaves = make([]string, t.NTips())
	for i, leaf := range t.Leaves() {
		l.leaves[i] = l.explicit(leaf)
	}
	return l
}

// explicit resolves the configured label source without any fallback.
func (l *labeler) explicit(n *tree.Node) string {
	switch l.feature {
	case "", api.FeatureName:
		return n.Name
	case api.FeatureIdx:
		return strconv.Itoa(n.Idx())
	default:
		if f, ok := n.GetFeature(l.feature); ok {
			return f.String()
		}
		return n.Name
	}
}

func (l *labeler) leaf(idx int) string {
	return l.leaves[idx]
}

func (l *labeler) node(n *tree.Node) string {
	if n.IsLeaf() {
		return l.leaves[n.Idx()]
	}
	if lbl := l.explicit(n); lbl != "" {
		return lbl
	}
	below := l.sets[n.Idx()].Indices()
	labels := make([]string, len(below))
	for i, leafIdx := range below {
		labels[i] = l.leaves[leafIdx]
	}
	sort.Strings(labels)
	return "(" + strings.Join(labels, ",") + ")"
}

// sideLabels renders one side of a split: its leaf labels plus, when
// requested, the labels of internal nodes fully contained in the side.
func sideLabels(t *tree.Tree, side Bitset, lab *labeler, includeInternal bool) []string {
	idxs := side.Indices()
	labels := make([]string, 0, len(idxs))
	for _, i := range idxs {
		labels = append(labels, lab.leaf(i))
	}
	if includeInternal {
		for _, n := range t.Nodes()[t.NTips():] {
			if n.IsRoot() {
				continue
			}
			if lab.sets[n.Idx()].IsSubset(side) {
				labels = append(labels, lab.node(n))
			}
		}
	}
	return labels
}
