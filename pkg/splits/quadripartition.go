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
	"strings"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Quadripartition is the 4-way refinement of an internal edge: the two
// child subtrees below it and the two subtrees above it, as four disjoint
// label sets (A,B | C,D).
type Quadripartition struct {
	A, B []string // below the edge
	C, D []string // above the edge

	key string
}

func (q Quadripartition) Key() string { return q.key }

func (q Quadripartition) String() string {
	return strings.Join(q.A, ",") + " " + strings.Join(q.B, ",") +
		" | " + strings.Join(q.C, ",") + " " + strings.Join(q.D, ",")
}

// Quadripartitions enumerates one quadripartition per internal edge. On a
// basal multifurcation the above-parts of a root-adjacent edge are formed
// from the other root children (one subtree vs the union of the rest); the
// root-adjacent edges of a 2-child root are skipped since nothing lies
// beyond them. The Contract option collapses each part to the label of the
// node nearest the edge.
func Quadripartitions(t *tree.Tree, opts *api.SplitOptions) *Collection[Quadripartition] {
	o := normalizeOptions(opts)
	sets := LeafSets(t)
	lab := newLabeler(t, o.Feature, sets)
	rooted := t.Rooted()
	col := newCollection[Quadripartition](o.Collection)

	for _, v := range t.Nodes() {
		if v.IsLeaf() || v.IsRoot() || len(v.Children()) < 2 {
			continue
		}
		p := v.Parent()
		if p.IsRoot() && rooted {
			continue
		}

		children := v.Children()
		var sibs []*tree.Node
		for _, c := range p.Children() {
			if c != v {
				sibs = append(sibs, c)
			}
		}

		var below, above [2]part
		below[0] = subtreePart(children[0], sets, lab, o.Contract)
		below[1] = unionPart(children[1:], sets, lab, o.Contract)

		if p.IsRoot() {
			// basal multifurcation: at least two other root children
			above[0] = subtreePart(sibs[0], sets, lab, o.Contract)
			above[1] = unionPart(sibs[1:], sets, lab, o.Contract)
		} else {
			above[0] = unionPart(sibs, sets, lab, o.Contract)
			above[1] = complementPart(t, p, sets, lab, o.Contract)
		}

		col.add(buildQuadripartition(below, above, o.CanonicalSort))
	}

	if o.Collection == api.CollectionSequence && o.CanonicalSort {
		col.sortCanonical()
	}
	return col
}

// part is one of the four label sets, plus the metadata canonicalization
// sorts by.
type part struct {
	labels []string
	size   int
	min    string
}

func newPart(labels []string) part {
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	minLbl := ""
	if len(sorted) > 0 {
		minLbl = sorted[0]
	}
	return part{labels: sorted, size: len(sorted), min: minLbl}
}

func subtreePart(n *tree.Node, sets []Bitset, lab *labeler, contract bool) part {
	if contract {
		return newPart([]string{lab.node(n)})
	}
	return newPart(leafLabels(sets[n.Idx()], lab))
}

func unionPart(ns []*tree.Node, sets []Bitset, lab *labeler, contract bool) part {
	if contract {
		labels := make([]string, len(ns))
		for i, n := range ns {
			labels[i] = lab.node(n)
		}
		return newPart(labels)
	}
	if len(ns) == 0 {
		return newPart(nil)
	}
	union := sets[ns[0].Idx()].Clone()
	for _, n := range ns[1:] {
		union.OrInPlace(sets[n.Idx()])
	}
	return newPart(leafLabels(union, lab))
}

// complementPart covers everything above p: the whole leaf set minus p's
// subtree. Contracted, it is p's parent, the node nearest the edge from the
// far side.
func complementPart(t *tree.Tree, p *tree.Node, sets []Bitset, lab *labeler, contract bool) part {
	if contract {
		return newPart([]string{lab.node(p.Parent())})
	}
	return newPart(leafLabels(sets[p.Idx()].Complement(t.NTips()), lab))
}

func leafLabels(side Bitset, lab *labeler) []string {
	idxs := side.Indices()
	labels := make([]string, len(idxs))
	for i, idx := range idxs {
		labels[i] = lab.leaf(idx)
	}
	return labels
}

// buildQuadripartition canonicalizes within pairs (smaller part first, ties
// by smallest label) and across pairs (lower total size, then lower minimum
// label, first). The key always uses the canonical form; the rendered parts
// keep natural order unless canonical output was requested.
func buildQuadripartition(below, above [2]part, canonical bool) Quadripartition {
	cb, ca := below, above
	orderPair(&cb)
	orderPair(&ca)
	if pairLess(ca, cb) {
		cb, ca = ca, cb
	}
	key := strings.Join(cb[0].labels, ",") + "|" + strings.Join(cb[1].labels, ",") +
		"||" + strings.Join(ca[0].labels, ",") + "|" + strings.Join(ca[1].labels, ",")

	if canonical {
		below, above = cb, ca
	}
	return Quadripartition{
		A: below[0].labels, B: below[1].labels,
		C: above[0].labels, D: above[1].labels,
		key: key,
	}
}

func orderPair(p *[2]part) {
	if partLess(p[1], p[0]) {
		p[0], p[1] = p[1], p[0]
	}
}

func partLess(a, b part) bool {
	if a.size != b.size {
		return a.size < b.size
	}
	return a.min < b.min
}

func pairLess(a, b [2]part) bool {
	ta, tb := a[0].size+a[1].size, b[0].size+b[1].size
	if ta != tb {
		return ta < tb
	}
	ma, mb := a[0].min, b[0].min
	if a[1].min < ma {
		ma = a[1].min
	}
	if b[1].min < mb {
		mb = b[1].min
	}
	return ma < mb
}
