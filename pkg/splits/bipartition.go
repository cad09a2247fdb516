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

	log "github.com/sirupsen/logrus"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Bipartition is the division of a tree's leaves into two disjoint groups
// induced by removing one edge. Splits are derived on demand and never
// cached on a node.
type Bipartition struct {
	Left  []string
	Right []string

	// key is the canonical identity of the split, independent of rooting,
	// rotation, and the natural/canonical output choice.
	key string
}

func (b Bipartition) Key() string { return b.key }

func (b Bipartition) String() string {
	return strings.Join(b.Left, ",") + " | " + strings.Join(b.Right, ",")
}

// Keyed is anything with a canonical string identity.
type Keyed interface{ Key() string }

// Collection holds enumerator output either as an unordered deduplicated set
// or as an ordered sequence. Both deduplicate by canonical key, since a tree
// has exactly one split per edge no matter how it is rooted.
type Collection[T Keyed] struct {
	Kind  api.CollectionType
	Items []T
	keys  map[string]int
}

func newCollection[T Keyed](kind api.CollectionType) *Collection[T] {
	return &Collection[T]{Kind: kind, keys: map[string]int{}}
}

func (c *Collection[T]) add(item T) {
	k := item.Key()
	if _, dup := c.keys[k]; dup {
		return
	}
	c.keys[k] = len(c.Items)
	c.Items = append(c.Items, item)
}

func (c *Collection[T]) Len() int { return len(c.Items) }

func (c *Collection[T]) Has(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// Keys returns the canonical keys in sorted order.
func (c *Collection[T]) Keys() []string {
	out := make([]string, 0, len(c.keys))
	for k := range c.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c *Collection[T]) sortCanonical() {
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].Key() < c.Items[j].Key() })
	for i, item := range c.Items {
		c.keys[item.Key()] = i
	}
}

// normalizeOptions applies defaults and downgrades contradictory option
// combinations to the nearest valid configuration, logging the downgrade.
// An unordered set cannot express the canonical collection order, so that
// request becomes an ordered sequence.
func normalizeOptions(opts *api.SplitOptions) api.SplitOptions {
	var o api.SplitOptions
	if opts != nil {
		o = *opts
	}
	if o.Collection == "" {
		o.Collection = api.CollectionSet
	}
	if o.Collection == api.CollectionSet && o.CanonicalSort {
		log.WithField("collection", o.Collection).
			Warn("canonical order cannot be expressed by an unordered set, downgrading to sequence")
		o.Collection = api.CollectionSequence
	}
	return o
}

// Bipartitions enumerates the non-trivial splits of the topology: one per
// edge, excluding the root (it delimits no edge; for a rooted tree its two
// children map to the same edge and deduplicate) and, unless requested,
// excluding singleton splits, which are implicit for every leaf.
//
// With CanonicalSort the sides of a split are ordered shorter-first (ties by
// smallest leaf label), items within a side sorted by label, and the
// collection sorted by split key. This ordering, and only this ordering, is
// invariant to rerooting and child rotation.
func Bipartitions(t *tree.Tree, opts *api.SplitOptions) *Collection[Bipartition] {
	o := normalizeOptions(opts)
	sets := LeafSets(t)
	lab := newLabeler(t, o.Feature, sets)
	ntips := t.NTips()
	col := newCollection[Bipartition](o.Collection)

	for _, n := range t.Nodes() {
		if n.IsRoot() {
			continue
		}
		below := sets[n.Idx()]
		cnt := below.Count()
		if cnt == 0 || cnt == ntips {
			continue
		}
		if !o.IncludeSingletons && (cnt == 1 || cnt == ntips-1) {
			continue
		}
		col.add(buildBipartition(t, below, lab, &o))
	}

	if o.Collection == api.CollectionSequence && o.CanonicalSort {
		col.sortCanonical()
	}
	return col
}

func buildBipartition(t *tree.Tree, below Bitset, lab *labeler, o *api.SplitOptions) Bipartition {
	above := below.Complement(t.NTips())
	left := sideLabels(t, below, lab, o.IncludeInternalNodes)
	right := sideLabels(t, above, lab, o.IncludeInternalNodes)

	// canonical identity, computed regardless of the output ordering
	canonLeft, canonRight := canonicalSides(below, above, lab)
	key := strings.Join(canonLeft, ",") + "|" + strings.Join(canonRight, ",")

	if o.CanonicalSort {
		sort.Strings(left)
		sort.Strings(right)
		if sideLess(above, below, lab) {
			left, right = right, left
		}
	}
	return Bipartition{Left: left, Right: right, key: key}
}

// canonicalSides renders the leaf-only sides in canonical orientation:
// shorter side first, ties broken by smallest leaf label, labels sorted.
func canonicalSides(below, above Bitset, lab *labeler) ([]string, []string) {
	left := leafLabelsSorted(below, lab)
	right := leafLabelsSorted(above, lab)
	if sideLess(above, below, lab) {
		left, right = right, left
	}
	return left, right
}

func leafLabelsSorted(side Bitset, lab *labeler) []string {
	idxs := side.Indices()
	labels := make([]string, len(idxs))
	for i, idx := range idxs {
		labels[i] = lab.leaf(idx)
	}
	sort.Strings(labels)
	return labels
}

// sideLess reports whether side a canonically precedes side b: fewer leaves
// first, ties broken by the smallest leaf label.
func sideLess(a, b Bitset, lab *labeler) bool {
	ca, cb := a.Count(), b.Count()
	if ca != cb {
		return ca < cb
	}
	return minLabel(a, lab) < minLabel(b, lab)
}

func minLabel(side Bitset, lab *labeler) string {
	lowest := ""
	for _, idx := range side.Indices() {
		if l := lab.leaf(idx); lowest == "" || l < lowest {
			lowest = l
		}
	}
	return lowest
}
