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
	"iter"
	"sort"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Quartet is a 4-leaf sample with its implied 2+2 grouping: {A1,A2}|{B1,B2}.
type Quartet struct {
	A1, A2 string
	B1, B2 string
}

// Key is the canonical identity: labels sorted within pairs, the pair
// holding the smallest label first.
func (q Quartet) Key() string {
	c := q.canonical()
	return c.A1 + "," + c.A2 + "|" + c.B1 + "," + c.B2
}

func (q Quartet) canonical() Quartet {
	if q.A2 < q.A1 {
		q.A1, q.A2 = q.A2, q.A1
	}
	if q.B2 < q.B1 {
		q.B1, q.B2 = q.B2, q.B1
	}
	if q.B1 < q.A1 {
		q.A1, q.A2, q.B1, q.B2 = q.B1, q.B2, q.A1, q.A2
	}
	return q
}

// Quartets lazily enumerates the quartets the topology resolves. The
// bipartition source samples every pair of 2 leaves from each side of every
// non-trivial split, deduplicating across splits (a 4-leaf combination can
// be induced by more than one edge); the quadripartition source samples one
// leaf per part, yielding the strict subset of deeply resolved quartets.
// Fewer than 4 leaves yield an empty sequence. Callers must not assume the
// full C(ntips,4) set is ever materialized.
func Quartets(t *tree.Tree, opts *api.QuartetOptions, splitOpts *api.SplitOptions) iter.Seq[Quartet] {
	source := api.QuartetsFromBipartitions
	if opts != nil && opts.Source != "" {
		source = opts.Source
	}
	if source == api.QuartetsFromQuadripartitions {
		return quartetsFromQuadripartitions(t, splitOpts)
	}
	return quartetsFromBipartitions(t, splitOpts)
}

func quartetsFromBipartitions(t *tree.Tree, splitOpts *api.SplitOptions) iter.Seq[Quartet] {
	return func(yield func(Quartet) bool) {
		if t.NTips() < 4 {
			return
		}
		o := normalizeOptions(splitOpts)
		sets := LeafSets(t)
		lab := newLabeler(t, o.Feature, sets)
		ntips := t.NTips()
		seen := map[string]struct{}{}
		emitted := map[string]struct{}{}

		for _, n := range t.Nodes() {
			if n.IsRoot() {
				continue
			}
			below := sets[n.Idx()]
			cnt := below.Count()
			if cnt < 2 || ntips-cnt < 2 {
				continue
			}
			if _, dup := seen[below.Key()]; dup {
				continue
			}
			seen[below.Key()] = struct{}{}

			left := below.Indices()
			right := below.Complement(ntips).Indices()
			if !emitSidePairs(left, right, lab, emitted, yield) {
				return
			}
		}
	}
}

// emitSidePairs yields every {2 of left} | {2 of right} grouping not already
// emitted. It reports false once the consumer stops.
func emitSidePairs(left, right []int, lab *labeler, emitted map[string]struct{}, yield func(Quartet) bool) bool {
	lp := combin.NewCombinationGenerator(len(left), 2)
	pair := make([]int, 2)
	for lp.Next() {
		lp.Combination(pair)
		l1, l2 := left[pair[0]], left[pair[1]]
		rp := combin.NewCombinationGenerator(len(right), 2)
		rpair := make([]int, 2)
		for rp.Next() {
			rp.Combination(rpair)
			q := Quartet{
				A1: lab.leaf(l1), A2: lab.leaf(l2),
				B1: lab.leaf(right[rpair[0]]), B2: lab.leaf(right[rpair[1]]),
			}.canonical()
			k := q.Key()
			if _, dup := emitted[k]; dup {
				continue
			}
			emitted[k] = struct{}{}
			if !yield(q) {
				return false
			}
		}
	}
	return true
}

func quartetsFromQuadripartitions(t *tree.Tree, splitOpts *api.SplitOptions) iter.Seq[Quartet] {
	return func(yield func(Quartet) bool) {
		if t.NTips() < 4 {
			return
		}
		// contract must stay off here: each part has to keep its leaves
		var o api.SplitOptions
		if splitOpts != nil {
			o = *splitOpts
		}
		o.Contract = false
		quads := Quadripartitions(t, &o)
		emitted := map[string]struct{}{}

		for _, quad := range quads.Items {
			for _, a := range quad.A {
				for _, b := range quad.B {
					for _, c := range quad.C {
						for _, d := range quad.D {
							q := Quartet{A1: a, A2: b, B1: c, B2: d}.canonical()
							k := q.Key()
							if _, dup := emitted[k]; dup {
								continue
							}
							emitted[k] = struct{}{}
							if !yield(q) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// SortedKeys materializes a quartet sequence into sorted canonical keys,
// mainly for comparisons in tests and exact set operations.
func SortedKeys(seq iter.Seq[Quartet]) []string {
	var keys []string
	for q := range seq {
		keys = append(keys, q.Key())
	}
	sort.Strings(keys)
	return keys
}
