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
	"gonum.org/v1/gonum/stat/combin"

	"github.com/phylokit/treedist-pipeline/pkg/splits"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// QuartetStatus counts every possible 4-leaf quartet of two trees on the
// same n leaves: resolved identically (S), resolved differently (D),
// resolved only in tree 1 (R1), only in tree 2 (R2), or unresolved in both
// (U). The counts always satisfy S+D+R1+R2+U = N = C(n,4).
type QuartetStatus struct {
	S, D, R1, R2, U int
	N               int
}

// quartet pairings over four sorted leaves i<j<k<l
const (
	unresolved = iota
	pairIJ     // ij|kl
	pairIK     // ik|jl
	pairIL     // il|jk
)

// ClassifyQuartets enumerates all C(n,4) leaf choices and the grouping each
// tree induces on them. Polytomies leave quartets unresolved; they are
// counted, never skipped.
func ClassifyQuartets(t1, t2 *tree.Tree) (QuartetStatus, error) {
	frame, err := sharedTaxa(t1, t2, true)
	if err != nil {
		return QuartetStatus{}, err
	}
	n := frame.len()
	if n < 4 {
		return QuartetStatus{}, nil
	}
	status := QuartetStatus{N: combin.Binomial(n, 4)}

	splits1 := frame.encodeSplits(t1)
	splits2 := frame.encodeSplits(t2)

	gen := combin.NewCombinationGenerator(n, 4)
	leaves := make([]int, 4)
	for gen.Next() {
		gen.Combination(leaves)
		r1 := resolveQuartet(splits1, leaves, n)
		r2 := resolveQuartet(splits2, leaves, n)
		switch {
		case r1 == unresolved && r2 == unresolved:
			status.U++
		case r2 == unresolved:
			status.R1++
		case r1 == unresolved:
			status.R2++
		case r1 == r2:
			status.S++
		default:
			status.D++
		}
	}
	return status, nil
}

// resolveQuartet finds the pairing a tree's splits induce on four leaves: a
// split resolves them iff it separates them 2 vs 2. All splits of one tree
// are mutually compatible, so the first hit is authoritative.
func resolveQuartet(treeSplits []splits.Bitset, leaves []int, n int) int {
	for _, s := range treeSplits {
		var inside [4]bool
		cnt := 0
		for i, leaf := range leaves {
			if s.Has(leaf) {
				inside[i] = true
				cnt++
			}
		}
		if cnt != 2 {
			continue
		}
		switch {
		case inside[0] && inside[1], !inside[0] && !inside[1]:
			return pairIJ
		case inside[0] && inside[2], !inside[0] && !inside[2]:
			return pairIK
		default:
			return pairIL
		}
	}
	return unresolved
}

// Metrics derives the named ratio statistics of the quartet classification
// (Estabrook et al. resolution table). Division by an empty denominator
// yields 0, which only happens on degenerate inputs.
func (q QuartetStatus) Metrics() map[string]float64 {
	n := float64(q.N)
	s, d := float64(q.S), float64(q.D)
	r1, r2, u := float64(q.R1), float64(q.R2), float64(q.U)

	m := map[string]float64{
		"quartets_total": n,
		"quartets_s":     s,
		"quartets_d":     d,
		"quartets_r1":    r1,
		"quartets_r2":    r2,
		"quartets_u":     u,
	}
	if q.N == 0 {
		return m
	}
	m["explicitly_agree"] = s / n
	m["do_not_conflict"] = (n - d) / n
	m["steel_and_penny"] = (s + u) / n
	m["quartet_divergence"] = 1 - (2*d+r1+r2)/(2*n)
	m["similarity_to_reference"] = (s + (r1+r2+u)/3) / n
	if s+d > 0 {
		m["strict_joint_assertions"] = s / (s + d)
	} else {
		m["strict_joint_assertions"] = 0
	}
	if s+d+u > 0 {
		m["semistrict_joint_assertions"] = s / (s + d + u)
	} else {
		m["semistrict_joint_assertions"] = 0
	}
	if 2*d+2*s+r1+r2 > 0 {
		m["symmetric_difference"] = 1 - (2*d+r1+r2)/(2*d+2*s+r1+r2)
	} else {
		m["symmetric_difference"] = 0
	}
	return m
}
