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
	"math"

	"github.com/phylokit/treedist-pipeline/pkg/splits"
)

// infoTable caches log2 double factorials, the building block of
// phylogenetic information content: the number of unrooted binary trees on n
// leaves is (2n-5)!!, and the number containing a given split A|B is
// (2a-3)!!(2b-3)!!. It is per-call scratch, never shared.
type infoTable struct {
	ldf []float64 // ldf[i] = log2((2i-1)!!), so ldf[0] = log2((-1)!!) = 0
}

func newInfoTable(n int) *infoTable {
	size := n + 3
	ldf := make([]float64, size)
	for i := 2; i < size; i++ {
		ldf[i] = ldf[i-1] + math.Log2(float64(2*i-1))
	}
	return &infoTable{ldf: ldf}
}

// logDF returns log2(k!!) for odd k >= -1.
func (it *infoTable) logDF(k int) float64 {
	if k <= 1 {
		return 0
	}
	return it.ldf[(k+1)/2]
}

// splitInfo is the phylogenetic information of a split with side sizes a and
// n-a, in bits: -log2 of the probability that a uniformly random unrooted
// binary tree on n leaves contains it. Trivial splits carry 0 bits.
func (it *infoTable) splitInfo(a, n int) float64 {
	return it.logDF(2*n-5) - it.logDF(2*a-3) - it.logDF(2*(n-a)-3)
}

// jointInfo is -log2 of the probability that a random tree contains two
// nested compatible splits, where the inner side has a1 leaves and the outer
// side a2 >= a1. The count of consistent trees factorizes into the inner
// subtree, the outer remainder, and the caterpillar region between the two
// edges: (2a1-3)!! (2(n-a2)-3)!! (2(a2-a1)-1)!!.
func (it *infoTable) jointInfo(a1, a2, n int) float64 {
	return it.logDF(2*n-5) -
		(it.logDF(2*a1-3) + it.logDF(2*(n-a2)-3) + it.logDF(2*(a2-a1)-1))
}

// sharedPhyloInfo scores a split pair for the SPI metric: h1 + h2 - h(joint)
// for compatible pairs, 0 for conflicting ones.
func sharedPhyloInfo(s1, s2 splits.Bitset, n int, it *infoTable) float64 {
	a1 := s1.Count()
	a2 := s2.Count()
	x11 := s1.IntersectCount(s2)
	x12 := a1 - x11     // A1 ∩ B2
	x21 := a2 - x11     // B1 ∩ A2
	x22 := n - a1 - x21 // B1 ∩ B2

	var inner, outer int
	switch {
	case x12 == 0: // A1 ⊆ A2
		inner, outer = a1, a2
	case x11 == 0: // A1 ⊆ B2
		inner, outer = a1, n-a2
	case x21 == 0: // A2 ⊆ A1
		inner, outer = a2, a1
	case x22 == 0: // B2 ⊆ A1
		inner, outer = n-a2, a1
	default:
		return 0 // conflicting splits share no information
	}

	spi := it.splitInfo(a1, n) + it.splitInfo(a2, n) - it.jointInfo(inner, outer, n)
	if spi < 0 {
		return 0
	}
	return spi
}

// clusterEntropy is the entropy in bits of a 2-way partition with side
// sizes a and n-a.
func clusterEntropy(a, n int) float64 {
	return plogp(a, n) + plogp(n-a, n)
}

func plogp(k, n int) float64 {
	if k == 0 {
		return 0
	}
	p := float64(k) / float64(n)
	return -p * math.Log2(p)
}

// mutualClusterInfo is the mutual information in bits between two splits
// viewed as 2-way clusterings of the same n leaves.
func mutualClusterInfo(s1, s2 splits.Bitset, n int) float64 {
	a1 := s1.Count()
	a2 := s2.Count()
	x11 := s1.IntersectCount(s2)
	x12 := a1 - x11
	x21 := a2 - x11
	x22 := n - a1 - x21

	sizes1 := [2]int{a1, n - a1}
	sizes2 := [2]int{a2, n - a2}
	joint := [2][2]int{{x11, x12}, {x21, x22}}

	mi := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			nij := joint[i][j]
			if nij == 0 {
				continue
			}
			pij := float64(nij) / float64(n)
			mi += pij * math.Log2(float64(n)*float64(nij)/
				(float64(sizes1[i])*float64(sizes2[j])))
		}
	}
	if mi < 0 {
		return 0
	}
	return mi
}

// nyeSimilarity is the Nye et al. set-overlap score: the best of the two
// side alignments, each scored by the worse of its two Jaccard overlaps.
func nyeSimilarity(s1, s2 splits.Bitset, n int) float64 {
	a1 := s1.Count()
	a2 := s2.Count()
	x11 := s1.IntersectCount(s2)
	x12 := a1 - x11
	x21 := a2 - x11
	x22 := n - a1 - x21

	straight := math.Min(jaccard(x11, a1, a2), jaccard(x22, n-a1, n-a2))
	crossed := math.Min(jaccard(x12, a1, n-a2), jaccard(x21, n-a1, a2))
	return math.Max(straight, crossed)
}

func jaccard(inter, a, b int) float64 {
	union := a + b - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// matchingSplitCost counts the leaf moves turning one split into the other:
// the smaller symmetric difference over the two side alignments.
func matchingSplitCost(s1, s2 splits.Bitset, n int) float64 {
	x := s1.XorCount(s2)
	if n-x < x {
		x = n - x
	}
	return float64(x)
}
