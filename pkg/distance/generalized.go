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
	"fmt"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/splits"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Generalized computes one of the information-theoretic split metrics:
// every (split of T1, split of T2) pair is scored, the optimal one-to-one
// pairing is found by linear assignment, and scores are summed along it.
// Trees with different but overlapping leaf sets are restricted to the
// shared leaves first; an empty overlap fails before any computation.
//
// For the similarity families (spi, mci, nye) the output holds the summed
// similarity, the derived distance self1+self2-2*score, and with normalize
// the 0..1 variants against the mean self-score. msd is a plain distance
// with unmatched splits charged their smaller side.
func Generalized(t1, t2 *tree.Tree, metric api.DistanceMetric, normalize bool) (map[string]float64, error) {
	frame, err := sharedTaxa(t1, t2, false)
	if err != nil {
		return nil, err
	}
	r1, r2, err := frame.restrict(t1, t2)
	if err != nil {
		return nil, err
	}
	splits1 := frame.encodeSplits(r1)
	splits2 := frame.encodeSplits(r2)
	n := frame.len()

	if metric == api.MetricMSD {
		return matchingSplit(splits1, splits2, n, normalize), nil
	}

	var pairScore func(a, b splits.Bitset) float64
	var selfScore func(a splits.Bitset) float64
	it := newInfoTable(n)
	switch metric {
	case api.MetricSPI:
		pairScore = func(a, b splits.Bitset) float64 { return sharedPhyloInfo(a, b, n, it) }
		selfScore = func(a splits.Bitset) float64 { return it.splitInfo(a.Count(), n) }
	case api.MetricMCI:
		pairScore = func(a, b splits.Bitset) float64 { return mutualClusterInfo(a, b, n) }
		selfScore = func(a splits.Bitset) float64 { return clusterEntropy(a.Count(), n) }
	case api.MetricNye:
		pairScore = func(a, b splits.Bitset) float64 { return nyeSimilarity(a, b, n) }
		selfScore = func(splits.Bitset) float64 { return 1 }
	default:
		return nil, fmt.Errorf("unknown generalized metric %q", metric)
	}

	size := max(len(splits1), len(splits2))
	score := 0.0
	if size > 0 {
		profit := make([][]float64, size)
		for i := range profit {
			profit[i] = make([]float64, size)
			if i >= len(splits1) {
				continue // padded row: scores stay 0
			}
			for j, s2 := range splits2 {
				profit[i][j] = pairScore(splits1[i], s2)
			}
		}
		_, score = maximizeAssignment(profit)
	}

	self1 := 0.0
	for _, s := range splits1 {
		self1 += selfScore(s)
	}
	self2 := 0.0
	for _, s := range splits2 {
		self2 += selfScore(s)
	}

	name := string(metric)
	out := map[string]float64{
		name:           score,
		name + "_dist": self1 + self2 - 2*score,
	}
	if normalize {
		mean := (self1 + self2) / 2
		if mean > 0 {
			out[name+"_norm"] = score / mean
			out[name+"_dist_norm"] = (self1 + self2 - 2*score) / (self1 + self2)
		} else {
			out[name+"_norm"] = 0
			out[name+"_dist_norm"] = 0
		}
	}
	return out, nil
}

// matchingSplit solves the element-move distance: a square cost matrix over
// both split collections, where a split left unmatched is charged against
// the trivial split, i.e. its smaller side.
func matchingSplit(splits1, splits2 []splits.Bitset, n int, normalize bool) map[string]float64 {
	size := max(len(splits1), len(splits2))
	total := 0.0
	if size > 0 {
		cost := make([][]float64, size)
		for i := range cost {
			cost[i] = make([]float64, size)
			for j := range cost[i] {
				switch {
				case i < len(splits1) && j < len(splits2):
					cost[i][j] = matchingSplitCost(splits1[i], splits2[j], n)
				case i < len(splits1):
					cost[i][j] = minSide(splits1[i], n)
				case j < len(splits2):
					cost[i][j] = minSide(splits2[j], n)
				}
			}
		}
		_, total = solveAssignment(cost)
	}

	out := map[string]float64{"msd": total}
	if normalize {
		bound := 0.0
		for _, s := range splits1 {
			bound += minSide(s, n)
		}
		for _, s := range splits2 {
			bound += minSide(s, n)
		}
		if bound > 0 {
			out["msd_norm"] = total / bound
		} else {
			out["msd_norm"] = 0
		}
	}
	return out
}

func minSide(s splits.Bitset, n int) float64 {
	c := s.Count()
	if n-c < c {
		c = n - c
	}
	return float64(c)
}
