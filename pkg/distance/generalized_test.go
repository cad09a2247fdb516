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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/test"
)

func TestSPISelfComparison(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafRooted)

	row, err := Generalized(t1, t2, api.MetricSPI, true)
	require.NoError(t, err)
	// three 2|4 splits, log2(7) bits each
	require.InDelta(t, 3*math.Log2(7), row["spi"], 1e-9)
	require.InDelta(t, 0.0, row["spi_dist"], 1e-9)
	require.InDelta(t, 1.0, row["spi_norm"], 1e-9)
	require.InDelta(t, 0.0, row["spi_dist_norm"], 1e-9)
}

func TestMCISelfComparison(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafRooted)

	row, err := Generalized(t1, t2, api.MetricMCI, false)
	require.NoError(t, err)
	require.InDelta(t, 3*clusterEntropy(2, 6), row["mci"], 1e-9)
	require.InDelta(t, 0.0, row["mci_dist"], 1e-9)
	require.NotContains(t, row, "mci_norm")
}

func TestNyeAgainstStar(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	star := test.Parse(t, test.SixLeafStar)

	row, err := Generalized(t1, star, api.MetricNye, false)
	require.NoError(t, err)
	// nothing to match against: score 0, distance is t1's own 3 splits
	require.Equal(t, 0.0, row["nye"])
	require.Equal(t, 3.0, row["nye_dist"])
}

func TestSPIPrefersTheCompatibleAssignment(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	row, err := Generalized(t1, t2, api.MetricSPI, true)
	require.NoError(t, err)
	// {e,f} matches exactly; the remaining pairs all conflict
	require.InDelta(t, math.Log2(7), row["spi"], 1e-9)
	require.InDelta(t, 2*3*math.Log2(7)-2*math.Log2(7), row["spi_dist"], 1e-9)
	require.Greater(t, row["spi_dist_norm"], 0.0)
	require.Less(t, row["spi_dist_norm"], 1.0)
}

func TestGeneralizedRestrictsToSharedLeaves(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.ExtraLeafSeven) // same topology plus leaf g

	row, err := Generalized(t1, t2, api.MetricSPI, false)
	require.NoError(t, err)
	// pruning g makes the trees identical
	require.InDelta(t, 0.0, row["spi_dist"], 1e-9)
}

func TestGeneralizedDisjointLeafSets(t *testing.T) {
	t1 := test.Parse(t, "((a,b),(c,d));")
	t2 := test.Parse(t, "((w,x),(y,z));")

	_, err := Generalized(t1, t2, api.MetricSPI, false)
	var mismatch *LeafSetMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.False(t, mismatch.Strict)
}

func TestMatchingSplitDistance(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	row, err := Generalized(t1, t2, api.MetricMSD, true)
	require.NoError(t, err)
	// {e,f} pairs at cost 0; {a,b}/{a,c} and {c,d}/{b,d} swap one leaf
	// each way, two moves per pair
	require.Equal(t, 4.0, row["msd"])
	require.InDelta(t, 4.0/12.0, row["msd_norm"], 1e-12)
}

func TestMatchingSplitIdentical(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafRooted)

	row, err := Generalized(t1, t2, api.MetricMSD, true)
	require.NoError(t, err)
	require.Equal(t, 0.0, row["msd"])
	require.Equal(t, 0.0, row["msd_norm"])
}

func TestMatchingSplitChargesUnmatched(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	star := test.Parse(t, test.SixLeafStar)

	row, err := Generalized(t1, star, api.MetricMSD, false)
	require.NoError(t, err)
	// three unmatched 2|4 splits, each charged its smaller side
	require.Equal(t, 6.0, row["msd"])
}

func TestGeneralizedStarVsStar(t *testing.T) {
	s1 := test.Parse(t, test.SixLeafStar)
	s2 := test.Parse(t, test.SixLeafStar)

	row, err := Generalized(s1, s2, api.MetricSPI, true)
	require.NoError(t, err)
	require.Equal(t, 0.0, row["spi"])
	require.Equal(t, 0.0, row["spi_dist"])
	require.Equal(t, 0.0, row["spi_norm"]) // empty mean self-score
}

func TestGeneralizedSymmetric(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	for _, m := range []api.DistanceMetric{api.MetricSPI, api.MetricMCI, api.MetricNye, api.MetricMSD} {
		fwd, err := Generalized(t1, t2, m, true)
		require.NoError(t, err)
		rev, err := Generalized(t2, t1, m, true)
		require.NoError(t, err)
		require.Len(t, rev, len(fwd))
		for key, v := range fwd {
			require.InDelta(t, v, rev[key], 1e-9, "metric %s key %s", m, key)
		}
	}
}
