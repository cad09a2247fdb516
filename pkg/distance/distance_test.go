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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/test"
)

func TestComputeDefaultsToAllMetrics(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	row, err := Compute(t1, t2, nil)
	require.NoError(t, err)
	for _, key := range []string{"rf", "quartets_s", "spi", "mci", "nye", "msd"} {
		require.Contains(t, row, key)
	}
}

func TestComputeSelectedMetricsOnly(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	row, err := Compute(t1, t2, &api.DistanceOptions{
		Metrics: []api.DistanceMetric{api.MetricRF},
	})
	require.NoError(t, err)
	require.Contains(t, row, "rf")
	require.NotContains(t, row, "spi")
	require.NotContains(t, row, "quartets_s")
}

func TestComputeSkipsUnknownMetric(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafSwapCD)

	row, err := Compute(t1, t2, &api.DistanceOptions{
		Metrics: []api.DistanceMetric{"bogus", api.MetricRF},
	})
	require.NoError(t, err)
	require.Contains(t, row, "rf")
	require.Len(t, row, 5) // only the rf family keys
}

func TestComputePropagatesPreconditionErrors(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.ExtraLeafSeven)

	_, err := Compute(t1, t2, &api.DistanceOptions{
		Metrics: []api.DistanceMetric{api.MetricRF},
	})
	var mismatch *LeafSetMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestComputeNormalize(t *testing.T) {
	t1 := test.Parse(t, test.SixLeafRooted)
	t2 := test.Parse(t, test.SixLeafRooted)

	row, err := Compute(t1, t2, &api.DistanceOptions{
		Metrics:   []api.DistanceMetric{api.MetricSPI, api.MetricMSD},
		Normalize: true,
	})
	require.NoError(t, err)
	require.InDelta(t, 1.0, row["spi_norm"], 1e-9)
	require.Equal(t, 0.0, row["msd_norm"])
}
