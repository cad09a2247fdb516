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

package api

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DistanceMetric names one family of tree comparison statistics.
type DistanceMetric string

const (
	// MetricRF: exact-match bipartition overlap (Robinson-Foulds family).
	MetricRF DistanceMetric = "rf"
	// MetricQuartets: quartet resolution classification and its ratio table.
	MetricQuartets DistanceMetric = "quartets"
	// MetricSPI: shared phylogenetic information (bits) under optimal
	// split assignment.
	MetricSPI DistanceMetric = "spi"
	// MetricMCI: mutual clustering information (bits) under optimal
	// split assignment.
	MetricMCI DistanceMetric = "mci"
	// MetricNye: Nye set-overlap similarity under optimal split assignment.
	MetricNye DistanceMetric = "nye"
	// MetricMSD: matching-split element-move distance.
	MetricMSD DistanceMetric = "msd"
)

// AllDistanceMetrics lists every metric family in output order.
var AllDistanceMetrics = []DistanceMetric{
	MetricRF, MetricQuartets, MetricSPI, MetricMCI, MetricNye, MetricMSD,
}

// DistanceOptions configures the distance engine.
type DistanceOptions struct {
	// Metrics selects the metric families to compute; empty means all.
	Metrics []DistanceMetric `json:"metrics,omitempty" doc:"metric families to compute; empty means all"`
	// Normalize adds the 0..1-bounded variants, dividing by each tree's own
	// self-information total.
	Normalize bool `json:"normalize,omitempty" doc:"add normalized 0..1 variants"`
}

// DistanceOptionsFromMap decodes a generic options map, as handed over by a
// config file or flag, into typed options.
func DistanceOptionsFromMap(m map[string]interface{}) (DistanceOptions, error) {
	var opts DistanceOptions
	if err := mapstructure.Decode(m, &opts); err != nil {
		return opts, fmt.Errorf("cannot decode distance options: %w", err)
	}
	for _, metric := range opts.Metrics {
		if !validMetric(metric) {
			return opts, fmt.Errorf("unknown distance metric %q", metric)
		}
	}
	return opts, nil
}

func validMetric(m DistanceMetric) bool {
	for _, known := range AllDistanceMetrics {
		if m == known {
			return true
		}
	}
	return false
}
