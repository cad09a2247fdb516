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
	log "github.com/sirupsen/logrus"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Compute evaluates the selected metric families on a tree pair, merging all
// named statistics into one row. Unknown metric names are skipped with a
// warning; precondition violations abort with the underlying error.
func Compute(t1, t2 *tree.Tree, opts *api.DistanceOptions) (map[string]float64, error) {
	var o api.DistanceOptions
	if opts != nil {
		o = *opts
	}
	metrics := o.Metrics
	if len(metrics) == 0 {
		metrics = api.AllDistanceMetrics
	}

	out := map[string]float64{}
	for _, metric := range metrics {
		var (
			row map[string]float64
			err error
		)
		switch metric {
		case api.MetricRF:
			row, err = RobinsonFoulds(t1, t2)
		case api.MetricQuartets:
			var status QuartetStatus
			status, err = ClassifyQuartets(t1, t2)
			if err == nil {
				row = status.Metrics()
			}
		case api.MetricSPI, api.MetricMCI, api.MetricNye, api.MetricMSD:
			row, err = Generalized(t1, t2, metric, o.Normalize)
		default:
			log.WithField("metric", metric).Warn("unknown distance metric, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}
		for k, v := range row {
			out[k] = v
		}
	}
	return out, nil
}
