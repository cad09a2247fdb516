/*
 * Copyright (C) 2021 IBM, Inc.
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

package config

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/phylokit/treedist-pipeline/pkg/api"
)

// GenericMap is one output row: named statistics of a single tree pair.
type GenericMap map[string]interface{}

// Options carries the raw command line / environment configuration; string
// fields hold JSON fragments that ParseConfig decodes.
type Options struct {
	// Input is a Newick file holding the trees to compare.
	Input string
	// Reference is an optional Newick file with a single reference tree;
	// when set, pairs are each input tree vs the reference instead of
	// all-vs-all.
	Reference string
	// Output is the destination for JSON-lines rows, empty for stdout.
	Output string
	// Distance is a JSON object with the api.DistanceOptions fields.
	Distance string
	// Workers bounds the number of concurrent pair computations.
	Workers int
	Profile Profile
	Metrics MetricsSettings
}

type Profile struct {
	Port int
}

// MetricsSettings configures the optional operational metrics endpoint.
type MetricsSettings struct {
	Address string
	Port    int
	// NoPanic keeps the process alive if the metrics server cannot start.
	NoPanic bool
}

// Config is the parsed, typed configuration.
type Config struct {
	Input     string
	Reference string
	Output    string
	Distance  api.DistanceOptions
	Workers   int
	Profile   Profile
	Metrics   MetricsSettings
}

// ParseConfig creates the internal typed representation from raw options.
func ParseConfig(opts *Options) (Config, error) {
	cfg := Config{
		Input:     opts.Input,
		Reference: opts.Reference,
		Output:    opts.Output,
		Workers:   opts.Workers,
		Profile:   opts.Profile,
		Metrics:   opts.Metrics,
	}
	if cfg.Input == "" {
		return cfg, fmt.Errorf("an input tree file is required")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	if opts.Distance != "" {
		var raw map[string]interface{}
		if err := jsoniter.Unmarshal([]byte(opts.Distance), &raw); err != nil {
			log.Errorf("error when reading distance options: %v", err)
			return cfg, err
		}
		distOpts, err := api.DistanceOptionsFromMap(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Distance = distOpts
	}
	log.Debugf("parsed config = %+v", cfg)
	return cfg, nil
}
