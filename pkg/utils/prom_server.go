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

package utils

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/phylokit/treedist-pipeline/pkg/config"
)

// StartPromServer exposes the operational metrics of a batch run on
// /metrics. It blocks; run it in its own goroutine.
func StartPromServer(cfg *config.MetricsSettings, server *http.Server) {
	server.Addr = fmt.Sprintf("%s:%v", cfg.Address, cfg.Port)
	logrus.Infof("metrics server: addr = %s", server.Addr)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server.Handler = mux

	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logrus.Errorf("error in http.ListenAndServe: %v", err)
		if !cfg.NoPanic {
			os.Exit(1)
		}
	}
}
