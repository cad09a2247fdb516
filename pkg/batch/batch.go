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

// Package batch computes pairwise tree distances over many trees. The pairs
// are independent and read-only, so they fan out over a worker pool with no
// shared mutable state; cancelling simply stops submitting and consuming the
// remaining pairs.
package batch

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	jsoniter "github.com/json-iterator/go"
	"github.com/netobserv/gopipes/pkg/node"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/phylokit/treedist-pipeline/pkg/config"
	"github.com/phylokit/treedist-pipeline/pkg/distance"
	"github.com/phylokit/treedist-pipeline/pkg/operational"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

var blog = log.WithField("component", "batch.Driver")

const progressInterval = 10 * time.Second

type pairJob struct {
	i, j int
}

// Driver runs one batch: all-vs-all over the input trees, or each input
// tree vs the reference when one is given.
type Driver struct {
	cfg       config.Config
	trees     []*tree.Tree
	names     []string
	reference *tree.Tree
	refName   string
	clock     clock.Clock
	out       io.Writer

	processed atomic.Int64
}

func NewDriver(cfg config.Config, trees []*tree.Tree, names []string, out io.Writer) *Driver {
	return &Driver{
		cfg:   cfg,
		trees: trees,
		names: names,
		clock: clock.New(),
		out:   out,
	}
}

// WithReference switches the driver to each-vs-reference pairing.
func (d *Driver) WithReference(ref *tree.Tree, name string) *Driver {
	d.reference = ref
	d.refName = name
	return d
}

// WithClock injects a fake clock in tests.
func (d *Driver) WithClock(c clock.Clock) *Driver {
	d.clock = c
	return d
}

// Pairs returns how many comparisons the batch will perform.
func (d *Driver) Pairs() int {
	if d.reference != nil {
		return len(d.trees)
	}
	return len(d.trees) * (len(d.trees) - 1) / 2
}

// Run builds the generator -> workers -> writer graph and blocks until the
// batch drains or the context is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	total := d.Pairs()
	blog.WithField("pairs", total).Info("starting batch distance computation")

	start := node.AsInit(func(out chan<- pairJob) {
		d.emitPairs(ctx, out)
	})
	workers := node.AsMiddle(func(in <-chan pairJob, out chan<- config.GenericMap) {
		d.runWorkers(ctx, in, out)
	})

	var writeErr error
	writer := node.AsTerminal(func(in <-chan config.GenericMap) {
		enc := jsoniter.NewEncoder(d.out)
		for row := range in {
			if err := enc.Encode(row); err != nil && writeErr == nil {
				writeErr = errors.Wrap(err, "writing result row")
			}
		}
	})

	start.SendsTo(workers)
	workers.SendsTo(writer)

	stopProgress := d.reportProgress(total)
	start.Start()
	<-writer.Done()
	stopProgress()

	blog.WithField("processed", d.processed.Load()).Info("batch finished")
	return writeErr
}

func (d *Driver) emitPairs(ctx context.Context, out chan<- pairJob) {
	if d.reference != nil {
		for i := range d.trees {
			select {
			case out <- pairJob{i: i, j: -1}:
			case <-ctx.Done():
				return
			}
		}
		return
	}
	for i := 0; i < len(d.trees); i++ {
		for j := i + 1; j < len(d.trees); j++ {
			select {
			case out <- pairJob{i: i, j: j}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (d *Driver) runWorkers(ctx context.Context, in <-chan pairJob, out chan<- config.GenericMap) {
	var wg sync.WaitGroup
	for w := 0; w < d.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				if ctx.Err() != nil {
					continue // drain without computing
				}
				if row, ok := d.computePair(job); ok {
					out <- row
				}
			}
		}()
	}
	wg.Wait()
}

func (d *Driver) computePair(job pairJob) (config.GenericMap, bool) {
	t1 := d.trees[job.i]
	name1 := d.names[job.i]
	t2 := d.reference
	name2 := d.refName
	if job.j >= 0 {
		t2 = d.trees[job.j]
		name2 = d.names[job.j]
	}

	began := d.clock.Now()
	stats, err := distance.Compute(t1, t2, &d.cfg.Distance)
	operational.PairDuration.Observe(d.clock.Since(began).Seconds())
	if err != nil {
		operational.PairsFailed.Inc()
		blog.WithError(err).Warnf("skipping pair %s vs %s", name1, name2)
		return nil, false
	}
	operational.PairsProcessed.Inc()
	d.processed.Add(1)

	row := config.GenericMap{"tree1": name1, "tree2": name2}
	for k, v := range stats {
		row[k] = v
	}
	return row, true
}

// reportProgress logs throughput on a fixed interval until the returned
// stop function is called.
func (d *Driver) reportProgress(total int) func() {
	ticker := d.clock.Ticker(progressInterval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				blog.Infof("processed %d/%d pairs", d.processed.Load(), total)
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
