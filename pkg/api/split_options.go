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

// CollectionType selects the output container of an enumerator.
type CollectionType string

const (
	// CollectionSet is an unordered, deduplicated container.
	CollectionSet CollectionType = "set"
	// CollectionSequence is an ordered container.
	CollectionSequence CollectionType = "sequence"
)

// Label sources for split sides.
const (
	FeatureName = "name"
	FeatureIdx  = "idx"
)

// SplitOptions configures the split enumerator. The zero value means: label
// by name, leaves only, no singleton splits, canonical set output.
type SplitOptions struct {
	// Feature selects the label source of a node: "name" (default), "idx",
	// or the key of a named node feature.
	Feature string `json:"feature,omitempty" doc:"label source: name, idx, or a feature key"`
	// IncludeInternalNodes adds internal node labels to each side's set.
	IncludeInternalNodes bool `json:"includeInternalNodes,omitempty" doc:"list internal nodes inside each side"`
	// IncludeSingletons includes one-leaf-vs-rest splits, which are implicit
	// for every leaf and excluded by default.
	IncludeSingletons bool `json:"includeSingletonPartitions,omitempty" doc:"include one leaf vs rest splits"`
	// Collection selects set (default) or sequence output.
	Collection CollectionType `json:"collection,omitempty" doc:"output container: set or sequence"`
	// CanonicalSort orders splits and their sides in the rooting- and
	// rotation-independent canonical order.
	CanonicalSort bool `json:"canonicalSort,omitempty" doc:"canonical (rerooting-invariant) ordering"`
	// Contract reduces each quadripartition part to the node nearest the
	// edge, trading resolution for label stability.
	Contract bool `json:"contract,omitempty" doc:"quadripartitions: keep only the node nearest the edge"`
}

// QuartetSource selects which structure induces the enumerated quartets.
type QuartetSource string

const (
	// QuartetsFromBipartitions samples every 2+2 leaf choice of every split.
	QuartetsFromBipartitions QuartetSource = "bipartitions"
	// QuartetsFromQuadripartitions samples one leaf per quadripartition
	// part, a strict subset covering only deeply resolved comparisons.
	QuartetsFromQuadripartitions QuartetSource = "quadripartitions"
)

type QuartetOptions struct {
	Source QuartetSource `json:"source,omitempty" doc:"quartet source: bipartitions (default) or quadripartitions"`
}
