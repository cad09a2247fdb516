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

// Package test holds tree fixtures shared across package tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylokit/treedist-pipeline/pkg/newick"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Newick strings used throughout the tests. SixLeaf is the reference
// topology ((a,b),((c,d),(e,f))); the variants move single leaves around so
// the pairwise distances have small hand-checkable values.
const (
	SixLeaf        = "(a,b,((c,d)CD,(e,f)EF)X)AB;"
	SixLeafRooted  = "((a,b),((c,d),(e,f)));"
	SixLeafSwapCD  = "((a,c),((b,d),(e,f)));"
	SixLeafStar    = "(a,b,c,d,e,f);"
	FiveLeafCat    = "((((a,b),c),d),e);"
	FourLeafAB     = "((a,b),(c,d));"
	FourLeafAC     = "((a,c),(b,d));"
	WithLengths    = "((a:1,b:2)90:0.5,((c:1,d:1)75:0.25,(e:3,f:1)40:2)60:1);"
	ExtraLeafSeven = "((a,b),((c,d),(e,(f,g))));"
)

// Parse builds a tree from a newick string, failing the test on error.
func Parse(t *testing.T, nwk string) *tree.Tree {
	t.Helper()
	tr, err := newick.Parse(nwk)
	require.NoError(t, err)
	return tr
}

// LeafByName returns the leaf node with the given name.
func LeafByName(t *testing.T, tr *tree.Tree, name string) *tree.Node {
	t.Helper()
	for _, l := range tr.Leaves() {
		if l.Name == name {
			return l
		}
	}
	require.Failf(t, "leaf not found", "no leaf named %q", name)
	return nil
}
