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

package splits

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phylokit/treedist-pipeline/pkg/api"
	"github.com/phylokit/treedist-pipeline/pkg/test"
)

func TestQuadripartitionsUnrooted(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	col := Quadripartitions(tr, nil)

	// one per internal edge; the basal trifurcation contributes the X edge
	require.Equal(t, 3, col.Len())
	require.Equal(t, []string{
		"a|b||c,d|e,f",
		"c|d||a,b|e,f",
		"e|f||a,b|c,d",
	}, col.Keys())
}

func TestQuadripartitionsRootedSkipsRootEdges(t *testing.T) {
	tr := test.Parse(t, test.SixLeafRooted)
	col := Quadripartitions(tr, nil)

	// nothing lies beyond the root-adjacent edges of a 2-child root
	require.Equal(t, 2, col.Len())
	require.Equal(t, []string{
		"c|d||a,b|e,f",
		"e|f||a,b|c,d",
	}, col.Keys())
}

func TestQuadripartitionsInvariantUnderRerooting(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	want := Quadripartitions(tr, nil).Keys()

	re, err := tr.Reroot(test.LeafByName(t, tr, "d"), false)
	require.NoError(t, err)
	require.Equal(t, want, Quadripartitions(re, nil).Keys())
}

func TestQuadripartitionsContract(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	col := Quadripartitions(tr, &api.SplitOptions{Contract: true})
	require.Equal(t, 3, col.Len())
	// the CD edge contracted: child leaves c,d below, EF node and the
	// far-side node X's parent (the root, labeled AB) above
	require.True(t, col.Has("AB|EF||c|d"), "keys: %v", col.Keys())
}

func TestQuadripartitionsStarTreeHasNone(t *testing.T) {
	tr := test.Parse(t, test.SixLeafStar)
	require.Equal(t, 0, Quadripartitions(tr, nil).Len())
}
