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

func TestQuartetKeyCanonical(t *testing.T) {
	q1 := Quartet{A1: "d", A2: "c", B1: "b", B2: "a"}
	q2 := Quartet{A1: "a", A2: "b", B1: "c", B2: "d"}
	require.Equal(t, q1.Key(), q2.Key())
	require.Equal(t, "a,b|c,d", q2.Key())
}

func TestQuartetsFullyResolvedTree(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	keys := SortedKeys(Quartets(tr, nil, nil))

	// a fully resolved 6-leaf tree resolves every C(6,4)=15 leaf choice,
	// each exactly once despite being induced by several edges
	require.Len(t, keys, 15)
	require.Contains(t, keys, "a,b|c,d")
	require.Contains(t, keys, "c,d|e,f")
	require.Contains(t, keys, "a,c|e,f")
	for i := 1; i < len(keys); i++ {
		require.Greater(t, keys[i], keys[i-1], "duplicate or unsorted key")
	}
}

func TestQuartetsStarTreeResolvesNothing(t *testing.T) {
	tr := test.Parse(t, test.SixLeafStar)
	require.Empty(t, SortedKeys(Quartets(tr, nil, nil)))
}

func TestQuartetsDegenerateTrees(t *testing.T) {
	for _, nwk := range []string{"a;", "(a,b);", "(a,b,c);"} {
		tr := test.Parse(t, nwk)
		require.Empty(t, SortedKeys(Quartets(tr, nil, nil)), nwk)
	}
}

func TestQuadripartitionQuartetsAreSubset(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	full := SortedKeys(Quartets(tr, nil, nil))
	deep := SortedKeys(Quartets(tr,
		&api.QuartetOptions{Source: api.QuartetsFromQuadripartitions}, nil))

	require.NotEmpty(t, deep)
	require.Less(t, len(deep), len(full))
	inFull := map[string]struct{}{}
	for _, k := range full {
		inFull[k] = struct{}{}
	}
	for _, k := range deep {
		require.Contains(t, inFull, k)
	}
}

func TestQuartetsLazyEarlyStop(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	count := 0
	for range Quartets(tr, nil, nil) {
		count++
		if count == 4 {
			break
		}
	}
	require.Equal(t, 4, count)
}

func TestQuartetsInvariantUnderRerooting(t *testing.T) {
	tr := test.Parse(t, test.SixLeaf)
	want := SortedKeys(Quartets(tr, nil, nil))

	re, err := tr.Reroot(test.LeafByName(t, tr, "e"), false)
	require.NoError(t, err)
	require.Equal(t, want, SortedKeys(Quartets(re, nil, nil)))
}

func TestQuartetsPolytomyResolvesPartially(t *testing.T) {
	// ((a,b),c,d,e): only the {a,b} edge is informative
	tr := test.Parse(t, "((a,b),c,d,e);")
	keys := SortedKeys(Quartets(tr, nil, nil))
	// ab|xy for each of C(3,2) choices from {c,d,e}
	require.Equal(t, []string{"a,b|c,d", "a,b|c,e", "a,b|d,e"}, keys)
}
