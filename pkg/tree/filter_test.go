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

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPruneMatchingByName(t *testing.T) {
	tr := sixLeaf(t)
	pr, err := tr.PruneMatching("name != 'b' && name != 'f'", false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c", "d", "e"}, pr.LeafNames())
}

func TestPruneMatchingByFeature(t *testing.T) {
	tr := sixLeaf(t)
	for _, l := range tr.Leaves() {
		l.SetFeature("habitat", TextFeature("land"))
	}
	leaf(t, tr, "e").SetFeature("habitat", TextFeature("marine"))
	leaf(t, tr, "f").SetFeature("habitat", TextFeature("marine"))

	pr, err := tr.PruneMatching("habitat == 'marine'", false)
	require.NoError(t, err)
	require.Equal(t, []string{"e", "f"}, pr.LeafNames())
}

func TestPruneMatchingExcludesLeavesMissingAParam(t *testing.T) {
	tr := sixLeaf(t)
	leaf(t, tr, "a").SetFeature("rate", NumFeature(2))
	leaf(t, tr, "b").SetFeature("rate", NumFeature(5))

	// leaves without the feature fail evaluation and are dropped
	pr, err := tr.PruneMatching("rate > 1", false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, pr.LeafNames())
}

func TestPruneMatchingBadExpression(t *testing.T) {
	tr := sixLeaf(t)
	_, err := tr.PruneMatching("name ==", false)
	require.Error(t, err)
}
