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

func leaf(t *testing.T, tr *Tree, name string) *Node {
	t.Helper()
	for _, l := range tr.Leaves() {
		if l.Name == name {
			return l
		}
	}
	t.Fatalf("no leaf named %q", name)
	return nil
}

func TestCopyIsDetached(t *testing.T) {
	tr := sixLeaf(t)
	tr.Node(6).SetFeature("tag", TextFeature("x"))

	cp := tr.Copy()
	require.Equal(t, tr.LeafNames(), cp.LeafNames())
	require.NotSame(t, tr.Root(), cp.Root())

	f, ok := cp.Node(6).GetFeature("tag")
	require.True(t, ok)
	require.Equal(t, "x", f.Text)

	// mutating the copy leaves the original alone
	cp.Node(0).Name = "zz"
	require.Equal(t, "a", tr.Node(0).Name)
}

func TestRerootAtLeaf(t *testing.T) {
	tr := sixLeaf(t)
	c := leaf(t, tr, "c")
	c.Dist = 2.0

	re, err := tr.Reroot(c, false)
	require.NoError(t, err)

	// original untouched
	require.Equal(t, "AB", tr.Root().Name)

	root := re.Root()
	require.Len(t, root.Children(), 2)
	require.ElementsMatch(t, tr.LeafNames(), re.LeafNames())

	// target branch split evenly
	c2 := leaf(t, re, "c")
	require.Same(t, root, c2.Parent())
	require.Equal(t, 1.0, c2.Dist)
}

func TestRerootKeepsNodeCountOnRootedTree(t *testing.T) {
	// ((a,b),((c,d),(e,f))) — rooted, 10 nodes
	root := NewNode("")
	ab := NewNode("")
	cdef := NewNode("")
	cd, ef := NewNode(""), NewNode("")
	for _, p := range []struct {
		parent *Node
		names  []string
	}{{ab, []string{"a", "b"}}, {cd, []string{"c", "d"}}, {ef, []string{"e", "f"}}} {
		for _, n := range p.names {
			p.parent.AddChild(NewNode(n))
		}
	}
	cdef.AddChild(cd)
	cdef.AddChild(ef)
	root.AddChild(ab)
	root.AddChild(cdef)
	tr, err := New(root)
	require.NoError(t, err)
	require.Equal(t, 11, tr.NNodes())

	re, err := tr.Reroot(leaf(t, tr, "e"), false)
	require.NoError(t, err)
	require.Equal(t, 11, re.NNodes()) // old degree-2 root spliced out, new root added
	require.True(t, re.Rooted())
}

func TestRerootAtRootIsNoOp(t *testing.T) {
	tr := sixLeaf(t)
	re, err := tr.Reroot(tr.Root(), false)
	require.NoError(t, err)
	require.Equal(t, tr.NNodes(), re.NNodes())
}

func TestRerootNilTarget(t *testing.T) {
	tr := sixLeaf(t)
	_, err := tr.Reroot(nil, false)
	var se *StructuralError
	require.ErrorAs(t, err, &se)
}

func TestUnroot(t *testing.T) {
	root := NewNode("")
	ab := NewNode("")
	ab.AddChild(NewNode("a"))
	ab.AddChild(NewNode("b"))
	ab.Dist = 1
	c := NewNode("c")
	c.Dist = 2
	root.AddChild(ab)
	root.AddChild(c)
	tr, err := New(root)
	require.NoError(t, err)
	require.True(t, tr.Rooted())

	un, err := tr.Unroot(false)
	require.NoError(t, err)
	require.False(t, un.Rooted())
	require.Len(t, un.Root().Children(), 3) // a, b, c as basal multifurcation
	require.Equal(t, 3.0, leaf(t, un, "c").Dist)

	// idempotent
	again, err := un.Unroot(false)
	require.NoError(t, err)
	require.Equal(t, un.NNodes(), again.NNodes())
}

func TestPrune(t *testing.T) {
	tr := sixLeaf(t)
	pr, err := tr.Prune([]string{"a", "c", "d"}, false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c", "d"}, pr.LeafNames())

	// X became unary (only CD survived) and was spliced out
	for _, n := range pr.Nodes() {
		if !n.IsLeaf() {
			require.GreaterOrEqual(t, len(n.Children()), 2)
		}
	}
}

func TestPruneSumsSplicedBranchLengths(t *testing.T) {
	tr := sixLeaf(t)
	leaf(t, tr, "c").Dist = 1
	tr.Node(6).Dist = 2 // CD
	tr.Node(8).Dist = 4 // X

	pr, err := tr.Prune([]string{"a", "b", "c"}, false)
	require.NoError(t, err)
	// c keeps only itself below X's edge: c(1) + CD(2) + X(4)
	require.Equal(t, 7.0, leaf(t, pr, "c").Dist)
}

func TestPruneEverythingFails(t *testing.T) {
	tr := sixLeaf(t)
	_, err := tr.Prune([]string{"nope"}, false)
	require.Error(t, err)
}

func TestRotateChildren(t *testing.T) {
	tr := sixLeaf(t)
	ro, err := tr.RotateChildren(tr.Root(), false)
	require.NoError(t, err)
	// root children [a, b, X] reversed to [X, b, a]
	require.Equal(t, []string{"c", "d", "e", "f", "b", "a"}, ro.LeafNames())
	// same topology, different enumeration order
	require.Equal(t, tr.NNodes(), ro.NNodes())
}

func TestCollapseLowSupport(t *testing.T) {
	tr := sixLeaf(t)
	cd := tr.Node(6)
	cd.Support, cd.HasSupport = 0.3, true
	cd.Dist = 1
	leaf(t, tr, "c").Dist = 2
	ef := tr.Node(7)
	ef.Support, ef.HasSupport = 0.9, true

	co, err := tr.CollapseLowSupport(0.5, false)
	require.NoError(t, err)
	require.Equal(t, tr.NNodes()-1, co.NNodes()) // only CD dissolved

	c := leaf(t, co, "c")
	require.Equal(t, 3.0, c.Dist) // inherits CD's branch
	require.Equal(t, "X", c.Parent().Name)
}

func TestCollapseIgnoresNodesWithoutSupport(t *testing.T) {
	tr := sixLeaf(t)
	co, err := tr.CollapseLowSupport(0.5, false)
	require.NoError(t, err)
	require.Equal(t, tr.NNodes(), co.NNodes())
}
