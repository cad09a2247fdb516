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

// Tree owns a root node and everything reachable from it, plus the canonical
// node index: every node gets a dense integer idx such that leaves occupy
// 0..ntips-1 in left-to-right order, internal nodes occupy ntips..nnodes-1 in
// post-order, every internal node's idx exceeds all of its descendants', and
// the root holds the maximum idx.
//
// The index is stale after any structural or branch-length edit. Every
// mutating operation in this package re-indexes before returning; callers
// editing nodes directly must call Reindex themselves.
type Tree struct {
	root  *Node
	nodes []*Node // idx order: leaves first, then post-ordered internals
	ntips int
}

// New builds an indexed tree from a root node produced by an external
// parser, generator or programmatic builder. It fails with a
// *StructuralError if the node graph is not a tree.
func New(root *Node) (*Tree, error) {
	if root == nil {
		return nil, &StructuralError{Reason: "nil root"}
	}
	t := &Tree{root: root}
	if err := t.Reindex(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) Root() *Node { return t.root }
func (t *Tree) NNodes() int { return len(t.nodes) }
func (t *Tree) NTips() int  { return t.ntips }

// Rooted reports whether the root has exactly two children. Any other child
// count is treated as a basal multifurcation, i.e. an unrooted tree.
func (t *Tree) Rooted() bool { return len(t.root.children) == 2 }

// Node returns the node currently holding the given idx.
func (t *Tree) Node(idx int) *Node { return t.nodes[idx] }

// Nodes returns all nodes in idx order. Callers must not mutate the slice.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Leaves returns the leaf nodes in idx (left-to-right) order.
func (t *Tree) Leaves() []*Node { return t.nodes[:t.ntips] }

// LeafNames returns the leaf names in idx order.
func (t *Tree) LeafNames() []string {
	names := make([]string, t.ntips)
	for i, n := range t.nodes[:t.ntips] {
		names[i] = n.Name
	}
	return names
}

// Reindex recomputes nnodes, ntips and every node's idx in a single
// post-order walk that records leaves first (in encountered left-to-right
// order) and then internal nodes (in encountered post-order). A visited-set
// cycle guard turns a non-acyclic or multiply-parented graph into a
// *StructuralError instead of an endless loop.
func (t *Tree) Reindex() error {
	var leaves, internals []*Node
	visited := make(map[*Node]struct{})

	var walk func(n *Node) error
	walk = func(n *Node) error {
		if _, seen := visited[n]; seen {
			return &StructuralError{Reason: "node visited twice (cycle or multi-parented node)"}
		}
		visited[n] = struct{}{}
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return nil
		}
		for _, c := range n.children {
			if c.parent != n {
				return &StructuralError{Reason: "child with mismatched parent link"}
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		internals = append(internals, n)
		return nil
	}
	if err := walk(t.root); err != nil {
		return err
	}

	for i, n := range leaves {
		n.idx = i
	}
	for i, n := range internals {
		n.idx = len(leaves) + i
	}
	t.ntips = len(leaves)
	t.nodes = append(leaves, internals...)
	return nil
}
