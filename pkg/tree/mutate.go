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
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Mutating operations either return a new Tree (inPlace=false) or mutate the
// receiver (inPlace=true). Both re-index before the result is usable, so idx
// values read before the call are invalid afterwards.

// Copy deep-copies the tree, preserving names, branch lengths, supports and
// features. The copy carries a fresh index with the same idx assignment.
func (t *Tree) Copy() *Tree {
	res := &Tree{root: t.root.clone()}
	// a clone of an already-indexed tree is structurally valid
	_ = res.Reindex()
	return res
}

// target resolves a node of t into the tree the operation actually works on.
// The mapping goes through idx, which requires a fresh index on t.
func (t *Tree) workingCopy(inPlace bool, nodes ...*Node) (*Tree, []*Node) {
	if inPlace {
		return t, nodes
	}
	res := t.Copy()
	mapped := make([]*Node, len(nodes))
	for i, n := range nodes {
		mapped[i] = res.nodes[n.idx]
	}
	return res, mapped
}

// Reroot places a new root on the edge above target, splitting the branch
// length evenly between the two halves. The previous parent chain is
// reversed; if the old root is left with a single child it is spliced out,
// merging branch lengths, so rerooting a rooted tree keeps the node count.
func (t *Tree) Reroot(target *Node, inPlace bool) (*Tree, error) {
	if target == nil {
		return nil, &StructuralError{Reason: "nil reroot target"}
	}
	res, mapped := t.workingCopy(inPlace, target)
	target = mapped[0]
	if target.parent == nil {
		return res, nil
	}

	// ancestor chain from target's parent up to the old root
	var chain []*Node
	for a := target.parent; a != nil; a = a.parent {
		chain = append(chain, a)
	}
	oldDist := make([]float64, len(chain))
	oldSupport := make([]float64, len(chain))
	oldHas := make([]bool, len(chain))
	for i, a := range chain {
		oldDist[i] = a.Dist
		oldSupport[i] = a.Support
		oldHas[i] = a.HasSupport
	}

	p := chain[0]
	p.removeChild(target)
	// reverse the chain: each ancestor becomes a child of the one below it,
	// and each reversed edge keeps its length and support
	for i := 0; i+1 < len(chain); i++ {
		chain[i+1].removeChild(chain[i])
	}
	for i := 0; i+1 < len(chain); i++ {
		chain[i].AddChild(chain[i+1])
		chain[i+1].Dist = oldDist[i]
		chain[i+1].Support = oldSupport[i]
		chain[i+1].HasSupport = oldHas[i]
	}

	newRoot := NewNode("")
	half := target.Dist / 2
	target.Dist = half
	newRoot.AddChild(target)
	newRoot.AddChild(p)
	p.Dist = half
	p.Support, p.HasSupport = target.Support, target.HasSupport

	// a 2-child old root is now a degree-2 relic: splice it out
	oldRoot := chain[len(chain)-1]
	if len(oldRoot.children) == 1 {
		c := oldRoot.children[0]
		par := oldRoot.parent
		c.Dist += oldRoot.Dist
		oldRoot.removeChild(c)
		par.replaceChild(oldRoot, c)
	}

	res.root = newRoot
	if err := res.Reindex(); err != nil {
		return nil, err
	}
	return res, nil
}

// Unroot collapses a 2-child root into a basal multifurcation by dissolving
// the internal child of the root and merging the two root edges into one.
// An already-unrooted tree is returned unchanged; so is a 2-leaf tree,
// which has no internal edge to dissolve.
func (t *Tree) Unroot(inPlace bool) (*Tree, error) {
	res, _ := t.workingCopy(inPlace)
	root := res.root
	if len(root.children) != 2 {
		return res, nil
	}
	var m, other *Node
	for _, c := range root.children {
		if m == nil && !c.IsLeaf() {
			m = c
		} else {
			other = c
		}
	}
	if m == nil {
		log.Debug("unroot on a 2-leaf tree is a no-op")
		return res, nil
	}
	other.Dist += m.Dist

	children := make([]*Node, 0, len(root.children)+len(m.children)-1)
	for _, c := range root.children {
		if c == m {
			children = append(children, m.children...)
		} else {
			children = append(children, c)
		}
	}
	root.children = children
	for _, c := range children {
		c.parent = root
	}
	m.children = nil
	m.parent = nil

	if err := res.Reindex(); err != nil {
		return nil, err
	}
	return res, nil
}

// Prune keeps only the named leaves, dropping emptied subtrees and splicing
// out unary internal nodes with branch lengths summed.
func (t *Tree) Prune(keep []string, inPlace bool) (*Tree, error) {
	names := make(map[string]struct{}, len(keep))
	for _, n := range keep {
		names[n] = struct{}{}
	}
	return t.pruneWhere(func(n *Node) bool {
		_, ok := names[n.Name]
		return ok
	}, inPlace)
}

func (t *Tree) pruneWhere(keep func(*Node) bool, inPlace bool) (*Tree, error) {
	res, _ := t.workingCopy(inPlace)

	var prune func(n *Node) *Node
	prune = func(n *Node) *Node {
		if n.IsLeaf() {
			if keep(n) {
				return n
			}
			return nil
		}
		var kept []*Node
		for _, c := range n.children {
			c.parent = nil
			if r := prune(c); r != nil {
				kept = append(kept, r)
			}
		}
		n.children = nil
		switch len(kept) {
		case 0:
			return nil
		case 1:
			r := kept[0]
			r.Dist += n.Dist
			return r
		default:
			for _, c := range kept {
				n.AddChild(c)
			}
			return n
		}
	}

	newRoot := prune(res.root)
	if newRoot == nil {
		return nil, fmt.Errorf("pruning removed every leaf")
	}
	newRoot.parent = nil
	res.root = newRoot
	if err := res.Reindex(); err != nil {
		return nil, err
	}
	return res, nil
}

// RotateChildren reverses the child order of a node. Natural enumeration
// order changes; canonical split collections do not.
func (t *Tree) RotateChildren(n *Node, inPlace bool) (*Tree, error) {
	if n == nil {
		return nil, &StructuralError{Reason: "nil rotation target"}
	}
	res, mapped := t.workingCopy(inPlace, n)
	n = mapped[0]
	for i, j := 0, len(n.children)-1; i < j; i, j = i+1, j-1 {
		n.children[i], n.children[j] = n.children[j], n.children[i]
	}
	if err := res.Reindex(); err != nil {
		return nil, err
	}
	return res, nil
}

// CollapseLowSupport dissolves every internal non-root edge whose support is
// present and below the threshold, producing polytomies. Children of a
// collapsed node inherit its branch length added to their own.
func (t *Tree) CollapseLowSupport(threshold float64, inPlace bool) (*Tree, error) {
	res, _ := t.workingCopy(inPlace)

	var collect []*Node
	for n := range res.Traverse(Postorder) {
		if !n.IsLeaf() && n.parent != nil && n.HasSupport && n.Support < threshold {
			collect = append(collect, n)
		}
	}
	for _, n := range collect {
		par := n.parent
		children := make([]*Node, 0, len(par.children)+len(n.children)-1)
		for _, c := range par.children {
			if c == n {
				for _, gc := range n.children {
					gc.Dist += n.Dist
					children = append(children, gc)
				}
			} else {
				children = append(children, c)
			}
		}
		par.children = children
		for _, c := range children {
			c.parent = par
		}
		n.children = nil
		n.parent = nil
	}

	if err := res.Reindex(); err != nil {
		return nil, err
	}
	return res, nil
}
