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

import "sort"

// Node is a mutable vertex of a phylogenetic tree. Children links own the
// subtree below; the parent link is a non-owning back-reference used for
// navigation only, so the graph stays acyclic.
//
// A node's idx is only meaningful while the owning Tree's index is fresh.
// Any structural edit invalidates it until the tree is re-indexed.
type Node struct {
	// Name is an optional label. It is not required to be unique.
	Name string
	// Dist is the length of the branch between this node and its parent.
	Dist float64
	// Support is an optional edge support value, present iff HasSupport.
	Support    float64
	HasSupport bool

	parent   *Node
	children []*Node
	features map[string]Feature
	idx      int
}

// NewNode creates a detached node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name, idx: -1}
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered child list. Callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) IsLeaf() bool { return len(n.children) == 0 }
func (n *Node) IsRoot() bool { return n.parent == nil }

// Idx is the canonical dense index assigned by the owning Tree. It is stale
// after any structural edit; callers must re-index before reading it again.
func (n *Node) Idx() int { return n.idx }

// AddChild appends c to the child list and sets its parent back-reference.
func (n *Node) AddChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

// removeChild detaches c, preserving the order of the remaining children.
func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// replaceChild swaps old for repl at the same position.
func (n *Node) replaceChild(old, repl *Node) {
	for i, ch := range n.children {
		if ch == old {
			n.children[i] = repl
			repl.parent = n
			old.parent = nil
			return
		}
	}
}

func (n *Node) SetFeature(key string, f Feature) {
	if n.features == nil {
		n.features = map[string]Feature{}
	}
	n.features[key] = f
}

func (n *Node) GetFeature(key string) (Feature, bool) {
	f, ok := n.features[key]
	return f, ok
}

func (n *Node) DeleteFeature(key string) {
	delete(n.features, key)
}

// FeatureKeys lists the feature keys present on this node, sorted.
func (n *Node) FeatureKeys() []string {
	keys := make([]string, 0, len(n.features))
	for k := range n.features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// clone deep-copies the subtree rooted at n. The clone is detached.
func (n *Node) clone() *Node {
	c := &Node{
		Name:       n.Name,
		Dist:       n.Dist,
		Support:    n.Support,
		HasSupport: n.HasSupport,
		idx:        n.idx,
	}
	if n.features != nil {
		c.features = make(map[string]Feature, len(n.features))
		for k, v := range n.features {
			c.features[k] = v
		}
	}
	for _, ch := range n.children {
		c.AddChild(ch.clone())
	}
	return c
}
