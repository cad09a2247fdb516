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
	"iter"

	log "github.com/sirupsen/logrus"
)

type TraverseOrder string

const (
	Preorder   TraverseOrder = "preorder"
	Postorder  TraverseOrder = "postorder"
	Levelorder TraverseOrder = "levelorder"
	Idxorder   TraverseOrder = "idxorder"
)

// Traverse returns a lazy, finite, restartable sequence of nodes under the
// named strategy. Idxorder steps in O(1) off the cached index; the other
// orders are plain graph walks. For a fixed topology and child order the
// sequence is fully deterministic.
//
// An unknown order is downgraded to idxorder with a logged warning.
func (t *Tree) Traverse(order TraverseOrder) iter.Seq[*Node] {
	switch order {
	case Preorder:
		return t.preorder()
	case Postorder:
		return t.postorder()
	case Levelorder:
		return t.levelorder()
	case Idxorder:
		return t.idxorder()
	default:
		log.WithField("order", order).Warn("unknown traversal order, using idxorder")
		return t.idxorder()
	}
}

func (t *Tree) idxorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range t.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

func (t *Tree) preorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := []*Node{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

func (t *Tree) postorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			for _, c := range n.children {
				if !walk(c) {
					return false
				}
			}
			return yield(n)
		}
		walk(t.root)
	}
}

func (t *Tree) levelorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		queue := []*Node{t.root}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if !yield(n) {
				return
			}
			queue = append(queue, n.children...)
		}
	}
}
