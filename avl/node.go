// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avl

import "cmp"

// Node is one vertex of an AVL tree. A node exclusively owns its two
// subtrees; a nil child is an empty subtree.
type Node[K cmp.Ordered] struct {
	Key    K
	Left   *Node[K]
	Right  *Node[K]
	height int // leaf = 0, empty subtree = -1
}

// NewNode returns a single-node subtree holding key.
func NewNode[K cmp.Ordered](key K) *Node[K] {
	return &Node[K]{Key: key}
}

// Height returns the cached height of the subtree rooted at n, or -1 if n
// is nil.
func (n *Node[K]) Height() int {
	if n == nil {
		return -1
	}
	return n.height
}

// Balance returns height(right) - height(left), or 0 for a nil node.
func (n *Node[K]) Balance() int {
	if n == nil {
		return 0
	}
	return n.Right.Height() - n.Left.Height()
}

// updateHeight recomputes n.height from the cached heights of its children.
// Children must already be correct.
func (n *Node[K]) updateHeight() {
	n.height = 1 + max(n.Left.Height(), n.Right.Height())
}

func rotateRight[K cmp.Ordered](node *Node[K]) *Node[K] {
	pivot := node.Left

	node.Left = pivot.Right
	pivot.Right = node

	node.updateHeight()
	pivot.updateHeight()

	return pivot
}

func rotateLeft[K cmp.Ordered](node *Node[K]) *Node[K] {
	pivot := node.Right

	node.Right = pivot.Left
	pivot.Left = node

	node.updateHeight()
	pivot.updateHeight()

	return pivot
}

// rebalance refreshes node's height and restores the AVL property at node,
// returning the root of the possibly rotated subtree. A double rotation is
// used only when the heavy child's inner subtree is strictly taller; on a
// tie, which deletes can produce, a single rotation keeps both nodes
// balanced.
func rebalance[K cmp.Ordered](node *Node[K]) *Node[K] {
	node.updateHeight()

	switch balance := node.Balance(); {
	case balance > 1:
		if node.Right.Right.Height() < node.Right.Left.Height() {
			node.Right = rotateRight(node.Right)
		}
		return rotateLeft(node)
	case balance < -1:
		if node.Left.Left.Height() < node.Left.Right.Height() {
			node.Left = rotateLeft(node.Left)
		}
		return rotateRight(node)
	}

	return node
}

// Insert adds key to the subtree rooted at node and returns the new subtree
// root. A key already present leaves the subtree untouched.
func Insert[K cmp.Ordered](node *Node[K], key K) *Node[K] {
	if node == nil {
		return NewNode(key)
	}

	switch c := cmp.Compare(key, node.Key); {
	case c < 0:
		node.Left = Insert(node.Left, key)
	case c > 0:
		node.Right = Insert(node.Right, key)
	default:
		return node
	}

	return rebalance(node)
}

// Delete removes key from the subtree rooted at node and returns the new
// subtree root, which is nil once the last node is gone. A missing key is
// a no-op.
func Delete[K cmp.Ordered](node *Node[K], key K) *Node[K] {
	if node == nil {
		return nil
	}

	switch c := cmp.Compare(key, node.Key); {
	case c < 0:
		node.Left = Delete(node.Left, key)
	case c > 0:
		node.Right = Delete(node.Right, key)
	default:
		if node.Left == nil {
			node = node.Right
		} else if node.Right == nil {
			node = node.Left
		} else {
			successor := leftmost(node.Right)
			node.Key = successor.Key
			node.Right = Delete(node.Right, successor.Key)
		}
	}

	if node == nil {
		return nil
	}
	return rebalance(node)
}

func leftmost[K cmp.Ordered](node *Node[K]) *Node[K] {
	for node.Left != nil {
		node = node.Left
	}
	return node
}

func rightmost[K cmp.Ordered](node *Node[K]) *Node[K] {
	for node.Right != nil {
		node = node.Right
	}
	return node
}

// Search descends from node and returns the node holding key, or nil.
func Search[K cmp.Ordered](node *Node[K], key K) *Node[K] {
	for node != nil {
		switch c := cmp.Compare(key, node.Key); {
		case c < 0:
			node = node.Left
		case c > 0:
			node = node.Right
		default:
			return node
		}
	}
	return nil
}

// Walk calls fn for every key of the subtree in ascending order until fn
// returns false. It reports whether the walk ran to completion.
func Walk[K cmp.Ordered](node *Node[K], fn func(K) bool) bool {
	if node == nil {
		return true
	}
	return Walk(node.Left, fn) && fn(node.Key) && Walk(node.Right, fn)
}

// Size counts the nodes of the subtree. It is not cached.
func Size[K cmp.Ordered](node *Node[K]) int {
	if node == nil {
		return 0
	}
	return 1 + Size(node.Left) + Size(node.Right)
}

// ToSlice returns the keys of the subtree in ascending order.
func ToSlice[K cmp.Ordered](node *Node[K]) []K {
	keys := make([]K, Size(node))
	fill(node, keys, 0)
	return keys
}

// fill writes the subtree's keys into keys starting at i and returns the
// next free index.
func fill[K cmp.Ordered](node *Node[K], keys []K, i int) int {
	if node == nil {
		return i
	}
	i = fill(node.Left, keys, i)
	keys[i] = node.Key
	return fill(node.Right, keys, i+1)
}
