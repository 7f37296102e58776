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

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Tree is a handle on the root of an AVL tree. The zero value is an empty
// tree ready to use.
type Tree[K cmp.Ordered] struct {
	root *Node[K]
}

// New returns an empty tree.
func New[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{}
}

// NewWithRoot wraps a caller-built subtree. Cached heights are recomputed
// bottom-up; ordering and balance are the caller's responsibility and can
// be verified with Check.
func NewWithRoot[K cmp.Ordered](root *Node[K]) *Tree[K] {
	recomputeHeights(root)
	return &Tree[K]{root: root}
}

func recomputeHeights[K cmp.Ordered](node *Node[K]) {
	if node == nil {
		return
	}
	recomputeHeights(node.Left)
	recomputeHeights(node.Right)
	node.updateHeight()
}

// Root returns the current root node, nil when the tree is empty.
func (t *Tree[K]) Root() *Node[K] {
	return t.root
}

// Insert adds key to the tree. Duplicate keys are ignored.
func (t *Tree[K]) Insert(key K) {
	t.root = Insert(t.root, key)
}

// Delete removes key from the tree. Missing keys are ignored.
func (t *Tree[K]) Delete(key K) {
	t.root = Delete(t.root, key)
}

// Contains reports whether key is in the tree.
func (t *Tree[K]) Contains(key K) bool {
	return Search(t.root, key) != nil
}

// Size returns the number of keys in the tree.
func (t *Tree[K]) Size() int {
	return Size(t.root)
}

// Height returns the height of the root, -1 for an empty tree.
func (t *Tree[K]) Height() int {
	return t.root.Height()
}

// Min returns the smallest key.
func (t *Tree[K]) Min() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	return leftmost(t.root).Key, true
}

// Max returns the largest key.
func (t *Tree[K]) Max() (K, bool) {
	if t.root == nil {
		var zero K
		return zero, false
	}
	return rightmost(t.root).Key, true
}

// All returns an iterator over the keys in ascending order. The tree must
// not be modified while the iterator is running.
func (t *Tree[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		Walk(t.root, yield)
	}
}

// ToSlice returns a sorted snapshot of the keys. An empty tree yields an
// empty, non-nil slice.
func (t *Tree[K]) ToSlice() []K {
	return ToSlice(t.root)
}

// Traverse writes every key to w, one per line, in ascending order.
func (t *Tree[K]) Traverse(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var err error
	Walk(t.root, func(key K) bool {
		_, err = fmt.Fprintln(bw, key)
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("traverse: %w", err)
	}
	return bw.Flush()
}

// String renders the keys as "[k1, k2, ...]".
func (t *Tree[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	Walk(t.root, func(key K) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, key)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
