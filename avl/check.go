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
	"cmp"
	"errors"
	"fmt"
)

var (
	ErrHeight  = errors.New("cached height is stale")
	ErrOrder   = errors.New("keys out of order")
	ErrBalance = errors.New("subtree out of balance")
)

// Check verifies the cached heights, the search order and the AVL balance
// of the whole tree. An empty tree is valid.
func (t *Tree[K]) Check() error {
	return Check(t.root)
}

// Check verifies the subtree rooted at node.
func Check[K cmp.Ordered](node *Node[K]) error {
	_, err := check(node, nil, nil)
	return err
}

// check returns the real height of the subtree. lo and hi are exclusive
// bounds inherited from the ancestors, nil when unbounded.
func check[K cmp.Ordered](node *Node[K], lo, hi *K) (int, error) {
	if node == nil {
		return -1, nil
	}
	if lo != nil && cmp.Compare(node.Key, *lo) <= 0 {
		return 0, fmt.Errorf("key %v not greater than %v: %w", node.Key, *lo, ErrOrder)
	}
	if hi != nil && cmp.Compare(node.Key, *hi) >= 0 {
		return 0, fmt.Errorf("key %v not less than %v: %w", node.Key, *hi, ErrOrder)
	}

	lh, err := check(node.Left, lo, &node.Key)
	if err != nil {
		return 0, err
	}
	rh, err := check(node.Right, &node.Key, hi)
	if err != nil {
		return 0, err
	}

	h := 1 + max(lh, rh)
	if node.height != h {
		return 0, fmt.Errorf("key %v: cached %d, actual %d: %w", node.Key, node.height, h, ErrHeight)
	}
	if b := rh - lh; b > 1 || b < -1 {
		return 0, fmt.Errorf("key %v: balance %+d: %w", node.Key, b, ErrBalance)
	}
	return h, nil
}
