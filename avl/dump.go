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
	"fmt"
	"io"
)

type branch int

const (
	rootBranch branch = iota
	leftBranch
	rightBranch
)

// Dump draws the tree sideways on w, right subtree above its parent and
// left subtree below, annotating each key with its balance factor. It
// returns the number of levels drawn.
func (t *Tree[K]) Dump(w io.Writer) int {
	return dump(w, t.root, "", rootBranch)
}

func dump[K cmp.Ordered](w io.Writer, node *Node[K], prefix string, br branch) int {
	if node == nil {
		return 0
	}

	rd := 0
	if node.Right != nil {
		pad := "       "
		if br == leftBranch {
			pad = "|      "
		}
		rd = dump(w, node.Right, prefix+pad, rightBranch)
	}

	switch br {
	case rootBranch:
		fmt.Fprintf(w, "%s|------+ ", prefix)
	case leftBranch:
		fmt.Fprintf(w, "%s\\------+ ", prefix)
	case rightBranch:
		fmt.Fprintf(w, "%s/------+ ", prefix)
	}
	fmt.Fprintf(w, "%v %+d\n", node.Key, node.Balance())

	ld := 0
	if node.Left != nil {
		pad := "       "
		if br == rightBranch {
			pad = "|      "
		}
		ld = dump(w, node.Left, prefix+pad, leftBranch)
	}

	return 1 + max(ld, rd)
}
