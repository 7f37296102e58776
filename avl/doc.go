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

// Package avl implements a generic AVL tree: a binary search tree that
// keeps the heights of the two subtrees of every node within one of each
// other, so insert, delete and lookup stay O(log n).
//
// Keys are any cmp.Ordered type. Duplicate inserts and deletes of missing
// keys are silent no-ops. Floating point keys must not be NaN.
//
// A Tree is not safe for concurrent use. Guard it with a single mutex if
// more than one goroutine touches it; rotations rewrite several nodes at
// once so finer-grained locking is not possible.
package avl
