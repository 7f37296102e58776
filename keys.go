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

package main

import (
	"cmp"
	"fmt"
	"io"
	"strconv"

	"github.com/cybrota/avltree/avl"
)

// keySet is the string-facing view of a tree the CLI works on. Raw keys
// are parsed by the concrete key type; parse failures are returned as
// errors and leave the tree untouched.
type keySet interface {
	Normalize(raw string) (string, error)
	Insert(raw string) (bool, error)
	Delete(raw string) (bool, error)
	Contains(raw string) (bool, error)
	Size() int
	Height() int
	Min() (string, bool)
	Max() (string, bool)
	Keys() []string
	String() string
	Traverse(w io.Writer) error
	Dump(w io.Writer) int
	Check() error
	Clear()
}

type typedSet[K cmp.Ordered] struct {
	tree   *avl.Tree[K]
	parse  func(string) (K, error)
	format func(K) string
}

func newKeySet(numeric bool) keySet {
	if numeric {
		return &typedSet[int64]{
			tree: avl.New[int64](),
			parse: func(raw string) (int64, error) {
				return strconv.ParseInt(raw, 10, 64)
			},
			format: func(k int64) string { return strconv.FormatInt(k, 10) },
		}
	}
	return &typedSet[string]{
		tree:   avl.New[string](),
		parse:  func(raw string) (string, error) { return raw, nil },
		format: func(k string) string { return k },
	}
}

func (s *typedSet[K]) key(raw string) (K, error) {
	k, err := s.parse(raw)
	if err != nil {
		return k, fmt.Errorf("invalid key %q: %w", raw, err)
	}
	return k, nil
}

func (s *typedSet[K]) Normalize(raw string) (string, error) {
	k, err := s.key(raw)
	if err != nil {
		return "", err
	}
	return s.format(k), nil
}

func (s *typedSet[K]) Insert(raw string) (bool, error) {
	k, err := s.key(raw)
	if err != nil {
		return false, err
	}
	if s.tree.Contains(k) {
		return false, nil
	}
	s.tree.Insert(k)
	return true, nil
}

func (s *typedSet[K]) Delete(raw string) (bool, error) {
	k, err := s.key(raw)
	if err != nil {
		return false, err
	}
	if !s.tree.Contains(k) {
		return false, nil
	}
	s.tree.Delete(k)
	return true, nil
}

func (s *typedSet[K]) Contains(raw string) (bool, error) {
	k, err := s.key(raw)
	if err != nil {
		return false, err
	}
	return s.tree.Contains(k), nil
}

func (s *typedSet[K]) Size() int   { return s.tree.Size() }
func (s *typedSet[K]) Height() int { return s.tree.Height() }

func (s *typedSet[K]) Min() (string, bool) {
	k, ok := s.tree.Min()
	if !ok {
		return "", false
	}
	return s.format(k), true
}

func (s *typedSet[K]) Max() (string, bool) {
	k, ok := s.tree.Max()
	if !ok {
		return "", false
	}
	return s.format(k), true
}

func (s *typedSet[K]) Keys() []string {
	keys := make([]string, 0, s.tree.Size())
	for k := range s.tree.All() {
		keys = append(keys, s.format(k))
	}
	return keys
}

func (s *typedSet[K]) String() string             { return s.tree.String() }
func (s *typedSet[K]) Traverse(w io.Writer) error { return s.tree.Traverse(w) }
func (s *typedSet[K]) Dump(w io.Writer) int       { return s.tree.Dump(w) }
func (s *typedSet[K]) Check() error               { return s.tree.Check() }
func (s *typedSet[K]) Clear()                     { s.tree = avl.New[K]() }
