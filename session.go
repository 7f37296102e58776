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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-shellwords"
	"github.com/patrickmn/go-cache"
	"github.com/willf/bloom"
)

var errUsage = errors.New("usage")

// Session is a key set shared by the CLI commands and the interactive
// shell. The tree is not safe for concurrent use, so every access goes
// through mu.
type Session struct {
	mu        sync.Mutex
	set       keySet
	filter    *bloom.BloomFilter
	filtered  uint // keys added to filter since the last clear
	snapshots *cache.Cache
}

// LoadStats summarizes a bulk load.
type LoadStats struct {
	Added      int
	Duplicates int
}

func NewSession(cfg *Config) *Session {
	c := cfg.withDefaults()
	return &Session{
		set:       newKeySet(c.Keys.Numeric),
		filter:    bloom.New(c.Filter.Size, c.Filter.Hashes),
		snapshots: NewSnapshotCache(c.Cache),
	}
}

// insertLocked adds a key and records it in the membership filter.
func (s *Session) insertLocked(raw string) (bool, error) {
	norm, err := s.set.Normalize(raw)
	if err != nil {
		return false, err
	}
	added, err := s.set.Insert(norm)
	if err != nil {
		return false, err
	}
	if added {
		s.filter.AddString(norm)
		s.filtered++
		InvalidateSnapshots(s.snapshots)
	}
	return added, nil
}

// containsLocked consults the filter first; only a possible hit reaches the
// tree. Deleted keys stay in the filter and are settled by the tree.
func (s *Session) containsLocked(raw string) (bool, error) {
	norm, err := s.set.Normalize(raw)
	if err != nil {
		return false, err
	}
	if !s.filter.TestString(norm) {
		return false, nil
	}
	return s.set.Contains(norm)
}

// validate parses every key up front so a bad key in a batch leaves the
// tree untouched.
func (s *Session) validate(raws []string) error {
	for _, raw := range raws {
		if _, err := s.set.Normalize(raw); err != nil {
			return err
		}
	}
	return nil
}

// Load inserts keys in order. progress, if not nil, is called once per key.
func (s *Session) Load(keys []string, progress func()) (LoadStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats LoadStats
	if err := s.validate(keys); err != nil {
		return stats, err
	}
	for _, raw := range keys {
		added, err := s.insertLocked(raw)
		if err != nil {
			return stats, err
		}
		if added {
			stats.Added++
		} else {
			stats.Duplicates++
		}
		if progress != nil {
			progress()
		}
	}
	return stats, nil
}

func (s *Session) Contains(raw string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.containsLocked(raw)
}

func (s *Session) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Size()
}

func (s *Session) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Height()
}

func (s *Session) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Keys()
}

func (s *Session) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Check()
}

// Listing returns the keys one per line in ascending order.
func (s *Session) Listing() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listingLocked()
}

// Array returns the keys as "[k1, k2, ...]".
func (s *Session) Array() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arrayLocked()
}

// Dump returns the sideways drawing of the tree.
func (s *Session) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dumpLocked()
}

func (s *Session) listingLocked() (string, error) {
	if text, ok := GetSnapshot(s.snapshots, snapshotListing); ok {
		return text, nil
	}
	var sb strings.Builder
	if err := s.set.Traverse(&sb); err != nil {
		return "", err
	}
	text := strings.TrimSuffix(sb.String(), "\n")
	CacheSnapshot(s.snapshots, snapshotListing, text)
	return text, nil
}

func (s *Session) arrayLocked() string {
	if text, ok := GetSnapshot(s.snapshots, snapshotArray); ok {
		return text
	}
	text := s.set.String()
	CacheSnapshot(s.snapshots, snapshotArray, text)
	return text
}

func (s *Session) dumpLocked() string {
	if text, ok := GetSnapshot(s.snapshots, snapshotDump); ok {
		return text
	}
	var sb strings.Builder
	s.set.Dump(&sb)
	text := strings.TrimSuffix(sb.String(), "\n")
	CacheSnapshot(s.snapshots, snapshotDump, text)
	return text
}

// Exec runs one shell command line and returns its output. Quoting follows
// shell rules, so keys with spaces can be written as 'two words'.
func (s *Session) Exec(line string) (string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, keys := strings.ToLower(args[0]), args[1:]
	switch name {
	case "insert", "add":
		return s.execInsert(keys)
	case "delete", "rm":
		return s.execDelete(keys)
	case "contains", "has":
		return s.execContains(keys)
	case "size":
		return strconv.Itoa(s.set.Size()), nil
	case "height":
		return strconv.Itoa(s.set.Height()), nil
	case "min":
		return orEmpty(s.set.Min()), nil
	case "max":
		return orEmpty(s.set.Max()), nil
	case "traverse", "ls":
		text, err := s.listingLocked()
		if err == nil && text == "" {
			text = "(empty)"
		}
		return text, err
	case "array":
		return s.arrayLocked(), nil
	case "dump":
		if text := s.dumpLocked(); text != "" {
			return text, nil
		}
		return "(empty)", nil
	case "check":
		if err := s.set.Check(); err != nil {
			return "", err
		}
		return "ok", nil
	case "clear":
		s.set.Clear()
		s.filter.ClearAll()
		s.filtered = 0
		InvalidateSnapshots(s.snapshots)
		return "cleared", nil
	case "stats":
		return s.statsLocked(), nil
	case "help":
		return shellCommandSummary, nil
	}
	return "", fmt.Errorf("unknown command %q (try help)", args[0])
}

func (s *Session) execInsert(keys []string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("%w: insert KEY...", errUsage)
	}
	if err := s.validate(keys); err != nil {
		return "", err
	}
	added := 0
	for _, raw := range keys {
		ok, err := s.insertLocked(raw)
		if err != nil {
			return "", err
		}
		if ok {
			added++
		}
	}
	return fmt.Sprintf("inserted %d, already present %d", added, len(keys)-added), nil
}

func (s *Session) execDelete(keys []string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("%w: delete KEY...", errUsage)
	}
	if err := s.validate(keys); err != nil {
		return "", err
	}
	removed := 0
	for _, raw := range keys {
		ok, err := s.set.Delete(raw)
		if err != nil {
			return "", err
		}
		if ok {
			removed++
		}
	}
	if removed > 0 {
		InvalidateSnapshots(s.snapshots)
	}
	return fmt.Sprintf("deleted %d, not found %d", removed, len(keys)-removed), nil
}

func (s *Session) execContains(keys []string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("%w: contains KEY...", errUsage)
	}
	if err := s.validate(keys); err != nil {
		return "", err
	}
	lines := make([]string, 0, len(keys))
	for _, raw := range keys {
		ok, err := s.containsLocked(raw)
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("%s: %t", raw, ok))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) statsLocked() string {
	size := s.set.Size()
	lines := []string{
		fmt.Sprintf("size: %d", size),
		fmt.Sprintf("height: %d", s.set.Height()),
		fmt.Sprintf("filter: %d bits, %d hashes, ~%.4f false positive rate",
			s.filter.Cap(), s.filter.K(), falsePositiveRate(s.filter.Cap(), s.filter.K(), s.filtered)),
		fmt.Sprintf("cached views: %d", s.snapshots.ItemCount()),
	}
	return strings.Join(lines, "\n")
}

// falsePositiveRate is the expected rate (1 - e^(-kn/m))^k for n keys
// added to the filter, deleted ones included.
// BloomFilter.EstimateFalsePositiveRate measures by refilling the filter, so
// it cannot be used on a live one.
func falsePositiveRate(m, k, n uint) float64 {
	if m == 0 {
		return 1
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}

func orEmpty(key string, ok bool) string {
	if !ok {
		return "(empty)"
	}
	return key
}
