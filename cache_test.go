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
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
)

func TestCacheSnapshotAndGetSnapshot(t *testing.T) {
	c := NewSnapshotCache(defaultConfig.Cache)

	if got, ok := GetSnapshot(c, snapshotListing); ok || got != "" {
		t.Errorf("GetSnapshot on empty cache = %q, %v; want empty, false", got, ok)
	}

	CacheSnapshot(c, snapshotListing, "a\nb")

	if got, ok := GetSnapshot(c, snapshotListing); !ok || got != "a\nb" {
		t.Errorf("GetSnapshot = %q, %v; want %q, true", got, ok, "a\nb")
	}

	InvalidateSnapshots(c)
	if _, ok := GetSnapshot(c, snapshotListing); ok {
		t.Error("snapshot survived InvalidateSnapshots")
	}
}

func TestSnapshotExpiration(t *testing.T) {
	// Create a cache with a very short expiration time to test expiry behavior.
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)

	CacheSnapshot(c, snapshotDump, "|------+ 1 +0")

	if _, ok := GetSnapshot(c, snapshotDump); !ok {
		t.Fatal("snapshot missing right after caching")
	}

	time.Sleep(150 * time.Millisecond)

	if got, ok := GetSnapshot(c, snapshotDump); ok {
		t.Errorf("After expiration, GetSnapshot = %q; want miss", got)
	}
}
