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
	"github.com/patrickmn/go-cache"
)

// Names of the rendered views kept in the snapshot cache.
const (
	snapshotListing = "listing"
	snapshotArray   = "array"
	snapshotDump    = "dump"
)

// NewSnapshotCache creates a cache for rendered views of the tree.
func NewSnapshotCache(cfg CacheConfig) *cache.Cache {
	return cache.New(cfg.Expiration(), cfg.Cleanup())
}

func CacheSnapshot(c *cache.Cache, name string, text string) {
	c.Set(name, text, cache.DefaultExpiration)
}

func GetSnapshot(c *cache.Cache, name string) (string, bool) {
	val, ok := c.Get(name)
	if !ok {
		return "", false
	}
	return val.(string), true
}

// InvalidateSnapshots drops every rendered view. Called after each mutation.
func InvalidateSnapshots(c *cache.Cache) {
	c.Flush()
}
