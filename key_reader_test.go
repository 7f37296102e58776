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
	"reflect"
	"strings"
	"testing"
)

func TestReadKeys(t *testing.T) {
	input := "# fruit\napple\n\n  banana  \n#cherry\ndate\n"

	keys, err := readKeys(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readKeys returned error: %v", err)
	}

	want := []string{"apple", "banana", "date"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("readKeys = %v; want %v", keys, want)
	}
}

func TestReadKeyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "keys.txt", "3\n1\n2\n")

	keys, err := readKeyFile(path)
	if err != nil {
		t.Fatalf("readKeyFile returned error: %v", err)
	}
	if strings.Join(keys, ",") != "3,1,2" {
		t.Errorf("readKeyFile = %v; want [3 1 2]", keys)
	}

	_, err = readKeyFile(dir + "/nope.txt")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("readKeyFile(missing) error = %v; want not found", err)
	}
}

func TestLoadKeyFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "5\n3\n8\n")
	second := writeFile(t, dir, "b.txt", "3\n9\n")

	s := newTestSession(true)
	stats, err := loadKeyFiles(s, []string{first, second}, false)
	if err != nil {
		t.Fatalf("loadKeyFiles returned error: %v", err)
	}
	if stats.Added != 4 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v; want 4 added, 1 duplicate", stats)
	}

	bad := writeFile(t, dir, "bad.txt", "1\nnope\n")
	if _, err := loadKeyFiles(s, []string{bad}, false); err == nil {
		t.Error("loadKeyFiles accepted a non-numeric key")
	}
	if got := s.Size(); got != 4 {
		t.Errorf("Size() after failed load = %d; want 4", got)
	}
}
