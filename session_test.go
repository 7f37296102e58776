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
	"strings"
	"sync"
	"testing"
)

func newTestSession(numeric bool) *Session {
	cfg := defaultConfig
	cfg.Keys.Numeric = numeric
	return NewSession(&cfg)
}

type execStep struct {
	line string
	want string
}

func runSteps(t *testing.T, s *Session, steps []execStep) {
	t.Helper()
	for _, step := range steps {
		got, err := s.Exec(step.line)
		if err != nil {
			t.Fatalf("Exec(%q) returned error: %v", step.line, err)
		}
		if got != step.want {
			t.Errorf("Exec(%q) = %q; want %q", step.line, got, step.want)
		}
	}
}

func TestSessionStringKeys(t *testing.T) {
	s := newTestSession(false)

	runSteps(t, s, []execStep{
		{"insert b a c", "inserted 3, already present 0"},
		{"add a", "inserted 0, already present 1"},
		{"ls", "a\nb\nc"},
		{"array", "[a, b, c]"},
		{"size", "3"},
		{"height", "1"},
		{"min", "a"},
		{"max", "c"},
		{"contains a z", "a: true\nz: false"},
		{"delete b z", "deleted 1, not found 1"},
		{"has b", "b: false"},
		{"check", "ok"},
		{"traverse", "a\nc"},
		{"clear", "cleared"},
		{"size", "0"},
		{"height", "-1"},
		{"ls", "(empty)"},
		{"dump", "(empty)"},
		{"min", "(empty)"},
		{"contains a", "a: false"},
	})
}

func TestSessionQuotedKeys(t *testing.T) {
	s := newTestSession(false)

	runSteps(t, s, []execStep{
		{`insert 'two words' "x y"`, "inserted 2, already present 0"},
		{`contains "two words" two`, "two words: true\ntwo: false"},
		{"ls", "two words\nx y"},
	})
}

func TestSessionNumericKeys(t *testing.T) {
	s := newTestSession(true)

	runSteps(t, s, []execStep{
		{"insert 10 9 100", "inserted 3, already present 0"},
		{"ls", "9\n10\n100"},
		{"contains 010 -5", "010: true\n-5: false"},
		{"insert 0010", "inserted 0, already present 1"},
	})

	if _, err := s.Exec("insert 7 x"); err == nil {
		t.Fatal("Exec with a non-numeric key succeeded; want error")
	}
	if got := s.Size(); got != 3 {
		t.Errorf("Size() after rejected batch = %d; want 3", got)
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestSession(false)

	testCases := []struct {
		line      string
		wantUsage bool
	}{
		{"frobnicate", false},
		{"insert", true},
		{"delete", true},
		{"contains", true},
		{"insert 'unterminated", false},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			_, err := s.Exec(tc.line)
			if err == nil {
				t.Fatalf("Exec(%q) succeeded; want error", tc.line)
			}
			if got := errors.Is(err, errUsage); got != tc.wantUsage {
				t.Errorf("errors.Is(err, errUsage) = %v; want %v (err: %v)", got, tc.wantUsage, err)
			}
		})
	}

	if out, err := s.Exec("   "); err != nil || out != "" {
		t.Errorf("Exec(blank) = %q, %v; want empty output and no error", out, err)
	}
}

func TestSessionSnapshotsInvalidated(t *testing.T) {
	s := newTestSession(false)
	runSteps(t, s, []execStep{
		{"insert m", "inserted 1, already present 0"},
		{"ls", "m"},
	})

	if _, ok := GetSnapshot(s.snapshots, snapshotListing); !ok {
		t.Fatal("listing was not cached after ls")
	}

	runSteps(t, s, []execStep{{"insert a", "inserted 1, already present 0"}})
	if _, ok := GetSnapshot(s.snapshots, snapshotListing); ok {
		t.Fatal("listing still cached after insert")
	}

	runSteps(t, s, []execStep{
		{"ls", "a\nm"},
		{"delete zz", "deleted 0, not found 1"},
	})
	if _, ok := GetSnapshot(s.snapshots, snapshotListing); !ok {
		t.Error("listing dropped by a delete that removed nothing")
	}
}

func TestSessionDump(t *testing.T) {
	s := newTestSession(true)
	runSteps(t, s, []execStep{{"insert 1 2 3", "inserted 3, already present 0"}})

	want := "       /------+ 3 +0\n" +
		"|------+ 2 +0\n" +
		"       \\------+ 1 +0"
	if got := s.Dump(); got != want {
		t.Errorf("Dump() = %q; want %q", got, want)
	}
}

func TestSessionLoad(t *testing.T) {
	s := newTestSession(false)

	ticks := 0
	stats, err := s.Load([]string{"b", "a", "b", "c", "a"}, func() { ticks++ })
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if stats.Added != 3 || stats.Duplicates != 2 {
		t.Errorf("Load stats = %+v; want 3 added, 2 duplicates", stats)
	}
	if ticks != 5 {
		t.Errorf("progress called %d times; want 5", ticks)
	}
	if got := s.Keys(); strings.Join(got, ",") != "a,b,c" {
		t.Errorf("Keys() = %v; want [a b c]", got)
	}
}

func TestSessionConcurrentExec(t *testing.T) {
	s := newTestSession(true)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := s.Exec(fmt.Sprintf("insert %d", w*100+i)); err != nil {
					t.Errorf("insert: %v", err)
					return
				}
				if _, err := s.Contains(fmt.Sprint(i)); err != nil {
					t.Errorf("contains: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := s.Size(); got != 800 {
		t.Errorf("Size() = %d; want 800", got)
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check() = %v; want nil", err)
	}
}

func TestFalsePositiveRate(t *testing.T) {
	if got := falsePositiveRate(0, 5, 10); got != 1 {
		t.Errorf("falsePositiveRate(0, 5, 10) = %v; want 1", got)
	}
	if got := falsePositiveRate(1024, 5, 0); got != 0 {
		t.Errorf("falsePositiveRate(1024, 5, 0) = %v; want 0", got)
	}
	if low, high := falsePositiveRate(1<<16, 5, 100), falsePositiveRate(1<<16, 5, 10000); low >= high {
		t.Errorf("rate for 100 keys (%v) not below rate for 10000 keys (%v)", low, high)
	}
}

func TestSessionStatsCountsDeletedKeys(t *testing.T) {
	cfg := defaultConfig
	cfg.Filter = FilterConfig{Size: 64, Hashes: 3}
	s := NewSession(&cfg)

	runSteps(t, s, []execStep{
		{"insert a b c", "inserted 3, already present 0"},
		{"insert a", "inserted 0, already present 1"},
		{"delete a b", "deleted 2, not found 0"},
	})

	stats, err := s.Exec("stats")
	if err != nil {
		t.Fatalf("stats returned error: %v", err)
	}
	want := fmt.Sprintf("~%.4f false positive rate", falsePositiveRate(64, 3, 3))
	if !strings.Contains(stats, want) {
		t.Errorf("stats = %q; want it to contain %q", stats, want)
	}
	if !strings.Contains(stats, "size: 1") {
		t.Errorf("stats = %q; want size 1", stats)
	}

	runSteps(t, s, []execStep{{"clear", "cleared"}})
	stats, _ = s.Exec("stats")
	if !strings.Contains(stats, "~0.0000 false positive rate") {
		t.Errorf("stats after clear = %q; want zero rate", stats)
	}
}
