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
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sendKey(m Model, key tea.KeyType) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model)
}

func readyModel(s *Session) Model {
	updated, _ := InitialModel(s).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func TestShellRunsCommands(t *testing.T) {
	s := newTestSession(true)
	m := readyModel(s)

	m.textInput.SetValue("insert 5 3 8")
	m = sendKey(m, tea.KeyEnter)

	if got := s.Size(); got != 3 {
		t.Fatalf("Size() = %d; want 3", got)
	}
	if got := len(m.keysList.Items()); got != 3 {
		t.Errorf("keys list has %d items; want 3", got)
	}
	if m.textInput.Value() != "" {
		t.Errorf("input not cleared: %q", m.textInput.Value())
	}
	if len(m.transcript) != 1 || !strings.Contains(m.transcript[0], "inserted 3") {
		t.Errorf("transcript = %q", m.transcript)
	}
	if !strings.Contains(m.View(), "Keys (3)") {
		t.Error("view does not show the key count")
	}
}

func TestShellHistoryRecall(t *testing.T) {
	m := readyModel(newTestSession(false))

	for _, line := range []string{"insert a", "size"} {
		m.textInput.SetValue(line)
		m = sendKey(m, tea.KeyEnter)
	}

	m = sendKey(m, tea.KeyUp)
	if got := m.textInput.Value(); got != "size" {
		t.Errorf("after one up: %q; want %q", got, "size")
	}
	m = sendKey(m, tea.KeyUp)
	m = sendKey(m, tea.KeyUp)
	if got := m.textInput.Value(); got != "insert a" {
		t.Errorf("after three ups: %q; want %q", got, "insert a")
	}
	m = sendKey(m, tea.KeyDown)
	m = sendKey(m, tea.KeyDown)
	if got := m.textInput.Value(); got != "" {
		t.Errorf("past the newest entry: %q; want empty", got)
	}
}

func TestShellReportsErrors(t *testing.T) {
	m := readyModel(newTestSession(false))

	m.textInput.SetValue("bogus")
	m = sendKey(m, tea.KeyEnter)

	if !m.statusErr || !strings.Contains(m.status, "unknown command") {
		t.Errorf("status = %q (err %v); want unknown command error", m.status, m.statusErr)
	}
}

func TestShellHelpToggle(t *testing.T) {
	m := readyModel(newTestSession(false))

	m = sendKey(m, tea.KeyF1)
	if !m.showHelp {
		t.Fatal("f1 did not open help")
	}
	m = sendKey(m, tea.KeyF1)
	if m.showHelp {
		t.Error("second f1 did not close help")
	}
}

func TestShellHelpWithoutRenderer(t *testing.T) {
	m := readyModel(newTestSession(false))
	m.helpRenderer = nil

	m = sendKey(m, tea.KeyF1)

	if !strings.Contains(m.outputView.View(), "Commands") {
		t.Errorf("plain help not shown: %q", m.outputView.View())
	}
}
