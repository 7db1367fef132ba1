package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restcommander/internal/session"
	"github.com/studiowebux/restcommander/internal/store"
)

// CreateTestModel creates a Model over an empty in-memory store
func CreateTestModel(t *testing.T) (*Model, *store.Memory) {
	t.Helper()
	return CreateTestModelWithStore(t, store.NewMemory())
}

// CreateTestModelWithStore creates a Model over st with deterministic ids
func CreateTestModelWithStore(t *testing.T, st *store.Memory) (*Model, *store.Memory) {
	t.Helper()

	n := 0
	ctrl := session.NewController(st, session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("req-%03d", n)
	}))
	ctrl.Open(context.Background())

	m := New(ctrl, nil, Options{Version: "test-version"})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	t.Cleanup(m.Cleanup)

	return &m, st
}

// pressKey sends a key press through Update and returns its command
func pressKey(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// typeText types each rune of s as a separate key press
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// clickEntry left-clicks the sidebar row of a visible entry
func clickEntry(m *Model, index int) tea.Cmd {
	_, cmd := m.Update(tea.MouseMsg{
		X:      2,
		Y:      SidebarListTop + index - m.sidebarOffset,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return cmd
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
