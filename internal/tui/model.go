package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/restcommander/internal/keybinds"
	"github.com/studiowebux/restcommander/internal/session"
	"github.com/studiowebux/restcommander/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditTitle
	ModeEditURL
	ModeEditBody
	ModeSearch
	ModeFilter
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	ctrl     *session.Controller
	keybinds *keybinds.Registry
	log      *logrus.Entry
	mode     Mode
	version  string
	timeout  time.Duration

	// Request list
	cursor        int // Highlighted entry, distinct from the selected request
	sidebarOffset int // Scroll offset for the request list
	editIndex     int // Entry whose title is being edited
	searchOrigin  int // Selection to restore when search is cancelled
	lastClick     clickState

	// Inputs
	titleInput  textinput.Model
	urlInput    textinput.Model
	searchInput textinput.Model
	filterInput textinput.Model
	editor      textarea.Model

	// Request/Response
	responseView viewport.Model
	helpView     viewport.Model
	requestPane  string // "body" or "headers"

	// Request cancellation
	requestCancelFunc context.CancelFunc

	// Filter state
	filterExpr   string
	filteredBody string
	filterActive bool

	// UI state
	width        int
	height       int
	statusMsg    string
	errorMsg     string
	focusedPanel string // "sidebar" or "response"

	// Flags
	showHeaders bool
	loading     bool
}

type clickState struct {
	index int
	at    time.Time
	count int
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Cleanup cancels any in-flight request
func (m *Model) Cleanup() {
	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
		m.requestCancelFunc = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case requestExecutedMsg:
		cmd = m.handleRequestExecuted(msg)

	case statusMsg:
		cmd = m.setStatusMessage(string(msg))

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Custom message types
type requestExecutedMsg struct {
	pending  *session.PendingSend
	response types.Response
}

type statusMsg string
type errorMsg string

type clearStatusMsg struct{}
type clearErrorMsg struct{}

// setStatusMessage shows msg in the footer and schedules its removal
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, MaxStatusLength)
	m.errorMsg = ""
	return tea.Tick(MessageTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, MaxStatusLength)
	return tea.Tick(MessageTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
