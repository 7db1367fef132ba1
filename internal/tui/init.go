package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restcommander/internal/keybinds"
	"github.com/studiowebux/restcommander/internal/logging"
	"github.com/studiowebux/restcommander/internal/session"
)

// Options configures the terminal front end
type Options struct {
	Version      string
	Timeout      time.Duration // Per-send timeout, zero for none
	KeybindsPath string
}

// New creates a new TUI model over a controller that has already been opened
func New(ctrl *session.Controller, keys *keybinds.Registry, opts Options) Model {
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	m := Model{
		ctrl:         ctrl,
		keybinds:     keys,
		log:          logging.For("tui"),
		mode:         ModeNormal,
		version:      opts.Version,
		timeout:      opts.Timeout,
		focusedPanel: panelSidebar,
		requestPane:  paneBody,
		titleInput:   newInput("title", 0),
		urlInput:     newInput("https://", 0),
		searchInput:  newInput("title", 64),
		filterInput:  newInput("jmespath", 128),
		editor:       newEditor(),
		responseView: viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
	}

	m.cursor = max(ctrl.CurrentIndex(), 0)
	m.editor.SetValue(m.paneText())

	return m
}

// Run starts the TUI
func Run(ctrl *session.Controller, opts Options) error {
	keys, err := keybinds.LoadOrDefault(opts.KeybindsPath)
	if err != nil {
		return err
	}

	result := keybinds.NewValidator().ValidateRegistry(keys)
	if result.HasErrors() {
		return fmt.Errorf("invalid keybindings:\n%s", result.String())
	}
	log := logging.For("tui")
	for _, warn := range result.Warnings {
		log.Warn(warn.Error())
	}

	m := New(ctrl, keys, opts)

	// Mouse cell motion enables double-click title editing
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.Cleanup()
	return err
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = limit
	return in
}

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(RequestPaneHeight)
	ta.Blur()
	return ta
}
