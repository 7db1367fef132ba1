package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restcommander/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeEditTitle:
		return m.handleTitleKeys(msg)
	case ModeEditURL:
		return m.handleURLKeys(msg)
	case ModeEditBody:
		return m.handleEditorKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}
	return nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	context := keybinds.ContextSidebar
	if m.focusedPanel == panelResponse {
		context = keybinds.ContextResponse
	}

	action, ok, partial := m.keybinds.MatchSequence(context, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionOpenHelp:
		m.openHelp()

	case keybinds.ActionSwitchFocus:
		if m.focusedPanel == panelSidebar {
			m.focusedPanel = panelResponse
		} else {
			m.focusedPanel = panelSidebar
		}

	case keybinds.ActionNavigateUp:
		if context == keybinds.ContextResponse {
			m.responseView.ScrollUp(1)
		} else {
			m.moveCursor(-1)
		}

	case keybinds.ActionNavigateDown:
		if context == keybinds.ContextResponse {
			m.responseView.ScrollDown(1)
		} else {
			m.moveCursor(1)
		}

	case keybinds.ActionPageUp:
		m.responseView.HalfViewUp()

	case keybinds.ActionPageDown:
		m.responseView.HalfViewDown()

	case keybinds.ActionGoToTop:
		if context == keybinds.ContextResponse {
			m.responseView.GotoTop()
		} else {
			m.moveCursor(-m.ctrl.Len())
		}

	case keybinds.ActionGoToBottom:
		if context == keybinds.ContextResponse {
			m.responseView.GotoBottom()
		} else {
			m.moveCursor(m.ctrl.Len())
		}

	case keybinds.ActionNewRequest:
		return m.newRequest()

	case keybinds.ActionSelect:
		return m.click(m.cursor, 1)

	case keybinds.ActionEditTitle:
		return m.click(m.cursor, 2)

	case keybinds.ActionCycleMethod:
		return m.cycleMethod()

	case keybinds.ActionEditURL:
		return m.beginURLEdit()

	case keybinds.ActionEditBody:
		return m.beginEditorEdit()

	case keybinds.ActionTogglePane:
		m.togglePane()

	case keybinds.ActionSend:
		return m.executeRequest()

	case keybinds.ActionOpenSearch:
		m.beginSearch()

	case keybinds.ActionCopyToClipboard:
		return m.copyToClipboard()

	case keybinds.ActionFilterResponse:
		return m.beginFilter()

	case keybinds.ActionClearFilter:
		m.clearFilter()

	case keybinds.ActionToggleHeaders:
		m.showHeaders = !m.showHeaders
		m.updateResponseView()
	}

	return nil
}

// inputAction matches keys that leave a text field
func (m *Model) inputAction(msg tea.KeyMsg) (keybinds.Action, bool) {
	return m.keybinds.Match(keybinds.ContextInput, msg.String())
}

// handleTitleKeys edits the title in place. Every way of leaving the field
// commits it.
func (m *Model) handleTitleKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.inputAction(msg); ok {
		if action == keybinds.ActionQuitForce {
			m.Cleanup()
			return tea.Quit
		}
		return m.commitTitle()
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	if err := m.ctrl.SetTitle(m.editIndex, m.titleInput.Value()); err != nil {
		m.log.WithError(err).Debug("title update rejected")
	}
	return cmd
}

func (m *Model) handleURLKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.inputAction(msg); ok {
		if action == keybinds.ActionQuitForce {
			m.Cleanup()
			return tea.Quit
		}
		m.urlInput.Blur()
		m.mode = ModeNormal
		return nil
	}

	before := m.urlInput.Value()
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	if m.urlInput.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.setURL(m.urlInput.Value()))
}

// handleEditorKeys feeds the body/headers editor. Enter inserts a newline,
// so only cancel, blur and send leave it.
func (m *Model) handleEditorKeys(msg tea.KeyMsg) tea.Cmd {
	// Typed characters always go to the editor; a send chord sends
	if msg.Type != tea.KeyRunes {
		if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionSend {
			return m.executeRequest()
		}
	}

	if action, ok := m.inputAction(msg); ok && action != keybinds.ActionTextSubmit {
		if action == keybinds.ActionQuitForce {
			m.Cleanup()
			return tea.Quit
		}
		m.endEditorEdit()
		return nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.storePaneText(m.editor.Value())
	return cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.inputAction(msg); ok {
		switch action {
		case keybinds.ActionQuitForce:
			m.Cleanup()
			return tea.Quit
		case keybinds.ActionTextCancel:
			m.endSearch(false)
		default:
			m.endSearch(true)
		}
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.performSearch()
	return cmd
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.inputAction(msg); ok {
		switch action {
		case keybinds.ActionQuitForce:
			m.Cleanup()
			return tea.Quit
		case keybinds.ActionTextSubmit:
			return m.applyFilter()
		default:
			m.filterInput.Blur()
			m.mode = ModeNormal
		}
		return nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeNormal
	case "ctrl+c":
		m.Cleanup()
		return tea.Quit
	default:
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return cmd
	}
	return nil
}

// handleMouse turns left clicks on the request list into interaction
// counts: one click selects, two on the same entry edit its title
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.responseView.ScrollUp(3)
		return nil
	case tea.MouseButtonWheelDown:
		m.responseView.ScrollDown(3)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	index, ok := m.entryAt(msg.X, msg.Y)
	if !ok {
		return nil
	}

	now := time.Now()
	if index == m.lastClick.index && now.Sub(m.lastClick.at) <= DoubleClickInterval {
		m.lastClick.count++
	} else {
		m.lastClick.count = 1
	}
	m.lastClick.index = index
	m.lastClick.at = now

	var cmds []tea.Cmd
	if m.mode == ModeEditTitle && index != m.editIndex {
		cmds = append(cmds, m.commitTitle())
	}
	if m.mode != ModeNormal && m.mode != ModeEditTitle {
		return tea.Batch(cmds...)
	}

	m.focusedPanel = panelSidebar
	m.cursor = index
	cmds = append(cmds, m.click(index, m.lastClick.count))
	return tea.Batch(cmds...)
}

// entryAt maps a screen position to a request list index
func (m *Model) entryAt(x, y int) (int, bool) {
	if x >= m.sidebarWidth()+ViewportBorderWidth {
		return 0, false
	}
	row := y - SidebarListTop
	if row < 0 || row >= m.sidebarPageSize() {
		return 0, false
	}
	index := m.sidebarOffset + row
	if index >= m.ctrl.Len() {
		return 0, false
	}
	return index, true
}
