package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restcommander/internal/filter"
	"github.com/studiowebux/restcommander/internal/session"
)

// moveCursor moves the list cursor, clamped to the list
func (m *Model) moveCursor(delta int) {
	n := m.ctrl.Len()
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.adjustScrollOffset()
}

// adjustScrollOffset keeps the cursor inside the visible page
func (m *Model) adjustScrollOffset() {
	pageSize := m.sidebarPageSize()
	if m.cursor < m.sidebarOffset {
		m.sidebarOffset = m.cursor
	} else if m.cursor >= m.sidebarOffset+pageSize {
		m.sidebarOffset = m.cursor - pageSize + 1
	}
}

func (m *Model) newRequest() tea.Cmd {
	req, err := m.ctrl.NewRequest(context.Background())
	m.cursor = m.ctrl.CurrentIndex()
	m.adjustScrollOffset()
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Created %s but could not save it: %v", req.Title, err))
	}
	return m.setStatusMessage("Created new request")
}

// click applies an interaction count to an entry
func (m *Model) click(index, count int) tea.Cmd {
	if err := m.ctrl.Click(index, count); err != nil {
		if errors.Is(err, session.ErrIndexOutOfRange) {
			return nil
		}
		return m.setErrorMessage(err.Error())
	}

	if count == 2 {
		return m.beginTitleEdit(index)
	}
	return nil
}

func (m *Model) beginTitleEdit(index int) tea.Cmd {
	req := m.ctrl.Requests()[index]
	m.editIndex = index
	m.mode = ModeEditTitle
	m.titleInput.SetValue(req.Title)
	m.titleInput.CursorEnd()
	return m.titleInput.Focus()
}

// commitTitle persists the edited title and leaves the field
func (m *Model) commitTitle() tea.Cmd {
	m.titleInput.Blur()
	m.mode = ModeNormal

	if err := m.ctrl.CommitTitle(context.Background(), m.editIndex); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to save title: %v", err))
	}
	return nil
}

func (m *Model) cycleMethod() tea.Cmd {
	req, ok := m.ctrl.Current()
	if !ok {
		return m.setErrorMessage("No request selected")
	}

	if err := m.ctrl.SetMethod(context.Background(), req.Type.Next()); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to save method: %v", err))
	}
	return nil
}

func (m *Model) beginURLEdit() tea.Cmd {
	req, ok := m.ctrl.Current()
	if !ok {
		return m.setErrorMessage("No request selected")
	}

	m.mode = ModeEditURL
	m.urlInput.SetValue(req.URL)
	m.urlInput.CursorEnd()
	return m.urlInput.Focus()
}

// setURL persists every change of the URL field
func (m *Model) setURL(url string) tea.Cmd {
	if err := m.ctrl.SetURL(context.Background(), url); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to save URL: %v", err))
	}
	return nil
}

// editorWritable reports whether the visible pane accepts input. The body
// pane is read-only for methods without a body.
func (m *Model) editorWritable() bool {
	if m.requestPane == paneHeaders {
		return true
	}
	req, ok := m.ctrl.Current()
	return ok && req.Type.HasBody()
}

func (m *Model) beginEditorEdit() tea.Cmd {
	if !m.editorWritable() {
		req, _ := m.ctrl.Current()
		return m.setErrorMessage(fmt.Sprintf("%s requests have no body", req.Type))
	}

	m.mode = ModeEditBody
	m.syncEditor()
	return m.editor.Focus()
}

func (m *Model) endEditorEdit() {
	m.storePaneText(m.editor.Value())
	m.editor.Blur()
	m.mode = ModeNormal
}

func (m *Model) togglePane() {
	if m.requestPane == paneBody {
		m.requestPane = paneHeaders
	} else {
		m.requestPane = paneBody
	}
	m.syncEditor()
}

// paneText returns the pending text of the visible pane
func (m *Model) paneText() string {
	if m.requestPane == paneHeaders {
		return m.ctrl.HeadersText()
	}
	return m.ctrl.BodyText()
}

func (m *Model) storePaneText(text string) {
	if m.requestPane == paneHeaders {
		m.ctrl.SetHeadersText(text)
	} else {
		m.ctrl.SetBodyText(text)
	}
}

// syncEditor loads the visible pane's text into the editor
func (m *Model) syncEditor() {
	if m.editor.Value() != m.paneText() {
		m.editor.SetValue(m.paneText())
	}
}

// executeRequest starts a send. A send started while another is in flight
// cancels the older one and its late result is discarded.
func (m *Model) executeRequest() tea.Cmd {
	if m.mode == ModeEditBody {
		m.endEditorEdit()
	}

	pending, err := m.ctrl.BeginSend()
	if errors.Is(err, session.ErrInvalidBody) {
		// The in-flight send is already superseded
		if m.requestCancelFunc != nil {
			m.requestCancelFunc()
			m.requestCancelFunc = nil
		}
		m.loading = false
		m.clearFilter()
		return m.setErrorMessage("Request body is not valid JSON")
	}
	if err != nil {
		return m.setErrorMessage(err.Error())
	}

	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if m.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), m.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	m.requestCancelFunc = cancel
	m.loading = true
	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Sending %s %s", pending.Call.Method, pending.Call.URL)
	m.updateResponseView()

	return func() tea.Msg {
		return requestExecutedMsg{
			pending:  pending,
			response: pending.Run(ctx),
		}
	}
}

func (m *Model) handleRequestExecuted(msg requestExecutedMsg) tea.Cmd {
	if !m.ctrl.Complete(msg.pending, msg.response) {
		return nil
	}

	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
		m.requestCancelFunc = nil
	}
	m.loading = false
	m.filterActive = false
	m.filteredBody = ""
	m.updateResponseView()
	m.responseView.GotoTop()
	m.focusedPanel = panelResponse

	resp := m.ctrl.Response()
	if !resp.OK {
		return m.setErrorMessage(fmt.Sprintf("Request failed with status %d", resp.Code))
	}
	return m.setStatusMessage("Request completed")
}

// copyToClipboard copies the full response body, or the filtered result
// when a filter is active
func (m *Model) copyToClipboard() tea.Cmd {
	resp := m.ctrl.Response()
	if !resp.HasResult() {
		return m.setErrorMessage("No response to copy")
	}

	body := resp.Body
	if m.filterActive {
		body = m.filteredBody
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(body); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg("Response copied to clipboard")
	}
}

func (m *Model) beginSearch() {
	m.mode = ModeSearch
	m.searchOrigin = m.ctrl.CurrentIndex()
	m.searchInput.SetValue("")
	m.searchInput.Focus()
}

// performSearch selects the best fuzzy title match as the query changes
func (m *Model) performSearch() {
	index, ok := m.ctrl.Find(m.searchInput.Value())
	if !ok {
		return
	}
	if err := m.ctrl.Select(index); err == nil {
		m.cursor = index
		m.adjustScrollOffset()
		m.syncEditor()
	}
}

func (m *Model) endSearch(keep bool) {
	m.searchInput.Blur()
	m.mode = ModeNormal
	if keep || m.searchOrigin < 0 {
		return
	}
	if err := m.ctrl.Select(m.searchOrigin); err == nil {
		m.cursor = m.searchOrigin
		m.adjustScrollOffset()
	}
}

func (m *Model) beginFilter() tea.Cmd {
	if !m.ctrl.Response().HasResult() {
		return m.setErrorMessage("No response to filter")
	}
	m.mode = ModeFilter
	m.filterInput.SetValue(m.filterExpr)
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

// applyFilter runs the JMESPath expression over the response body
func (m *Model) applyFilter() tea.Cmd {
	expr := m.filterInput.Value()
	m.filterInput.Blur()
	m.mode = ModeNormal

	if expr == "" {
		m.clearFilter()
		return nil
	}
	if !filter.IsValidJMESPath(expr) {
		return m.setErrorMessage(fmt.Sprintf("Invalid JMESPath expression: %s", expr))
	}

	result, err := filter.Apply(m.ctrl.Response().Body, expr)
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Filter failed: %v", err))
	}

	m.filterExpr = expr
	m.filteredBody = result
	m.filterActive = true
	m.updateResponseView()
	m.responseView.GotoTop()
	return m.setStatusMessage(fmt.Sprintf("Filter applied: %s", expr))
}

func (m *Model) clearFilter() {
	m.filterActive = false
	m.filteredBody = ""
	m.updateResponseView()
}
