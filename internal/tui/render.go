package tui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/restcommander/internal/executor"
	"github.com/studiowebux/restcommander/internal/keybinds"
	"github.com/studiowebux/restcommander/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleActiveTab = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorCyan)
)

// methodStyle returns the badge style of a verb
func methodStyle(method types.Method) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Width(8).Align(lipgloss.Center)

	switch method {
	case types.MethodGet:
		return style.Background(lipgloss.Color("34")).Foreground(lipgloss.Color("255"))
	case types.MethodPost:
		return style.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0"))
	case types.MethodPut:
		return style.Background(lipgloss.Color("33")).Foreground(lipgloss.Color("255"))
	case types.MethodDelete:
		return style.Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255"))
	default:
		return style.Background(lipgloss.Color("240"))
	}
}

// sidebarWidth mirrors the split used by renderMain
func (m *Model) sidebarWidth() int {
	if m.width < SidebarNarrowWidth {
		return m.width / 2
	}
	return max(SidebarMinWidth, m.width*SidebarWidthRatio/100)
}

func (m *Model) rightWidth() int {
	return m.width - m.sidebarWidth() - SplitPaneBorderWidth
}

// sidebarPageSize is the number of request entries visible at once
func (m *Model) sidebarPageSize() int {
	return max(m.height-StatusBarHeight-SidebarChrome, 1)
}

func (m *Model) responseHeight() int {
	return max(m.height-StatusBarHeight-(RequestPaneHeight+RequestPaneChrome)-ViewportBorderWidth, 1)
}

// renderMain renders the main TUI view (request sidebar + request and response panes)
func (m *Model) renderMain() string {
	sidebarWidth := m.sidebarWidth()
	rightWidth := m.rightWidth()

	sidebarBorderColor := colorGray
	responseBorderColor := colorGray
	if m.focusedPanel == panelSidebar {
		sidebarBorderColor = colorGreen
	} else {
		responseBorderColor = colorGreen
	}

	requestBorderColor := colorGray
	if m.mode == ModeEditURL || m.mode == ModeEditBody {
		requestBorderColor = colorYellow
	}

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(sidebarBorderColor).
		Width(sidebarWidth).
		Height(m.height - StatusBarHeight - ViewportBorderWidth).
		Render(m.renderSidebar(sidebarWidth))

	requestBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(requestBorderColor).
		Width(rightWidth).
		Height(RequestPaneHeight + RequestPaneChrome - ViewportBorderWidth).
		Render(m.renderRequest())

	responseBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(responseBorderColor).
		Width(rightWidth).
		Height(m.responseHeight()).
		Render(m.responseView.View())

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarBox,
		lipgloss.JoinVertical(lipgloss.Left, requestBox, responseBox),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		m.renderStatusBar(),
	)
}

// renderSidebar renders the request list
func (m *Model) renderSidebar(width int) string {
	lines := []string{styleTitle.Render("Requests"), ""}

	requests := m.ctrl.Requests()
	states := m.ctrl.States()
	current := m.ctrl.CurrentIndex()

	endIdx := min(m.sidebarOffset+m.sidebarPageSize(), len(requests))
	maxTitleLen := max(width-14, 8)

	for i := m.sidebarOffset; i < endIdx; i++ {
		req := requests[i]

		marker := "  "
		if i == current {
			marker = "▸ "
		}

		var line string
		switch {
		case m.mode == ModeEditTitle && i == m.editIndex:
			line = marker + methodStyle(req.Type).Render(req.Type.String()) + " " + m.titleInput.View()
		case states[i].IsEdit:
			line = marker + methodStyle(req.Type).Render(req.Type.String()) + " " + styleWarning.Render(truncate(req.Title, maxTitleLen)+" ✎")
		case i == m.cursor && m.focusedPanel == panelSidebar:
			line = styleSelected.Render(fmt.Sprintf("%s%-8s %s", marker, req.Type, truncate(req.Title, maxTitleLen)))
		default:
			line = marker + methodStyle(req.Type).Render(req.Type.String()) + " " + truncate(req.Title, maxTitleLen)
		}

		lines = append(lines, line)
	}

	lines = append(lines, "")
	if len(requests) > 0 {
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("[%d/%d]", m.cursor+1, len(requests))))
	} else {
		lines = append(lines, styleSubtle.Render("No requests. Press n to create one"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1).
		Render(strings.Join(lines, "\n"))
}

// renderRequest renders the method, URL and body/headers editor of the
// selected request
func (m *Model) renderRequest() string {
	req, ok := m.ctrl.Current()
	if !ok {
		return styleSubtle.Render("No request selected")
	}

	url := req.URL
	switch {
	case m.mode == ModeEditURL:
		url = m.urlInput.View()
	case url == "":
		url = styleSubtle.Render("press u to set the URL")
	}
	top := methodStyle(req.Type).Render(req.Type.String()) + " " + url

	bodyTab := styleSubtle.Render("Body")
	headersTab := styleSubtle.Render("Headers")
	if m.requestPane == paneHeaders {
		headersTab = styleActiveTab.Render("Headers")
	} else {
		bodyTab = styleActiveTab.Render("Body")
	}
	tabs := bodyTab + styleSubtle.Render(" | ") + headersTab

	var pane string
	if m.editorWritable() {
		pane = m.editor.View()
	} else {
		pane = styleSubtle.Render(fmt.Sprintf("%s requests carry no body", req.Type))
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, tabs, pane)
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("restcommander %s | %d requests", m.version, m.ctrl.Len())
	if !m.ctrl.Persistent() {
		left += styleWarning.Render(" | not saved")
	}

	right := ""
	switch m.mode {
	case ModeSearch:
		right = "Search: " + m.searchInput.View()
	case ModeFilter:
		right = "Filter: " + m.filterInput.View()
	case ModeEditTitle, ModeEditURL, ModeEditBody:
		right = styleSubtle.Render("esc or tab to leave the field")
	default:
		if m.errorMsg != "" {
			right = styleError.Render(m.errorMsg)
		} else if m.statusMsg != "" {
			right = m.statusMsg
		} else {
			right = styleSubtle.Render("n new | s send | / search | ? help | q quit")
		}
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", spacing) + right
}

// updateViewport resizes the viewports and inputs to the window
func (m *Model) updateViewport() {
	rightWidth := m.rightWidth()

	m.responseView.Width = rightWidth
	m.responseView.Height = m.responseHeight()

	m.editor.SetWidth(max(rightWidth-1, 10))
	m.editor.SetHeight(RequestPaneHeight)
	m.urlInput.Width = max(rightWidth-10, 10)
	m.titleInput.Width = max(m.sidebarWidth()-14, 8)

	m.helpView.Width = m.width - ModalWidthMargin
	m.helpView.Height = m.height - ModalHeightMargin - ViewportBorderWidth

	m.adjustScrollOffset()
	m.updateResponseView()
}

// updateResponseView updates the response viewport content
func (m *Model) updateResponseView() {
	var content strings.Builder
	resp := m.ctrl.Response()

	if m.loading {
		content.WriteString(styleWarning.Render("Sending...") + "\n\n")
	}

	if !resp.HasResult() {
		if !m.loading {
			content.WriteString(styleSubtle.Render("No response yet\n\nPress s to send the selected request"))
		}
		m.responseView.SetContent(content.String())
		return
	}

	statusStyle := styleSuccess
	if !resp.OK {
		statusStyle = styleError
	}
	elapsed := "-"
	if resp.Time != nil {
		elapsed = executor.FormatDuration(*resp.Time)
	}
	statusLine := strings.TrimSpace(fmt.Sprintf("%d %s", resp.Code, http.StatusText(resp.Code)))
	content.WriteString(statusStyle.Render(statusLine) + "  " + styleSubtle.Render(elapsed) + "\n")

	if m.showHeaders && resp.Headers != "" {
		content.WriteString("\n" + styleTitle.Render("Headers") + "\n")
		content.WriteString(highlightJSON(resp.Headers) + "\n")
	}

	label := "Body"
	body := resp.Body
	if m.filterActive {
		label = fmt.Sprintf("Body (filter: %s)", m.filterExpr)
		body = m.filteredBody
	}
	content.WriteString("\n" + styleTitle.Render(label) + "\n")
	content.WriteString(highlightJSON(body))

	wrapped := content.String()
	if m.responseView.Width > 0 {
		wrapped = lipgloss.NewStyle().Width(m.responseView.Width).Render(wrapped)
	}
	m.responseView.SetContent(wrapped)
}

// helpSections lists the actions shown in the help view per context
var helpSections = []struct {
	title   string
	context keybinds.Context
	actions []keybinds.Action
}{
	{"Requests", keybinds.ContextSidebar, []keybinds.Action{
		keybinds.ActionNavigateUp, keybinds.ActionNavigateDown, keybinds.ActionGoToTop, keybinds.ActionGoToBottom,
		keybinds.ActionNewRequest, keybinds.ActionSelect, keybinds.ActionEditTitle, keybinds.ActionCycleMethod,
		keybinds.ActionEditURL, keybinds.ActionEditBody, keybinds.ActionTogglePane, keybinds.ActionSend,
		keybinds.ActionOpenSearch,
	}},
	{"Response", keybinds.ContextResponse, []keybinds.Action{
		keybinds.ActionNavigateUp, keybinds.ActionNavigateDown, keybinds.ActionPageUp, keybinds.ActionPageDown,
		keybinds.ActionCopyToClipboard, keybinds.ActionFilterResponse, keybinds.ActionClearFilter,
		keybinds.ActionToggleHeaders,
	}},
	{"Fields", keybinds.ContextInput, []keybinds.Action{
		keybinds.ActionTextSubmit, keybinds.ActionTextCancel, keybinds.ActionTextBlur,
	}},
	{"General", keybinds.ContextGlobal, []keybinds.Action{
		keybinds.ActionSwitchFocus, keybinds.ActionOpenHelp, keybinds.ActionQuit, keybinds.ActionQuitForce,
	}},
}

// openHelp renders the current bindings into the help viewport
func (m *Model) openHelp() {
	var content strings.Builder
	for _, section := range helpSections {
		content.WriteString(styleTitle.Render(section.title) + "\n")
		for _, action := range section.actions {
			info := keybinds.GetActionInfo(action)
			keys := m.keybinds.GetBindingString(section.context, action)
			content.WriteString(fmt.Sprintf("  %-18s %s\n", keys, info.Description))
		}
		content.WriteString("\n")
	}
	content.WriteString(styleSubtle.Render("Double-click a request to edit its title. Bindings can be changed in " + keybinds.FileName))

	m.helpView.SetContent(content.String())
	m.helpView.GotoTop()
	m.mode = ModeHelp
}

func (m *Model) renderHelp() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(m.width - ModalWidthMargin).
		Render(m.helpView.View())
}
