/*
Package tui implements the terminal user interface for RestCommander.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains UI-only state (cursor, inputs, viewports, messages)
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

Request state lives in a session.Controller. The model never writes to
the store itself; every change goes through the controller, which
persists it.

# Key Components

  - model.go: Model struct, modes and the Update loop
  - init.go: Construction and program startup
  - keys.go: Keyboard and mouse handling, keybind routing
  - actions.go: Operations behind each key (new, edit, send, filter)
  - render.go: Layout and styles
  - highlight.go: JSON syntax highlighting of response bodies

# Interaction Counts

A single click (or enter) on a request selects it. A double click (or e)
puts its title into edit mode. Leaving the title field in any way, or
clicking another request, commits the title.

# Sending

The send key validates the body synchronously in Update. The network call
runs in a tea.Cmd and its result returns as a requestExecutedMsg. Starting
a new send cancels the previous one, and a result from an older send is
discarded by the controller.

# Keybind System

Keybinds are managed through the keybinds.Registry:
  - Context-aware bindings (global, sidebar, response, input)
  - User-customizable via keybinds.jsonc
  - Reserved keys protection
*/
package tui
