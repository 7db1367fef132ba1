/*
Package keybinds provides customizable keyboard binding management.

# Key Concepts

Context Hierarchy:
  - Global: bindings available in every pane
  - Sidebar: request list focused
  - Response: response pane focused
  - Input: a text field is being edited

A key bound in the sidebar or response context shadows the same key in
global. The input context never falls back to global so that typed
characters reach the field.

# Components

Registry (registry.go):
  - Context-aware key matching
  - Multi-key sequences (e.g. "gg" for go-to-top)

Validator (validator.go):
  - Reserved key protection (ctrl+c always force quits)
  - Unknown actions and shadowing warnings

Defaults (defaults.go):
  - Used when no keybinds.jsonc exists

# Configuration File Format

Overrides live in keybinds.jsonc in the config directory. Each context maps
an action to a comma separated key list; the listed keys replace the
action's defaults in that context:

	{
	  // send with ctrl+r instead of s
	  "global": {"send": "ctrl+r"},
	  "sidebar": {"navigate_down": "down,j,ctrl+n"},
	}
*/
package keybinds
