// Package tui implements the derlens terminal user interface.
//
// The viewer is built with Charmbracelet's BubbleTea, Lipgloss and
// Bubbles libraries. Navigation state lives in internal/nav; this
// package maps keys onto it and renders the result.
//
// Component architecture:
//
//	model.go   root model, message routing, Init/Update/View
//	keys.go    key bindings per mode
//	theme.go   centralized color and style definitions
//	header.go  top bar and footer status line with key hints
//	editor.go  input pane, decode and history recall
//	tree.go    collapsible tree pane
//	inspect.go tag/length/value breakdown and clipboard copy
//	help.go    full key reference overlay
//	helpers.go truncation and layout arithmetic
package tui
