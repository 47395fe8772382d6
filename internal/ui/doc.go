// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI offers the same operations as the numbered menu:
//  1. [MenuView] : pick an [Action] from a filterable list
//  2. [InputView] : enter the URL or spreadsheet path the action needs
//  3. [RunningView] : spinner plus the latest progress update; skipped items are listed as they fail
//  4. [ResultView] : the action's output or error
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Actions run in a goroutine and report through a progress channel, so the UI keeps rendering while requests are in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
