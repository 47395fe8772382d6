package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytxl/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgActionComplete
)

type actionOutcome struct {
	output string
	err    error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// actionCompleteMsg is the constructor for [MsgActionComplete]
func actionCompleteMsg(output string, err error) Msg {
	return Msg{kind: MsgActionComplete, data: actionOutcome{output: output, err: err}}
}
