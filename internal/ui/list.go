package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytxl/internal/tasks"
)

var _ list.DefaultItem = actionItem{}

// Action is one entry of the menu.
//
// Run receives the text typed at Prompt and returns the text shown on the result screen.
type Action struct {
	Name        string
	Summary     string
	Prompt      string
	Placeholder string
	Required    bool
	Run         func(ctx context.Context, input string, progress chan<- tasks.ProgressUpdate) (string, error)
}

// actionItem wraps [Action] to implement [list.Item].
type actionItem struct {
	action Action
}

func (i actionItem) FilterValue() string { return i.action.Name }
func (i actionItem) Title() string       { return i.action.Name }
func (i actionItem) Description() string { return i.action.Summary }
