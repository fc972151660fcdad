package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/formsmith/internal/models"
	"github.com/tgienger/formsmith/internal/reconcile"
)

// Messages the panes send up to the app. Each one is a one-way
// notification; the app routes it to the editor.

type GroupCreateRequested struct{}

type GroupSelected struct {
	Group models.FieldGroup
}

type GroupEditRequested struct {
	Group models.FieldGroup
}

// GroupDeleteConfirmed is only sent after the user answered yes
type GroupDeleteConfirmed struct {
	Group models.FieldGroup
}

type ElementSelected struct {
	Element models.FormElement
}

type ElementDropped struct {
	Event reconcile.DropEvent
}

type ElementCopyRequested struct {
	Element models.FormElement
}

type ElementDeleteRequested struct {
	Element models.FormElement
}

type ElementCommitted struct {
	Element models.FormElement
}

type GroupCommitted struct {
	Name        string
	Description string
}

type DrawerClosed struct{}

// emit wraps msg in a command
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
