package views

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"collectio/internal/adapters/tui/styles"
	"collectio/internal/application/commands"
	"collectio/internal/domain"
)

// DeleteKeyMap defines key bindings for the delete confirmation
type DeleteKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DeleteKeys = DeleteKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "delete"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "q"),
		key.WithHelp("n/esc", "keep"),
	),
}

// DeleteModel asks before deleting a collection
type DeleteModel struct {
	ViewState
	backend Backend
	target  *domain.Collection
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(backend Backend) *DeleteModel {
	return &DeleteModel{backend: backend}
}

// SetTarget sets the collection to delete
func (m *DeleteModel) SetTarget(c domain.Collection) {
	m.ClearMessage()
	m.target = &c
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DeleteKeys.Confirm):
			return m, m.doDelete
		case key.Matches(msg, DeleteKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.target == nil {
		return ActionErrMsg{Err: errors.New("no collection selected")}
	}

	cmd := commands.NewDeleteCommand(m.backend.Collections, m.backend.Location(), m.target.ID)
	if _, err := cmd.Execute(context.Background()); err != nil {
		return ActionErrMsg{Err: err}
	}
	return ActionDoneMsg{Message: fmt.Sprintf("Deleted collection: %s", m.target.Name)}
}

// View renders the delete view
func (m *DeleteModel) View() string {
	vb := NewViewBuilder().Title("Delete Collection")
	if m.target == nil {
		return vb.Muted("Nothing selected.").String()
	}

	name := m.target.Name
	if m.target.Icon != "" {
		name = m.target.Icon + " " + name
	}
	swatch := styles.TabActive.BorderForeground(styles.CollectionColor(m.target.Color)).Render(name)

	return vb.Line(swatch).
		Muted("  " + m.target.ID).
		BlankLine().
		Muted(fmt.Sprintf("%d notes will stay in All Notes.", len(m.target.NoteIDs))).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(DeleteKeys.Confirm, DeleteKeys.Cancel).
		String()
}
