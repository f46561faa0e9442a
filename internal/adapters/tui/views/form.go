package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"collectio/internal/application/commands"
	"collectio/internal/domain"
)

const (
	fieldName = iota
	fieldIcon
	fieldColor
)

// FormModel creates a collection or edits the selected one
type FormModel struct {
	ViewState
	backend Backend
	form    *InputForm
	target  *domain.Collection
}

// NewFormModel creates a new form view model
func NewFormModel(backend Backend) *FormModel {
	return &FormModel{
		backend: backend,
		form: NewInputForm(
			NewInputField("Name", "e.g. Reading list", 80),
			NewInputField("Icon", "optional", 32),
			NewInputField("Color", "optional, e.g. #059669", 16).WithCheck(CheckColor).WithSwatch(),
		),
	}
}

// SetTarget switches between create (nil) and edit mode
func (m *FormModel) SetTarget(target *domain.Collection) {
	m.ClearMessage()
	m.target = target
	if target == nil {
		m.form.Load()
		return
	}
	m.form.Load(target.Name, target.Icon, target.Color)
}

// Editing reports whether the form edits an existing collection
func (m *FormModel) Editing() bool {
	return m.target != nil
}

// Init initializes the form view
func (m *FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the form view
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *FormModel) submit() tea.Msg {
	if err := m.form.Validate(); err != nil {
		return ActionErrMsg{Err: err}
	}

	ctx := context.Background()
	name := m.form.Value(fieldName)
	icon := m.form.Value(fieldIcon)
	color := m.form.Value(fieldColor)

	if m.target == nil {
		result, err := commands.NewCreateCommand(m.backend.Collections, m.backend.Location(), name, icon, color).Execute(ctx)
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}
	}

	var patch domain.Patch
	if m.form.Changed(fieldName) {
		patch.Name = &name
	}
	if m.form.Changed(fieldIcon) {
		patch.Icon = &icon
	}
	if m.form.Changed(fieldColor) {
		patch.Color = &color
	}
	if patch.IsEmpty() {
		return SwitchToBrowserMsg{}
	}

	result, err := commands.NewUpdateCommand(m.backend.Collections, m.backend.Location(), m.target.ID, patch).Execute(ctx)
	if err != nil {
		return ActionErrMsg{Err: err}
	}
	return ActionDoneMsg{Message: result.Message}
}

// View renders the form view
func (m *FormModel) View() string {
	title, submit := "New Collection", "create"
	if m.target != nil {
		title, submit = "Edit Collection", "save"
	}

	vb := NewViewBuilder().Title(title)
	for i := range m.form.Fields {
		vb.Line(m.form.RenderField(i))
	}
	return vb.BlankLine().
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp(submit)).
		String()
}
