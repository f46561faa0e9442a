package views

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"collectio/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/?", "close"),
	),
}

// HelpModel lists every browser binding grouped by what it acts on
type HelpModel struct {
	ViewState
	help help.Model
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.MutedText
	return &HelpModel{help: h}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	return NewViewBuilder().
		Title("Collectio Help").
		Line(m.help.View(BrowserKeys)).
		BlankLine().
		Muted("All Notes always lists every note and cannot be changed.").
		Muted("Deleting a collection never deletes its notes.").
		BlankLine().
		Help(HelpKeys.Close).
		String()
}
