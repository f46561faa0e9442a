package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"collectio/internal/adapters/tui/styles"
	"collectio/internal/application/commands"
	"collectio/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	PrevTab key.Binding
	NextTab key.Binding
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Rename  key.Binding
	Delete  key.Binding
	Edit    key.Binding
	Yank    key.Binding
	AddTo   key.Binding
	Remove  key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	PrevTab: key.NewBinding(
		key.WithKeys("h", "left", "shift+tab"),
		key.WithHelp("h/←", "prev"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("l", "right", "tab"),
		key.WithHelp("l/→", "next"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit file"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	AddTo: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "add to"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "remove"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the bindings shown under the browser
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.New, k.Rename, k.Delete, k.AddTo, k.Remove, k.Help, k.Quit}
}

// FullHelp groups every binding for the help view
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.Up, k.Down},
		{k.New, k.Rename, k.Delete, k.Yank},
		{k.AddTo, k.Remove, k.Edit, k.Reload},
		{k.Help, k.Quit},
	}
}

// chrome is the number of lines around the note list
const chrome = 10

// BrowserModel shows the collections as tabs and the notes of the selected one
type BrowserModel struct {
	ViewState
	backend     Backend
	collections []domain.CollectionWithCount
	notes       domain.NoteSet
	tab         int
	pager       *Paginator
	loaded      bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(backend Backend) *BrowserModel {
	return &BrowserModel{
		backend: backend,
		pager:   NewPaginator(10),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.Load
}

// Load reads the notes and the collections with counts
func (m *BrowserModel) Load() tea.Msg {
	ctx := context.Background()

	notes, err := m.backend.Notes.CurrentNotes(ctx)
	if err != nil {
		return LoadedMsg{Err: err}
	}
	collections, err := m.backend.Collections.GetCollectionsWithCounts(ctx, m.backend.Location(), notes)
	return LoadedMsg{Collections: collections, Notes: notes, Err: err}
}

// SetSize updates the view dimensions and the note page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(height - chrome)
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.SetMessage(ErrorText(msg.Err), true)
		}
		if msg.Collections != nil {
			m.notes = msg.Notes
			m.setCollections(msg.Collections)
		}
		return m, nil

	case CollectionsUpdatedMsg:
		m.setCollections(msg.Collections)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	selected := m.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.PrevTab):
		m.selectTab(m.tab - 1)

	case key.Matches(msg, BrowserKeys.NextTab):
		m.selectTab(m.tab + 1)

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.New):
		return func() tea.Msg { return SwitchToFormMsg{} }

	case key.Matches(msg, BrowserKeys.Rename), key.Matches(msg, BrowserKeys.Delete):
		if selected == nil {
			return nil
		}
		if e := commands.CheckEditEligibility(m.backend.Collections, selected.ID); !e.Allowed {
			m.SetMessage(e.Reason, true)
			return nil
		}
		target := selected.Collection
		if key.Matches(msg, BrowserKeys.Delete) {
			return func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
		}
		return func() tea.Msg { return SwitchToFormMsg{Target: &target} }

	case key.Matches(msg, BrowserKeys.Edit):
		return func() tea.Msg { return OpenEditorMsg{} }

	case key.Matches(msg, BrowserKeys.Yank):
		if selected != nil {
			id := selected.ID
			return func() tea.Msg { return CopyIDMsg{ID: id} }
		}

	case key.Matches(msg, BrowserKeys.Reload):
		return func() tea.Msg { return ReloadMsg{} }

	case key.Matches(msg, BrowserKeys.AddTo):
		n := int(msg.String()[0] - '0')
		if n >= len(m.collections) {
			m.SetMessage(fmt.Sprintf("There is no collection %d", n), true)
			return nil
		}
		return m.membership(commands.MembershipAdd, m.collections[n].ID)

	case key.Matches(msg, BrowserKeys.Remove):
		if selected == nil || selected.IsDefault {
			m.SetMessage("Notes can't be removed from All Notes", true)
			return nil
		}
		return m.membership(commands.MembershipRemove, selected.ID)
	}

	return nil
}

func (m *BrowserModel) membership(op commands.MembershipOp, collectionID string) tea.Cmd {
	noteID, ok := m.SelectedNote()
	if !ok {
		return nil
	}
	loc := m.backend.Location()

	return func() tea.Msg {
		cmd := commands.NewAddNoteCommand(m.backend.Collections, m.backend.Notes, loc, collectionID, noteID)
		if op == commands.MembershipRemove {
			cmd = commands.NewRemoveNoteCommand(m.backend.Collections, m.backend.Notes, loc, collectionID, noteID)
		}
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{Message: result.Message}
	}
}

// setCollections replaces the list, keeping the selected tab when it still exists
func (m *BrowserModel) setCollections(collections []domain.CollectionWithCount) {
	var selectedID string
	if s := m.Selected(); s != nil {
		selectedID = s.ID
	}

	m.collections = collections
	m.tab = 0
	for i, c := range collections {
		if c.ID == selectedID {
			m.tab = i
			break
		}
	}
	m.pager.SetTotal(len(m.VisibleNotes()))
}

func (m *BrowserModel) selectTab(i int) {
	if len(m.collections) == 0 {
		return
	}
	m.tab = (i + len(m.collections)) % len(m.collections)
	m.pager.Reset()
	m.pager.SetTotal(len(m.VisibleNotes()))
}

// Selected returns the collection of the active tab
func (m *BrowserModel) Selected() *domain.CollectionWithCount {
	if m.tab < 0 || m.tab >= len(m.collections) {
		return nil
	}
	return &m.collections[m.tab]
}

// SelectedNote returns the note under the cursor
func (m *BrowserModel) SelectedNote() (string, bool) {
	notes := m.VisibleNotes()
	if len(notes) == 0 {
		return "", false
	}
	return notes[m.pager.Cursor()], true
}

// VisibleNotes lists the notes of the active tab that still exist
func (m *BrowserModel) VisibleNotes() []string {
	selected := m.Selected()
	if selected == nil {
		return nil
	}
	if selected.IsDefault {
		return m.notes.IDs()
	}

	var out []string
	for _, id := range selected.NoteIDs {
		if m.notes.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// View renders the browser view
func (m *BrowserModel) View() string {
	vb := NewViewBuilder().Title("Collections")

	if !m.loaded {
		return vb.Muted("Loading...").String()
	}

	vb.Line(m.renderTabs()).BlankLine()

	notes := m.VisibleNotes()
	if len(notes) == 0 {
		vb.Muted("  No notes in this collection.")
	}
	start, end := m.pager.VisibleRange()
	for i := start; i < end && i < len(notes); i++ {
		if i == m.pager.Cursor() {
			vb.Line(styles.NoteSelected.Render(notes[i]))
		} else {
			vb.Line(styles.NoteItem.Render(notes[i]))
		}
	}

	if dots := m.pager.View(); dots != "" {
		vb.Line("  " + dots)
	}

	return vb.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(BrowserKeys.ShortHelp()...).
		String()
}

func (m *BrowserModel) renderTabs() string {
	tabs := make([]string, 0, len(m.collections))
	for i, c := range m.collections {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + label
		}
		if i > 0 && i <= 9 {
			label = fmt.Sprintf("%d:%s", i, label)
		}
		label += " " + styles.TabCount.Render(fmt.Sprintf("(%d)", c.NoteCount))

		style := styles.Tab
		if i == m.tab {
			style = styles.TabActive.BorderForeground(styles.CollectionColor(c.Color))
		}
		tabs = append(tabs, style.Render(label))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	if m.Width > 0 && lipgloss.Width(strip) > m.Width {
		// too wide: fall back to one tab per line
		return strings.Join(tabs, "\n")
	}
	return strip
}
