package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"collectio/internal/adapters/tui/views"
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewForm
	ViewDelete
	ViewHelp
)

// Options configures the application. Only Backend is required.
type Options struct {
	Backend views.Backend

	// EditableFile maps a save location to the file the editor opens
	EditableFile func(location string) (string, bool)
	Editor       ports.EditorOpener

	// Clipboard defaults to the system clipboard
	Clipboard func(text string) error

	// ReloadConfig re-reads configuration before a manual reload
	ReloadConfig func() error

	Logger *zap.Logger
}

// App is the main TUI application model
type App struct {
	opts Options
	log  *zap.Logger

	updates     chan []domain.CollectionWithCount
	unsubscribe func()

	state   ViewState
	browser *views.BrowserModel
	form    *views.FormModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application and subscribes it to collection changes
func NewApp(opts Options) *App {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	a := &App{
		opts:    opts,
		log:     opts.Logger.Named("tui"),
		updates: make(chan []domain.CollectionWithCount, 1),
		state:   ViewBrowser,
		browser: views.NewBrowserModel(opts.Backend),
		form:    views.NewFormModel(opts.Backend),
		delete:  views.NewDeleteModel(opts.Backend),
		help:    views.NewHelpModel(),
	}
	a.unsubscribe = opts.Backend.Collections.Subscribe(a.push)
	return a
}

// push hands a delivery to the program without blocking the bus. Only the
// latest list is kept when the program falls behind.
func (a *App) push(collections []domain.CollectionWithCount) error {
	for {
		select {
		case a.updates <- collections:
			return nil
		default:
		}
		select {
		case <-a.updates:
		default:
		}
	}
}

func (a *App) waitForUpdate() tea.Msg {
	collections, ok := <-a.updates
	if !ok {
		return nil
	}
	return views.CollectionsUpdatedMsg{Collections: collections}
}

// Close stops listening for collection changes
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.waitForUpdate)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.CollectionsUpdatedMsg:
		a.browser.Update(msg)
		return a, a.waitForUpdate

	case views.LoadedMsg:
		if msg.Err == nil {
			a.opts.Backend.Collections.ObserveNotes(msg.Notes)
		}
		a.browser.Update(msg)
		return a, nil

	// View switching messages
	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.SetTarget(msg.Target)
		return a, a.form.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Target)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// Results
	case views.ActionDoneMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, nil

	case views.ActionErrMsg:
		a.log.Warn("action failed", zap.Error(msg.Err))
		if a.state == ViewForm {
			a.form.SetMessage(views.ErrorText(msg.Err), true)
			return a, nil
		}
		a.state = ViewBrowser
		a.browser.SetMessage(views.ErrorText(msg.Err), true)
		return a, nil

	case views.ReloadMsg:
		return a, a.reload()

	case views.CopyIDMsg:
		if err := a.opts.Clipboard(msg.ID); err != nil {
			a.browser.SetMessage(fmt.Sprintf("Could not copy: %v", err), true)
		} else {
			a.browser.SetMessage("Copied "+msg.ID, false)
		}
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor()

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(fmt.Sprintf("Editor: %v", msg.err), true)
		}
		// the file may have changed behind the cache
		a.opts.Backend.Collections.Invalidate()
		return a, a.browser.Load
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) reload() tea.Cmd {
	if a.opts.ReloadConfig != nil {
		if err := a.opts.ReloadConfig(); err != nil {
			a.browser.SetMessage(fmt.Sprintf("Config: %v", err), true)
		}
	}
	a.opts.Backend.Collections.Invalidate()
	a.browser.SetMessage("Reloaded", false)
	return a.browser.Load
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor() tea.Cmd {
	if a.opts.Editor == nil || a.opts.EditableFile == nil {
		a.browser.SetMessage("No editor available", true)
		return nil
	}

	path, ok := a.opts.EditableFile(a.opts.Backend.Location())
	if !ok {
		a.browser.SetMessage("Collections are not stored in a file with this backend", true)
		return nil
	}

	cmd, err := a.opts.Editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

// ErrNoBackend is returned by Run when the options carry no collection service
var ErrNoBackend = errors.New("tui: no collection backend")

// Run starts the program in the alternate screen and blocks until it quits
func Run(opts Options) error {
	if opts.Backend.Collections == nil {
		return ErrNoBackend
	}

	app := NewApp(opts)
	defer app.Close()

	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
