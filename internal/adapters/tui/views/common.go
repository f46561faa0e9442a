package views

import (
	"collectio/internal/domain"
	"collectio/internal/ports"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Backend is what every view operates on. Location is called per action so
// a changed save location takes effect without restarting.
type Backend struct {
	Collections ports.Collections
	Notes       ports.NoteSource
	Location    func() string
}

// View switching messages

type SwitchToBrowserMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToFormMsg struct {
	// Target is nil for create, the collection to edit otherwise
	Target *domain.Collection
}

type SwitchToDeleteMsg struct {
	Target domain.Collection
}

// OpenEditorMsg asks the app to open the collections file
type OpenEditorMsg struct{}

// CopyIDMsg asks the app to copy a collection id to the clipboard
type CopyIDMsg struct {
	ID string
}

// ReloadMsg asks the app to drop caches and reload
type ReloadMsg struct{}

// Result messages

// ActionDoneMsg reports a successful mutation
type ActionDoneMsg struct {
	Message string
}

// ActionErrMsg reports a failed mutation
type ActionErrMsg struct {
	Err error
}

// LoadedMsg carries a fresh read of collections and notes
type LoadedMsg struct {
	Collections []domain.CollectionWithCount
	Notes       domain.NoteSet
	Err         error
}

// CollectionsUpdatedMsg carries a delivery from the notification bus
type CollectionsUpdatedMsg struct {
	Collections []domain.CollectionWithCount
}
