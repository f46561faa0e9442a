package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"collectio/internal/adapters/tui/styles"
	"collectio/internal/application"
)

var shortHelp = func() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.MutedText
	return h
}()

// RenderHelpLine renders bindings on one line
func RenderHelpLine(bindings ...key.Binding) string {
	return shortHelp.ShortHelpView(bindings)
}

// RenderMessage styles a status line; empty stays empty
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// ErrorText is what the views show for a failed action
func ErrorText(err error) string {
	if application.KindOf(err) == application.KindValidation {
		return err.Error()
	}
	return application.UserMessage(err)
}

// ViewBuilder assembles a screen line by line
type ViewBuilder struct {
	lines []string
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the screen title followed by a gap
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.lines = append(v.lines, styles.Title.Render(title), "")
	return v
}

// Line adds text as is
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.lines = append(v.lines, text)
	return v
}

// BlankLine adds an empty line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	return v.Line("")
}

// Muted adds dimmed text
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Message adds the status line and a gap, if there is one
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	return v.Line(RenderMessage(message, isError)).BlankLine()
}

// Help adds the key help line
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	return v.Line(RenderHelpLine(bindings...))
}

// String joins the lines inside the app frame
func (v *ViewBuilder) String() string {
	return styles.App.Render(strings.Join(v.lines, "\n"))
}
