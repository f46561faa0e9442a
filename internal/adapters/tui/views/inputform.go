package views

import (
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"collectio/internal/adapters/tui/styles"
	"collectio/internal/application"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
}

// FieldCheck rejects a field value before the form is submitted
type FieldCheck func(value string) error

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CheckColor accepts an empty value or a #rgb / #rrggbb hex color
func CheckColor(value string) error {
	if value == "" || hexColor.MatchString(value) {
		return nil
	}
	return errors.New("must look like #059669")
}

// InputField is one labelled text input. Loaded keeps the value the field
// was filled with so edits can be told apart from untouched fields.
type InputField struct {
	Label  string
	Input  textinput.Model
	Check  FieldCheck
	Swatch bool
	loaded string
}

// InputForm is a vertical stack of fields with one focused at a time
type InputForm struct {
	Fields []InputField
	Keys   InputFormKeyMap
	focus  int
}

// NewInputForm creates a form with the first field focused
func NewInputForm(fields ...InputField) *InputForm {
	f := &InputForm{Fields: fields, Keys: DefaultInputFormKeys}
	f.Focus(0)
	return f
}

// NewInputField creates a field. A charLimit of zero keeps the textinput default.
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// WithCheck attaches a check run by Validate
func (f InputField) WithCheck(check FieldCheck) InputField {
	f.Check = check
	return f
}

// WithSwatch renders the value as a color sample next to the input
func (f InputField) WithSwatch() InputField {
	f.Swatch = true
	return f
}

// Init returns the cursor blink command
func (f *InputForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update moves focus on navigation keys and feeds anything else to the
// focused input. It reports whether the message was a navigation key.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.Focus(f.focus + 1)
			return true, nil
		case key.Matches(msg, f.Keys.Prev):
			f.Focus(f.focus - 1)
			return true, nil
		}
	}

	if len(f.Fields) == 0 {
		return false, nil
	}
	var cmd tea.Cmd
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	return false, cmd
}

// Focus focuses field i, wrapping around at both ends
func (f *InputForm) Focus(i int) {
	if len(f.Fields) == 0 {
		return
	}
	f.Fields[f.focus].Input.Blur()
	f.focus = (i%len(f.Fields) + len(f.Fields)) % len(f.Fields)
	f.Fields[f.focus].Input.Focus()
}

// Focused returns the index of the focused field
func (f *InputForm) Focused() int {
	return f.focus
}

// Value returns the trimmed value of field i
func (f *InputForm) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[i].Input.Value())
}

// Load fills the fields in order and remembers the values for Changed
func (f *InputForm) Load(values ...string) {
	for i := range f.Fields {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.Fields[i].Input.SetValue(v)
		f.Fields[i].loaded = v
	}
	f.Focus(0)
}

// Changed reports whether field i differs from what Load put there
func (f *InputForm) Changed(i int) bool {
	if i < 0 || i >= len(f.Fields) {
		return false
	}
	return f.Value(i) != strings.TrimSpace(f.Fields[i].loaded)
}

// Validate runs every field check and returns the first failure
func (f *InputForm) Validate() error {
	for i, field := range f.Fields {
		if field.Check == nil {
			continue
		}
		if err := field.Check(f.Value(i)); err != nil {
			return &application.ValidationError{Field: strings.ToLower(field.Label), Message: err.Error()}
		}
	}
	return nil
}

// RenderField renders the label, the input and, for swatch fields, a color sample
func (f *InputForm) RenderField(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	field := f.Fields[i]

	style := styles.InputField
	if i == f.focus {
		style = styles.InputFocused
	}
	line := style.Render(field.Input.View())

	if field.Swatch {
		if v := f.Value(i); CheckColor(v) == nil && v != "" {
			sample := lipgloss.NewStyle().Background(lipgloss.Color(v)).Render("    ")
			line = lipgloss.JoinHorizontal(lipgloss.Center, line, " ", sample)
		}
	}
	return styles.InputLabel.Render(field.Label) + "\n" + line
}

// RenderHelp renders the key help line for the form
func (f *InputForm) RenderHelp(submitText string) string {
	bindings := []key.Binding{f.Keys.Submit, f.Keys.Cancel}
	if len(f.Fields) > 1 {
		bindings = append([]key.Binding{f.Keys.Next}, bindings...)
	}
	bindings[len(bindings)-2].SetHelp("enter", submitText)
	return RenderHelpLine(bindings...)
}
