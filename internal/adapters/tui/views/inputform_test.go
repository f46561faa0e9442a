package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"collectio/internal/application"
)

func TestCheckColor(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"", true},
		{"#059669", true},
		{"#fff", true},
		{"#ABCDEF", true},
		{"059669", false},
		{"#05966", false},
		{"teal", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if err := CheckColor(tt.value); (err == nil) != tt.ok {
				t.Errorf("CheckColor(%q) = %v, want ok=%v", tt.value, err, tt.ok)
			}
		})
	}
}

func newTestForm() *InputForm {
	return NewInputForm(
		NewInputField("Name", "", 0),
		NewInputField("Icon", "", 0),
		NewInputField("Color", "", 0).WithCheck(CheckColor),
	)
}

func TestInputForm_FocusWraps(t *testing.T) {
	f := newTestForm()

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.Focused() != 2 {
		t.Errorf("shift+tab from the first field should wrap to the last, got %d", f.Focused())
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.Focused() != 0 {
		t.Errorf("tab from the last field should wrap to the first, got %d", f.Focused())
	}
}

func TestInputForm_ChangedTracksLoadedValues(t *testing.T) {
	f := newTestForm()
	f.Load("Work", "folder", "#059669")

	f.Fields[0].Input.SetValue("  Work ")
	f.Fields[1].Input.SetValue("star")

	if f.Changed(0) {
		t.Error("whitespace around the same name is not a change")
	}
	if !f.Changed(1) {
		t.Error("icon was edited")
	}
	if f.Changed(2) {
		t.Error("color was not touched")
	}
}

func TestInputForm_Validate(t *testing.T) {
	f := newTestForm()
	f.Load("Work", "", "teal")

	err := f.Validate()
	if application.KindOf(err) != application.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "color: must look like #059669" {
		t.Errorf("unexpected message %q", err.Error())
	}

	f.Fields[2].Input.SetValue("#0f766e")
	if err := f.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPaginator_PageFollowsCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.CursorDown()
	}
	start, end := p.VisibleRange()
	if p.Cursor() != 4 || start != 3 || end != 6 {
		t.Errorf("cursor %d range [%d,%d), want 4 [3,6)", p.Cursor(), start, end)
	}

	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("cursor should clamp to the last item, got %d", p.Cursor())
	}
	start, end = p.VisibleRange()
	if start != 0 || end != 2 {
		t.Errorf("range [%d,%d), want [0,2)", start, end)
	}
	if p.View() != "" {
		t.Error("a single page shows no dots")
	}

	if p.CursorDown() {
		t.Error("cursor cannot move past the end")
	}
	p.Reset()
	if p.Cursor() != 0 {
		t.Errorf("reset cursor = %d", p.Cursor())
	}
}
