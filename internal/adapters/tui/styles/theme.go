// Package styles holds the lipgloss palette shared by the TUI views.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette. Adaptive colors keep text readable on light terminals.
var (
	Accent = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	Good   = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	Bad    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Faint  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Ink    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}
)

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Accent)

	MutedText = lipgloss.NewStyle().Foreground(Faint)

	Success  = lipgloss.NewStyle().Foreground(Good).Bold(true)
	ErrorMsg = lipgloss.NewStyle().Foreground(Bad).Bold(true)

	HelpKey  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc = MutedText
)

// Tab strip. Tabs are open at the bottom so the strip sits on the list.
var (
	Tab = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(Faint)

	TabActive = Tab.Bold(true)

	TabCount = MutedText
)

// Note list
var (
	NoteItem = lipgloss.NewStyle().PaddingLeft(2)

	NoteSelected = NoteItem.
			Background(Accent).
			Foreground(Ink).
			Bold(true)
)

// Form inputs
var (
	InputLabel = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Faint).
			Padding(0, 1)

	InputFocused = InputField.BorderForeground(Accent)
)

// CollectionColor is the border color of a collection's tab. Collections
// without a color use the accent.
func CollectionColor(color string) lipgloss.TerminalColor {
	if color == "" {
		return Accent
	}
	return lipgloss.Color(color)
}
