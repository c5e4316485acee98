// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
)

// IncludeInput edits the include parameter of a projection.
type IncludeInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewIncludeInput creates an unfocused include editor.
func NewIncludeInput(s *styles.Styles) *IncludeInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "comments.author,tags (empty = none)"
	ti.CharLimit = 512
	ti.Width = 50

	return &IncludeInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Update handles input messages.
func (i *IncludeInput) Update(msg tea.Msg) (*IncludeInput, tea.Cmd) {
	var cmd tea.Cmd
	i.textinput, cmd = i.textinput.Update(msg)
	return i, cmd
}

// View renders the include editor.
func (i *IncludeInput) View() string {
	label := i.styles.Title.Render("include: ")
	field := i.styles.InputField.Render(i.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current include parameter.
func (i *IncludeInput) Value() string {
	return i.textinput.Value()
}

// SetValue sets the include parameter.
func (i *IncludeInput) SetValue(value string) {
	i.textinput.SetValue(value)
}

// Focus starts editing.
func (i *IncludeInput) Focus() tea.Cmd {
	return i.textinput.Focus()
}

// Blur stops editing.
func (i *IncludeInput) Blur() {
	i.textinput.Blur()
}

// Focused returns whether the editor has focus.
func (i *IncludeInput) Focused() bool {
	return i.textinput.Focused()
}

// SetWidth sets the width of the editor.
func (i *IncludeInput) SetWidth(width int) {
	i.width = width
	// Account for label and padding
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	i.textinput.Width = inputWidth
}

// Width returns the current width.
func (i *IncludeInput) Width() int {
	return i.width
}
