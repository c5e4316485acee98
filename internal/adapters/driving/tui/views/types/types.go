// Package types provides the resource type list view for the TUI.
package types

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// View lists the registered resource types.
type View struct {
	styles        *styles.Styles
	schemaService driving.SchemaService

	list   *list.ItemList
	types  []driving.TypeSummary
	width  int
	height int
	err    error
}

// NewView creates a new types view.
func NewView(s *styles.Styles, schemaService driving.SchemaService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		schemaService: schemaService,
		list:          list.NewItemList(s, "Resource types"),
	}
}

// Init returns the command that loads the type list.
func (v *View) Init() tea.Cmd {
	return func() tea.Msg {
		if v.schemaService == nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("schema service not available")}
		}
		return messages.TypesLoaded{Types: v.schemaService.List()}
	}
}

// Update handles messages for the types view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TypesLoaded:
		v.SetTypes(msg.Types)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		selected := v.Selected()
		if selected == nil {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.TypeSelected{Type: *selected}
		}
	case "?":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// SetTypes replaces the listed types.
func (v *View) SetTypes(types []driving.TypeSummary) {
	v.types = types
	v.err = nil

	items := make([]list.Item, 0, len(types))
	for _, t := range types {
		items = append(items, list.Item{
			Key:    t.Name,
			Label:  t.Type,
			Detail: describe(t),
		})
	}
	v.list.SetItems(items)
}

func describe(t driving.TypeSummary) string {
	var parts []string
	if t.Path != "" {
		parts = append(parts, t.Path)
	}
	if t.Base != "" {
		parts = append(parts, "subtype of "+t.Base)
	}
	if t.Subtypes > 0 {
		parts = append(parts, fmt.Sprintf("%d subtypes", t.Subtypes))
	}
	return strings.Join(parts, ", ")
}

// View renders the types view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("projector"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] browse  [?] help  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-4)
}

// Selected returns the highlighted type, or nil when the list is empty.
func (v *View) Selected() *driving.TypeSummary {
	if len(v.types) == 0 {
		return nil
	}
	idx := v.list.Selected()
	if idx < 0 || idx >= len(v.types) {
		return nil
	}
	return &v.types[idx]
}

// Types returns the listed types.
func (v *View) Types() []driving.TypeSummary {
	return v.types
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
