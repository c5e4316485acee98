// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
)

// Item is one selectable row.
type Item struct {
	// Key identifies the row to the owning view.
	Key string

	// Label is rendered in the main column.
	Label string

	// Detail is rendered muted after the label.
	Detail string
}

// ItemList displays items in a navigable, scrolling list.
type ItemList struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a new list with a header title.
func NewItemList(s *styles.Styles, title string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		title:  title,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Subtitle.Render(l.title) + "\n\n" + l.styles.Muted.Render("Nothing here")
	}

	lines := make([]string, 0, len(l.items)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items))), "")

	visible := l.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(index int) string {
	item := l.items[index]

	label := item.Label
	maxLabel := l.width - 24
	if maxLabel < 10 {
		maxLabel = 10
	}
	if len(label) > maxLabel {
		label = label[:maxLabel-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %-*s  %s", maxLabel, label, item.Detail))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %-*s  ", maxLabel, label)) + l.styles.Muted.Render(item.Detail)
}

// SetItems replaces the items and resets the selection.
func (l *ItemList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *ItemList) Items() []Item {
	return l.items
}

// SetTitle changes the header title.
func (l *ItemList) SetTitle(title string) {
	l.title = title
}

// Selected returns the index of the selected item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *ItemList) SelectedItem() *Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}
