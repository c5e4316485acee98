// Package records provides the paged resource list view for the TUI.
package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// View lists one page of a type's resources.
type View struct {
	ctx               context.Context
	styles            *styles.Styles
	projectionService driving.ProjectionService

	list      *list.ItemList
	typ       driving.TypeSummary
	resources []domain.Resource
	page      int
	pages     int
	loading   bool
	err       error
	width     int
	height    int
}

// NewView creates a new records view.
func NewView(ctx context.Context, s *styles.Styles, projectionService driving.ProjectionService) *View {
	if ctx == nil {
		ctx = context.Background()
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:               ctx,
		styles:            s,
		projectionService: projectionService,
		list:              list.NewItemList(s, "Resources"),
		page:              1,
		pages:             1,
	}
}

// SetType switches to a type and loads its first page.
func (v *View) SetType(t driving.TypeSummary) tea.Cmd {
	v.typ = t
	v.resources = nil
	v.page = 1
	v.pages = 1
	v.err = nil
	v.list.SetTitle(t.Type)
	v.list.SetItems(nil)
	return v.load(1)
}

// load returns a command projecting one page without includes.
func (v *View) load(page int) tea.Cmd {
	v.loading = true
	typeName := v.typ.Type
	return func() tea.Msg {
		if v.projectionService == nil {
			return messages.RecordsLoaded{Type: typeName, Page: page, Err: errors.New("projection service not available")}
		}
		doc, err := v.projectionService.Project(v.ctx, driving.ProjectionRequest{
			Type:    typeName,
			Include: domain.Include(""),
			Page:    domain.Page{Number: page},
		})
		return messages.RecordsLoaded{Type: typeName, Page: page, Document: doc, Err: err}
	}
}

// Update handles messages for the records view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.RecordsLoaded:
		if msg.Type != v.typ.Type {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil && msg.Document == nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.page = msg.Page
		v.pages = pagesOf(msg.Document)
		v.setResources(msg.Document.Data)
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
		res := v.Selected()
		if res == nil {
			return v, nil
		}
		selected := messages.RecordSelected{Type: res.Type, ID: res.ID}
		return v, func() tea.Msg { return selected }
	case "n", "right":
		if v.loading || v.page >= v.pages {
			return v, nil
		}
		return v, v.load(v.page + 1)
	case "p", "left":
		if v.loading || v.page <= 1 {
			return v, nil
		}
		return v, v.load(v.page - 1)
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewTypes}
		}
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) setResources(resources []domain.Resource) {
	v.resources = resources
	items := make([]list.Item, 0, len(resources))
	for _, res := range resources {
		items = append(items, list.Item{
			Key:    res.Type + "/" + res.ID,
			Label:  res.Type + "/" + res.ID,
			Detail: summarise(res.Attributes),
		})
	}
	v.list.SetItems(items)
}

// summarise lists attribute keys in order, which is enough to tell
// subtypes apart in a mixed collection.
func summarise(attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, " ")
}

func pagesOf(doc *domain.Document) int {
	if doc == nil {
		return 1
	}
	meta, ok := doc.Meta["pagination"].(map[string]any)
	if !ok {
		return 1
	}
	if pages, ok := meta["pages"].(int); ok && pages > 0 {
		return pages
	}
	return 1
}

// View renders the records view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.typ.Type))
	if v.typ.Path != "" {
		b.WriteString(v.styles.Muted.Render("  " + v.typ.Path))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	default:
		b.WriteString(v.list.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("page %d of %d", v.page, v.pages)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] navigate  [enter] project  [n/p] page  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
}

// Selected returns the highlighted resource, or nil if none.
func (v *View) Selected() *domain.Resource {
	idx := v.list.Selected()
	if idx < 0 || idx >= len(v.resources) {
		return nil
	}
	return &v.resources[idx]
}

// Type returns the type being browsed.
func (v *View) Type() driving.TypeSummary {
	return v.typ
}

// Page returns the current page number.
func (v *View) Page() int {
	return v.page
}

// Pages returns the number of pages.
func (v *View) Pages() int {
	return v.pages
}

// Loading reports whether a page is being projected.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
