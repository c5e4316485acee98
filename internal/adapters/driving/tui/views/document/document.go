// Package document provides the projected document view for the TUI.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/services"
)

// View shows one projected resource document and lets the include
// parameter be edited.
type View struct {
	ctx               context.Context
	styles            *styles.Styles
	projectionService driving.ProjectionService

	viewport viewport.Model
	include  *input.IncludeInput

	typ     string
	id      string
	inc     domain.InclusionRequest
	body    string
	loading bool
	err     error
	width   int
	height  int
}

// NewView creates a new document view.
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
		viewport:          viewport.New(80, 16),
		include:           input.NewIncludeInput(s),
		width:             80,
		height:            24,
	}
}

// SetResource selects a resource and projects it with its type's
// default includes.
func (v *View) SetResource(typ, id string) tea.Cmd {
	v.typ = typ
	v.id = id
	v.inc = domain.InclusionRequest{}
	v.body = ""
	v.err = nil
	v.include.SetValue("")
	v.include.Blur()
	v.viewport.SetContent("")
	v.viewport.GotoTop()
	return v.project()
}

// project returns a command that projects and renders the resource.
func (v *View) project() tea.Cmd {
	v.loading = true
	typ, id, inc := v.typ, v.id, v.inc
	return func() tea.Msg {
		result := messages.DocumentProjected{Type: typ, ID: id, Include: inc.Raw}
		if v.projectionService == nil {
			result.Err = errors.New("projection service not available")
			return result
		}

		doc, err := v.projectionService.Project(v.ctx, driving.ProjectionRequest{Type: typ, ID: id, Include: inc})
		result.Err = err
		if doc != nil {
			var buf bytes.Buffer
			if rerr := services.Render(&buf, doc, domain.FormatPretty); rerr != nil {
				result.Err = rerr
			} else {
				result.Body = buf.String()
			}
		}
		return result
	}
}

// Update handles messages for the document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentProjected:
		if msg.Type != v.typ || msg.ID != v.id {
			return v, nil
		}
		v.loading = false
		v.err = msg.Err
		v.body = msg.Body
		v.viewport.SetContent(msg.Body)
		v.viewport.GotoTop()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.include.Focused() {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.include.Blur()
		v.inc = domain.Include(strings.TrimSpace(v.include.Value()))
		return v, v.project()
	case tea.KeyEsc:
		v.include.Blur()
		v.include.SetValue(v.inc.Raw)
		return v, nil
	}

	var cmd tea.Cmd
	v.include, cmd = v.include.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "i":
		v.include.SetValue(v.inc.Raw)
		return v, v.include.Focus()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRecords}
		}
	case "q":
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the document view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.TypeName.Render(v.typ))
	b.WriteString(v.styles.Muted.Render(" / "))
	b.WriteString(v.styles.Title.Render(v.id))
	b.WriteString("\n")

	if v.include.Focused() {
		b.WriteString(v.include.View())
	} else {
		b.WriteString(v.styles.Muted.Render("include: " + v.includeLabel()))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Projecting..."))
		b.WriteString("\n")
	case v.body != "":
		b.WriteString(v.styles.Document.Render(v.viewport.View()))
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%3.f%%]", v.viewport.ScrollPercent()*100)))
		b.WriteString("\n")
	}

	// A rejected include path still leaves a usable document.
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [i] edit include  [esc] back"))
	return b.String()
}

func (v *View) includeLabel() string {
	if !v.inc.Given {
		return "(defaults)"
	}
	if v.inc.Raw == "" {
		return "(none)"
	}
	return v.inc.Raw
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	vpHeight := height - 8
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := width - 4
	if vpWidth < 20 {
		vpWidth = 20
	}
	v.viewport.Width = vpWidth
	v.viewport.Height = vpHeight
	v.include.SetWidth(width)
}

// Include returns the include parameter in effect.
func (v *View) Include() domain.InclusionRequest {
	return v.inc
}

// Editing reports whether the include editor has focus.
func (v *View) Editing() bool {
	return v.include.Focused()
}

// Body returns the rendered document.
func (v *View) Body() string {
	return v.body
}

// Loading reports whether a projection is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
