package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/views/records"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/views/types"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	typesView    *types.View
	recordsView  *records.View
	documentView *document.View
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when leaving help.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		currentView: messages.ViewTypes,
	}
	a.build(context.Background())
	return a, nil
}

func (a *App) build(ctx context.Context) {
	a.ctx = ctx
	a.typesView = types.NewView(a.styles, a.ports.Schema)
	a.recordsView = records.NewView(ctx, a.styles, a.ports.Projection)
	a.documentView = document.NewView(ctx, a.styles, a.ports.Projection)
	a.statusBar = status.NewBar(a.styles, a.keymap)
}

// WithContext sets the context projections run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.build(ctx)
	if a.ready {
		a.SetDimensions(a.width, a.height)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("projector"),
		a.typesView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.TypesLoaded:
		a.typesView, cmd = a.typesView.Update(msg)
		a.statusBar.SetMessage(fmt.Sprintf("%d types", len(msg.Types)))
		return a, cmd

	case messages.TypeSelected:
		a.currentView = messages.ViewRecords
		a.statusBar.SetState(status.StateLoading)
		return a, a.recordsView.SetType(msg.Type)

	case messages.RecordsLoaded:
		a.recordsView, cmd = a.recordsView.Update(msg)
		a.report(msg.Err, status.StateReady)
		if msg.Err == nil && msg.Document != nil {
			a.statusBar.SetMessage(fmt.Sprintf("%s page %d", msg.Type, msg.Page))
		}
		return a, cmd

	case messages.RecordSelected:
		a.currentView = messages.ViewDocument
		a.statusBar.SetState(status.StateLoading)
		return a, a.documentView.SetResource(msg.Type, msg.ID)

	case messages.DocumentProjected:
		a.documentView, cmd = a.documentView.Update(msg)
		a.report(msg.Err, status.StateDocument)
		return a, cmd

	case messages.ViewChanged:
		a.switchTo(msg.View)
		return a, nil

	case messages.ErrorOccurred:
		a.report(msg.Err, a.statusBar.State())
		return a, a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewTypes:
		a.typesView, cmd = a.typesView.Update(msg)
	case messages.ViewRecords:
		a.recordsView, cmd = a.recordsView.Update(msg)
		if a.recordsView.Loading() {
			a.statusBar.SetState(status.StateLoading)
		}
	case messages.ViewDocument:
		a.documentView, cmd = a.documentView.Update(msg)
		if a.documentView.Loading() {
			a.statusBar.SetState(status.StateLoading)
		}
	case messages.ViewHelp:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "esc", "?":
				a.switchTo(a.previousView)
			case "q":
				return tea.Quit
			}
		}
	}
	return cmd
}

func (a *App) switchTo(view messages.ViewType) {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewDocument:
		a.statusBar.SetState(status.StateDocument)
	case messages.ViewTypes, messages.ViewRecords, messages.ViewHelp:
		a.statusBar.SetState(status.StateReady)
	}
}

// report records err in the status bar, or returns it to state.
func (a *App) report(err error, state status.State) {
	a.err = err
	if err != nil {
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	a.statusBar.SetState(state)
	a.statusBar.SetMessage("")
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewRecords:
		body = a.recordsView.View()
	case messages.ViewDocument:
		body = a.documentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.typesView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view from the key map.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Muted.Render("Include paths are comma separated and dotted, e.g. comments.author,tags."))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// One line for the status bar.
	viewHeight := height - 1
	a.typesView.SetDimensions(width, viewHeight)
	a.recordsView.SetDimensions(width, viewHeight)
	a.documentView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
