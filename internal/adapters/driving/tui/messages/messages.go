// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewTypes lists the registered resource types.
	ViewTypes ViewType = iota
	// ViewRecords lists one page of a type's resources.
	ViewRecords
	// ViewDocument shows a projected document.
	ViewDocument
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTypes:
		return "types"
	case ViewRecords:
		return "records"
	case ViewDocument:
		return "document"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// TypesLoaded carries the registered type summaries.
type TypesLoaded struct {
	Types []driving.TypeSummary
}

// TypeSelected signals a type was picked from the types view.
type TypeSelected struct {
	Type driving.TypeSummary
}

// RecordsLoaded carries one projected page of a collection.
type RecordsLoaded struct {
	Type     string
	Page     int
	Document *domain.Document
	Err      error
}

// RecordSelected signals a resource was picked from the records view.
type RecordSelected struct {
	Type string
	ID   string
}

// DocumentProjected carries a rendered document. Err may be set alongside
// Body when some include paths were rejected.
type DocumentProjected struct {
	Type    string
	ID      string
	Include string
	Body    string
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
