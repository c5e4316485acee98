package services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// Error codes carried in JSON:API error objects.
const (
	CodeInvalidInclude  = "invalid_include"
	CodeInvalidInput    = "invalid_input"
	CodeUnsupportedType = "unsupported_type"
	CodeNotFound        = "not_found"
	CodeDataIntegrity   = "data_integrity"
	CodeComputation     = "computation_failed"
	CodeInternal        = "internal_error"
)

// ErrorStatus maps an error to the HTTP status a transport should report.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInclude),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedType), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorDocument maps an error to a JSON:API error document.
// Include errors yield one error object per offending path.
func ErrorDocument(err error) domain.ErrorDocument {
	status := strconv.Itoa(ErrorStatus(err))

	var incErr *domain.IncludeError
	if errors.As(err, &incErr) {
		doc := domain.ErrorDocument{Errors: make([]domain.ErrorObject, 0, len(incErr.Paths))}
		for _, path := range incErr.Paths {
			doc.Errors = append(doc.Errors, domain.ErrorObject{
				ID:     uuid.NewString(),
				Status: status,
				Code:   CodeInvalidInclude,
				Title:  "Invalid include path",
				Detail: "This endpoint does not support the include parameter for path " + path,
				Source: &domain.ErrorSource{Parameter: "include"},
			})
		}
		return doc
	}

	obj := domain.ErrorObject{
		ID:     uuid.NewString(),
		Status: status,
		Detail: err.Error(),
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		obj.Code, obj.Title = CodeInvalidInput, "Invalid input"
	case errors.Is(err, domain.ErrUnsupportedType):
		obj.Code, obj.Title = CodeUnsupportedType, "Unknown resource type"
	case errors.Is(err, domain.ErrNotFound):
		obj.Code, obj.Title = CodeNotFound, "Not found"
	case errors.Is(err, domain.ErrDataIntegrity):
		obj.Code, obj.Title = CodeDataIntegrity, "Stored data does not match the schema"
	case errors.Is(err, domain.ErrComputation):
		obj.Code, obj.Title = CodeComputation, "Computed field failed"
	default:
		obj.Code, obj.Title = CodeInternal, "Internal error"
	}
	return domain.ErrorDocument{Errors: []domain.ErrorObject{obj}}
}
