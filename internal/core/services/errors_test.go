package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"include", &domain.IncludeError{Paths: []string{"x"}}, http.StatusBadRequest},
		{"input", fmt.Errorf("%w: bad", domain.ErrInvalidInput), http.StatusBadRequest},
		{"format", domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{"type", domain.ErrUnsupportedType, http.StatusNotFound},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"discriminator", &domain.DiscriminatorError{Discriminator: "music"}, http.StatusInternalServerError},
		{"compute", &domain.ComputeError{Err: errors.New("x")}, http.StatusInternalServerError},
		{"other", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorStatus(tt.err))
		})
	}
}

func TestErrorDocument_IncludeErrorPerPath(t *testing.T) {
	doc := ErrorDocument(&domain.IncludeError{Paths: []string{"nope", "blog"}})

	require.Len(t, doc.Errors, 2)
	for i, path := range []string{"nope", "blog"} {
		obj := doc.Errors[i]
		assert.Equal(t, "400", obj.Status)
		assert.Equal(t, CodeInvalidInclude, obj.Code)
		assert.Contains(t, obj.Detail, path)
		require.NotNil(t, obj.Source)
		assert.Equal(t, "include", obj.Source.Parameter)
		_, err := uuid.Parse(obj.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, doc.Errors[0].ID, doc.Errors[1].ID)
}

func TestErrorDocument_Codes(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status string
	}{
		{domain.ErrInvalidInput, CodeInvalidInput, "400"},
		{domain.ErrUnsupportedType, CodeUnsupportedType, "404"},
		{domain.ErrNotFound, CodeNotFound, "404"},
		{&domain.DiscriminatorError{Type: "Project", ID: "9", Discriminator: "music"}, CodeDataIntegrity, "500"},
		{&domain.ComputeError{Field: "year", Err: errors.New("x")}, CodeComputation, "500"},
		{errors.New("boom"), CodeInternal, "500"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			doc := ErrorDocument(tt.err)
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, tt.code, doc.Errors[0].Code)
			assert.Equal(t, tt.status, doc.Errors[0].Status)
			assert.Equal(t, tt.err.Error(), doc.Errors[0].Detail)
		})
	}
}
