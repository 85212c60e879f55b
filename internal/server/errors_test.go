package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-ats/internal/analysis"
	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	validationErr := (&types.AnalyzeRequest{}).Validate()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input", &analysis.InputError{Message: analysis.MissingResumeMessage}, http.StatusBadRequest},
		{"wrapped input", fmt.Errorf("analyze: %w", &analysis.InputError{Message: "x"}), http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "id", Message: "must be a UUID"}, http.StatusBadRequest},
		{"validator", validationErr, http.StatusBadRequest},
		{"not found", &history.NotFoundError{ID: uuid.New()}, http.StatusNotFound},
		{"unauthorized", &ErrUnauthorized{}, http.StatusUnauthorized},
		{"persistence", &history.PersistenceError{Op: "append", Cause: errors.New("db down")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Missing resume content", publicMessage(&analysis.InputError{Message: "Missing resume content"}))
	assert.Equal(t, "internal server error", publicMessage(&history.PersistenceError{Op: "list", Cause: errors.New("password=secret")}))
	assert.Equal(t, "validation failed: ResumeText failed required", publicMessage((&types.AnalyzeRequest{}).Validate()))
	assert.Equal(t, "unauthorized: token expired", publicMessage(&ErrUnauthorized{Reason: "token expired"}))
}
